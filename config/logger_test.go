package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingConfig_Prepare(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		level     string
		mode      string
		existing  string
		message   string
		wantFile  bool
		wantKept  bool
		wantDebug bool
	}{
		{name: "file disabled", level: "none", mode: "overwrite", message: "hello"},
		{name: "normal level", level: "normal", mode: "overwrite", message: "hello", wantFile: true},
		{name: "debug level", level: "debug", mode: "overwrite", message: "hello", wantFile: true, wantDebug: true},
		{name: "append mode", level: "normal", mode: "append", existing: "previous line\n", message: "hello", wantFile: true, wantKept: true},
		{name: "overwrite mode", level: "normal", mode: "overwrite", existing: "previous line\n", message: "hello", wantFile: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".log")
			if tt.existing != "" {
				if err := os.WriteFile(dest, []byte(tt.existing), 0644); err != nil {
					t.Fatalf("write existing log: %v", err)
				}
			}
			conf := &LoggingConfig{
				ConsoleLogger: LoggerConfig{Level: "none"},
				FileLogger:    LoggerConfig{Level: tt.level, Destination: dest, Mode: tt.mode},
			}

			log, err := conf.Prepare(nil)
			if err != nil {
				t.Fatalf("Prepare() error: %v", err)
			}
			log.Info(tt.message)
			log.Debug("debug details")
			_ = log.Sync()

			data, err := os.ReadFile(dest)
			if !tt.wantFile {
				if err == nil && len(data) > 0 {
					t.Errorf("case %d: unexpected log file content: %q", i, data)
				}
				return
			}
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			out := string(data)
			if !strings.Contains(out, tt.message) {
				t.Errorf("log does not contain message: %q", out)
			}
			if got := strings.Contains(out, "debug details"); got != tt.wantDebug {
				t.Errorf("debug entry presence = %v, want %v: %q", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "previous line"); got != tt.wantKept {
				t.Errorf("previous content kept = %v, want %v: %q", got, tt.wantKept, out)
			}
		})
	}
}

func TestLoggingConfig_PrepareWithReport(t *testing.T) {
	dir := t.TempDir()
	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("prepare report: %v", err)
	}
	defer rpt.Close()

	dest := filepath.Join(dir, "forced.log")
	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: dest, Mode: "append"},
	}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Debug("forced debug entry")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "forced debug entry") {
		t.Errorf("report must force debug file log, got %q", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("log file was not stored in report")
	}
}

func TestLoggingConfig_PanicLogName(t *testing.T) {
	conf := &LoggingConfig{FileLogger: LoggerConfig{Destination: filepath.Join("logs", "app.log")}}
	if got, want := conf.PanicLogName(), filepath.Join("logs", "tocconv-panic.log"); got != want {
		t.Errorf("PanicLogName() = %q, want %q", got, want)
	}
}
