package common

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "ncx", want: FormatNcx},
		{in: "xhtml", want: FormatXhtml},
		{in: "epub", wantErr: true},
		{in: "NCX", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("ParseFormat(%q) error = %v, want ErrInvalidFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_Ext(t *testing.T) {
	if got := FormatNcx.Ext(); got != ".ncx" {
		t.Errorf("FormatNcx.Ext() = %q", got)
	}
	if got := FormatXhtml.Ext(); got != ".xhtml" {
		t.Errorf("FormatXhtml.Ext() = %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid format")
		}
	}()
	_ = Format(42).Ext()
}

func TestFormat_TextRoundTrip(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("xhtml")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if f != FormatXhtml {
		t.Errorf("UnmarshalText() = %v, want %v", f, FormatXhtml)
	}
	data, err := f.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(data) != "xhtml" {
		t.Errorf("MarshalText() = %q, want %q", data, "xhtml")
	}
	if err := f.UnmarshalText([]byte("pdf")); err == nil {
		t.Error("Expected error for unknown format")
	}
	if len(FormatNames()) != 2 {
		t.Errorf("FormatNames() = %v", FormatNames())
	}
}
