package main

import (
	"errors"
	"fmt"
	"testing"

	"tocconv/convert"
	"tocconv/toc"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"not found", fmt.Errorf("wrapped: %w", convert.ErrFileNotFound), exitFileNotFound},
		{"malformed", fmt.Errorf("unable to parse: %w", &toc.MalformedError{Path: "ncx/navMap", Reason: "missing"}), exitMalformed},
		{"other", errors.New("usage"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
