package toc

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched (errors.Is) by every structural problem
// readers detect in the source document.
var ErrMalformedInput = errors.New("malformed input")

// MalformedError describes structural violation in the source document. Path
// points to offending element, for example "ncx/navMap/navPoint[2]/content/@src".
type MalformedError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedInput
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(path, reason string) error {
	return &MalformedError{Path: path, Reason: reason}
}
