package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TreeWriter outputs indented lines, two spaces per depth level. First write
// error is kept and all subsequent writes are skipped.
type TreeWriter struct {
	w   io.Writer
	err error
}

func NewTreeWriter(w io.Writer) *TreeWriter {
	return &TreeWriter{w: w}
}

// Err returns first error encountered while writing.
func (tw *TreeWriter) Err() error {
	return tw.err
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.write(depth, fmt.Sprintf(format, args...))
}

// Pair outputs "label: value" with value quoted, empty values are left as is.
func (tw *TreeWriter) Pair(depth int, label, value string) {
	tw.write(depth, label+": "+encodeText(value))
}

func (tw *TreeWriter) write(depth int, line string) {
	if tw.err != nil {
		return
	}
	var sb strings.Builder
	for range depth {
		sb.WriteString("  ")
	}
	sb.WriteString(line)
	sb.WriteByte('\n')
	_, tw.err = io.WriteString(tw.w, sb.String())
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
