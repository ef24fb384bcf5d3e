package components

import (
	"fmt"
	"html"
	"io"
)

// Writer accumulates HTML output, remembering the first write error so
// component bodies can stay free of per-write error checks
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w for HTML emission
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s verbatim
func (hw *Writer) Raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

// Rawf writes a formatted string verbatim
func (hw *Writer) Rawf(format string, args ...any) {
	if hw.err == nil {
		_, hw.err = fmt.Fprintf(hw.w, format, args...)
	}
}

// Text writes s with HTML escaping; Unicode is preserved
func (hw *Writer) Text(s string) {
	hw.Raw(html.EscapeString(s))
}

// Err returns the first error encountered while writing
func (hw *Writer) Err() error {
	return hw.err
}

// Escape returns s with HTML metacharacters escaped
func Escape(s string) string {
	return html.EscapeString(s)
}
