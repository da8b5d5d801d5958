package gtf

import "io"

var newline = []byte{'\n'}

// Writer is a line-oriented GTF writer. Write errors latch: after the
// first failure subsequent writes are dropped and Err returns the
// original error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new Writer that writes lines to the
// underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one annotation line followed by a newline.
func (w *Writer) Write(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
