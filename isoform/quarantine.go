// Package isoform reconciles transcript-assembly pipeline outputs: it
// merges abundance counts into each pipeline's annotation file while
// quarantining unsupported transcripts, and groups transcripts that
// multiple pipelines assembled via a gffcompare tracking file.
package isoform

import (
	"fmt"
	"io"
)

// Log is the quarantine sink for a combine run. The workflow keeps the
// quarantined annotation lines and the entries explaining them in one
// destination, so both go through this handle. Passing the handle in
// explicitly (rather than using process-global logging) lets callers
// capture quarantine decisions deterministically.
//
// Entries carry no timestamps: rerunning a combine with identical
// inputs must reproduce the sink byte for byte.
//
// Write errors latch, like gtf.Writer.
type Log struct {
	w   io.Writer
	err error
}

// NewLog returns a Log writing to w. The caller owns w; the workflow
// convention is to open the destination in append mode so that the
// per-pipeline combine runs of one invocation accumulate.
func NewLog(w io.Writer) *Log {
	return &Log{w: w}
}

// Line records a quarantined annotation line verbatim.
func (l *Log) Line(line string) {
	l.write(line)
}

// Warnf records a warning-severity entry.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.write("WARNING " + fmt.Sprintf(format, args...))
}

// Errorf records an error-severity entry.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.write("ERROR " + fmt.Sprintf(format, args...))
}

func (l *Log) write(line string) {
	if l.err != nil {
		return
	}
	_, l.err = io.WriteString(l.w, line)
	if l.err == nil {
		_, l.err = l.w.Write([]byte{'\n'})
	}
}

// Err returns the first write error, if any.
func (l *Log) Err() error {
	return l.err
}
