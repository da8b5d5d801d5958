// Package gtf contains minimal helpers for the tabular gene-annotation
// format written by transcript assembly pipelines. It deliberately does
// not implement the full attribute grammar; the pipelines in this
// workflow emit attributes at fixed whitespace-token positions, so the
// helpers here address fields by position and only undo the `"..."; `
// quoting around identifier values.
package gtf

import (
	"strings"

	"github.com/pkg/errors"
)

// Whitespace-token positions of the fields this workflow reads.
const (
	kindField         = 2
	geneIDField       = 9
	transcriptIDField = 11
)

// IsComment reports whether line is a GTF comment.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// Fields splits a GTF line into whitespace-delimited tokens.
func Fields(line string) []string {
	return strings.Fields(line)
}

// Kind returns the record kind of a line: "gene", "transcript", "exon",
// or whatever else the pipeline wrote in field 2.
func Kind(fields []string) (string, error) {
	return field(fields, kindField, "record kind")
}

// TranscriptID returns the unquoted transcript identifier of a line.
func TranscriptID(fields []string) (string, error) {
	f, err := field(fields, transcriptIDField, "transcript id")
	if err != nil {
		return "", err
	}
	return unquote(f), nil
}

// GeneID returns the unquoted gene identifier of a line.
func GeneID(fields []string) (string, error) {
	f, err := field(fields, geneIDField, "gene id")
	if err != nil {
		return "", err
	}
	return unquote(f), nil
}

func field(fields []string, i int, name string) (string, error) {
	if len(fields) <= i {
		return "", errors.Errorf("no %s: %d fields, want field %d", name, len(fields), i)
	}
	return fields[i], nil
}

// unquote strips the attribute-value quoting convention: a leading `"`
// and a trailing `";`.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `";`)
}

// AppendAttr returns line with an extra ` key "value";` attribute at
// the end.
func AppendAttr(line, key, value string) string {
	var b strings.Builder
	b.Grow(len(line) + len(key) + len(value) + 6)
	b.WriteString(line)
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(` "`)
	b.WriteString(value)
	b.WriteString(`";`)
	return b.String()
}
