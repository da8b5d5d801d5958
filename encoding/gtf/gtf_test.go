package gtf

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

const headerLine = `chr1	pipeline	transcript	11869	14409	.	+	.	gene_id "G1"; transcript_id "T1";`

func TestFieldExtraction(t *testing.T) {
	fields := Fields(headerLine)
	kind, err := Kind(fields)
	expect.NoError(t, err)
	expect.EQ(t, kind, "transcript")
	id, err := TranscriptID(fields)
	expect.NoError(t, err)
	expect.EQ(t, id, "T1")
	gene, err := GeneID(fields)
	expect.NoError(t, err)
	expect.EQ(t, gene, "G1")
}

func TestShortLine(t *testing.T) {
	fields := Fields("chr1 pipeline")
	if _, err := Kind(fields); err == nil {
		t.Error("expected error for missing record kind")
	}
	fields = Fields("chr1 pipeline exon 1 2 . + .")
	if _, err := TranscriptID(fields); err == nil {
		t.Error("expected error for missing transcript id")
	}
	if _, err := GeneID(fields); err == nil {
		t.Error("expected error for missing gene id")
	}
}

func TestAppendAttr(t *testing.T) {
	got := AppendAttr(headerLine, "TPM", "42")
	expect.EQ(t, got, headerLine+` TPM "42";`)
}

func TestIsComment(t *testing.T) {
	expect.True(t, IsComment("# gffcompare v0.11"))
	expect.False(t, IsComment(headerLine))
}
