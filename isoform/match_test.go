package isoform_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/bio-isoform/encoding/gtf"
	"github.com/grailbio/bio-isoform/isoform"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testIndexes() [3]gtf.Index {
	return [3]gtf.Index{
		{ // q1 oxford
			"O1": {line("transcript", "G1", "O1"), line("exon", "G1", "O1")},
			"O2": {line("transcript", "G1", "O2"), line("exon", "G1", "O2")},
		},
		{ // q2 flair
			"F1": {line("transcript", "G1", "F1"), line("exon", "G1", "F1")},
			"F3": {line("transcript", "G2", "F3"), line("exon", "G2", "F3")},
		},
		{ // q3 talon
			"A1": {line("transcript", "G1", "A1"), line("exon", "G1", "A1")},
			"A4": {line("transcript", "G2", "A4"), line("exon", "G2", "A4")},
		},
	}
}

func TestWriteMatchesPriority(t *testing.T) {
	var out bytes.Buffer
	// All three pipelines present: only oxford's record is written.
	groups := []isoform.Group{{ID: "TCONS_1", Transcripts: [3]string{"O1", "F1", "A1"}}}
	assert.NoError(t, isoform.WriteMatches(groups, testIndexes(), gtf.NewWriter(&out)))
	expect.EQ(t, out.String(),
		line("transcript", "G1", "O1")+` match_id "TCONS_1";`+"\n"+
			line("exon", "G1", "O1")+` match_id "TCONS_1";`+"\n")
}

func TestWriteMatchesFallthrough(t *testing.T) {
	var out bytes.Buffer
	groups := []isoform.Group{
		// Oxford and talon: oxford wins.
		{ID: "TCONS_2", Transcripts: [3]string{"O2", "-", "A4"}},
		// Flair only.
		{ID: "TCONS_3", Transcripts: [3]string{"-", "F3", "-"}},
		// Talon only.
		{ID: "TCONS_4", Transcripts: [3]string{"-", "-", "A4"}},
	}
	assert.NoError(t, isoform.WriteMatches(groups, testIndexes(), gtf.NewWriter(&out)))
	got := out.String()
	expect.True(t, strings.Contains(got, line("transcript", "G1", "O2")+` match_id "TCONS_2";`))
	expect.False(t, strings.Contains(got, `"A4"; match_id "TCONS_2";`))
	expect.True(t, strings.Contains(got, line("transcript", "G2", "F3")+` match_id "TCONS_3";`))
	expect.True(t, strings.Contains(got, line("transcript", "G2", "A4")+` match_id "TCONS_4";`))
}

func TestWriteMatchesInconsistentInput(t *testing.T) {
	var out bytes.Buffer
	groups := []isoform.Group{{ID: "TCONS_9", Transcripts: [3]string{"NOPE", "-", "-"}}}
	err := isoform.WriteMatches(groups, testIndexes(), gtf.NewWriter(&out))
	expect.NotNil(t, err)
	expect.True(t, strings.Contains(err.Error(), "TCONS_9"))
}

func TestWriteMatchesAllAbsent(t *testing.T) {
	var out bytes.Buffer
	groups := []isoform.Group{{ID: "TCONS_0", Transcripts: [3]string{"-", "-", "-"}}}
	err := isoform.WriteMatches(groups, testIndexes(), gtf.NewWriter(&out))
	expect.NotNil(t, err)
}

// End to end: categorize a tracking file, then write each bucket.
func TestCategorizeThenMatch(t *testing.T) {
	in := "TCONS_1 XLOC_1 G1|ref = q1:G1|O1|2 q2:G1|F1|2 q3:G1|A1|2\n" +
		"TCONS_2 XLOC_1 G1|ref = q1:G1|O2|2 - q3:G2|A4|2\n"
	three, two, one, err := isoform.Categorize(strings.NewReader(in))
	assert.NoError(t, err)
	assert.EQ(t, len(three), 1)
	assert.EQ(t, len(two), 1)
	assert.EQ(t, len(one), 0)

	var threeOut, twoOut bytes.Buffer
	assert.NoError(t, isoform.WriteMatches(three, testIndexes(), gtf.NewWriter(&threeOut)))
	assert.NoError(t, isoform.WriteMatches(two, testIndexes(), gtf.NewWriter(&twoOut)))
	expect.True(t, strings.Contains(threeOut.String(), `match_id "TCONS_1";`))
	expect.True(t, strings.Contains(twoOut.String(), line("transcript", "G1", "O2")+` match_id "TCONS_2";`))
}
