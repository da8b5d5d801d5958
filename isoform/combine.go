package isoform

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/bio-isoform/encoding/abundance"
	"github.com/grailbio/bio-isoform/encoding/gtf"
)

// disposition tracks whether the current transcript record is being
// kept or quarantined. It changes only on transcript header lines;
// every other line inherits the disposition of the most recent header.
type disposition int

const (
	keeping disposition = iota
	quarantining
)

// CombineOpts configures a combine run.
type CombineOpts struct {
	// Resolvers generate fallback abundance keys, in order, when a
	// transcript id is missing from the counts table.
	Resolvers []Resolver
}

// DefaultCombineOpts enables the flair gene-fused fallback key.
var DefaultCombineOpts = CombineOpts{
	Resolvers: []Resolver{GeneFusedID},
}

// CombineStats summarizes one combine run.
type CombineStats struct {
	// Transcripts is the number of transcript header lines seen.
	Transcripts int
	// Kept is the number of transcripts written to the main output.
	Kept int
	// ZeroCount is the number of transcripts quarantined for having
	// an abundance total of zero.
	ZeroCount int
	// Missing is the number of transcripts quarantined because no
	// lookup key, primary or fallback, was in the counts table.
	Missing int
}

// Combine streams one pipeline's annotation file, appending each
// transcript's total count as a ` TPM "<count>";` attribute on its
// header line. The counts are not normalized abundances; the TPM key
// is reused as a carrier so downstream gffcompare tooling picks the
// value up.
//
// Transcripts with a zero count (annotation-guided assemblers emit
// these) and transcripts absent from the counts table are quarantined:
// the header and all of its dependent lines go to quar instead of out,
// together with an entry naming origin (the annotation file's name)
// and the identifiers involved.
//
// Structural problems in the annotation file are returned as errors
// and abort the run.
func Combine(in io.Reader, counts abundance.Counts, origin string, out *gtf.Writer, quar *Log, opts CombineOpts) (CombineStats, error) {
	var stats CombineStats
	state := keeping
	sc := bufio.NewScanner(in)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := sc.Text()
		fields := gtf.Fields(line)
		kind, err := gtf.Kind(fields)
		if err != nil {
			return stats, err
		}
		if kind != "transcript" {
			// Exons and other dependent records follow their
			// header's disposition.
			if state == keeping {
				out.Write(line)
			} else {
				quar.Line(line)
			}
			continue
		}
		stats.Transcripts++
		id, err := gtf.TranscriptID(fields)
		if err != nil {
			return stats, err
		}
		count, tried, found, err := lookup(counts, id, fields, opts.Resolvers)
		if err != nil {
			return stats, err
		}
		switch {
		case !found:
			stats.Missing++
			quar.Errorf("ORIGIN: %s missing from abundance, tried: %s", origin, strings.Join(tried, ", "))
			quar.Line(line)
			state = quarantining
		case count == 0:
			stats.ZeroCount++
			quar.Warnf("ORIGIN: %s 0 count: %s", origin, tried[len(tried)-1])
			quar.Line(line)
			state = quarantining
		default:
			stats.Kept++
			out.Write(gtf.AppendAttr(line, "TPM", strconv.Itoa(count)))
			state = keeping
		}
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	if err := out.Err(); err != nil {
		return stats, err
	}
	return stats, quar.Err()
}

// lookup finds the count for a transcript, trying the primary id first
// and then each resolver-generated fallback key. Fallback keys are
// only computed after the primary id misses. The returned slice holds
// every key attempted, the last of which is the one that matched when
// found is true.
func lookup(counts abundance.Counts, id string, fields []string, resolvers []Resolver) (count int, tried []string, found bool, err error) {
	tried = []string{id}
	if count, ok := counts[id]; ok {
		return count, tried, true, nil
	}
	for _, resolve := range resolvers {
		key, err := resolve(id, fields)
		if err != nil {
			return 0, tried, false, err
		}
		tried = append(tried, key)
		if count, ok := counts[key]; ok {
			return count, tried, true, nil
		}
	}
	return 0, tried, false, nil
}
