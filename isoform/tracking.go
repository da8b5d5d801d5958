package isoform

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel is the tracking-file marker for "this pipeline assembled no
// transcript in this group".
const Sentinel = "-"

// numPipelines is the number of assembly pipelines the workflow
// compares: q1 oxford, q2 flair, q3 talon.
const numPipelines = 3

// A Group is one row of a gffcompare tracking file: a group identifier
// (TCONS_*) and the transcript each pipeline contributed, in the fixed
// q1, q2, q3 order. Slots with no contribution hold Sentinel.
type Group struct {
	ID          string
	Transcripts [numPipelines]string
}

// Categorize partitions the groups of a tracking file by how many
// pipelines are represented: three buckets for three, two, and one
// pipeline present. Every input row lands in exactly one bucket, in
// file order.
//
// A row whose per-pipeline section does not hold exactly three fields
// is a structural error. Rows with all three slots empty do not occur
// in gffcompare output and are not checked for.
func Categorize(r io.Reader) (three, two, one []Group, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 4+numPipelines {
			return nil, nil, nil, errors.Errorf("tracking row has %d fields, want %d", len(fields), 4+numPipelines)
		}
		group := Group{ID: fields[0]}
		absent := 0
		for i, f := range fields[4:] {
			if f == Sentinel {
				absent++
				group.Transcripts[i] = Sentinel
				continue
			}
			// Per-pipeline fields look like "q1:gene|transcript|...";
			// the transcript id is the text after the first '|'.
			split := strings.SplitN(f, "|", 3)
			if len(split) < 2 {
				return nil, nil, nil, errors.Errorf("group %s: malformed pipeline field %q", group.ID, f)
			}
			group.Transcripts[i] = split[1]
		}
		switch absent {
		case 0:
			three = append(three, group)
		case 1:
			two = append(two, group)
		default:
			one = append(one, group)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, err
	}
	return three, two, one, nil
}
