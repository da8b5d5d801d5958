package isoform

import (
	"github.com/grailbio/bio-isoform/encoding/gtf"
	"github.com/pkg/errors"
)

// WriteMatches writes one representative annotation record per group
// to w. The representative is the first pipeline, in q1, q2, q3
// priority order, that contributed a transcript to the group; even
// when every pipeline agrees, only that one record is emitted. Each of
// the record's lines is tagged with a ` match_id "<groupID>";`
// attribute so the group is recoverable from the output.
//
// indexes holds the three pipelines' annotation indexes in the same
// q1, q2, q3 order. A group naming a transcript that its pipeline's
// index does not contain means the tracking file and annotation files
// disagree; that is an error and is not recovered.
func WriteMatches(groups []Group, indexes [numPipelines]gtf.Index, w *gtf.Writer) error {
	for _, group := range groups {
		record, err := representative(group, indexes)
		if err != nil {
			return err
		}
		for _, line := range record {
			w.Write(gtf.AppendAttr(line, "match_id", group.ID))
		}
	}
	return w.Err()
}

func representative(group Group, indexes [numPipelines]gtf.Index) ([]string, error) {
	for i, id := range group.Transcripts {
		if id == Sentinel {
			continue
		}
		record, ok := indexes[i][id]
		if !ok {
			return nil, errors.Errorf("group %s: transcript %s not in pipeline %d annotation", group.ID, id, i+1)
		}
		return record, nil
	}
	return nil, errors.Errorf("group %s: no pipeline contributed a transcript", group.ID)
}
