package gtf

import (
	"bufio"
	"io"
)

// Index maps a transcript identifier to the raw annotation lines
// (header plus exons, terminators stripped) that mention it, in file
// order. Lines are grouped purely by shared identifier, so a
// transcript's record survives even if its exons are not contiguous in
// the source.
type Index map[string][]string

// ReadIndex loads a full annotation file into an Index. Comment lines
// and "gene" records are skipped.
func ReadIndex(r io.Reader) (Index, error) {
	index := Index{}
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if IsComment(line) {
			continue
		}
		fields := Fields(line)
		kind, err := Kind(fields)
		if err != nil {
			return nil, err
		}
		if kind == "gene" {
			continue
		}
		id, err := TranscriptID(fields)
		if err != nil {
			return nil, err
		}
		index[id] = append(index[id], line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return index, nil
}
