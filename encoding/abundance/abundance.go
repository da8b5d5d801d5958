// Package abundance parses the transcript-quantification ("abundance")
// matrices produced by long-read RNA assembly pipelines. Each pipeline
// writes a different field layout and numeric encoding; the readers here
// reduce all of them to a single total count per transcript.
package abundance

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Counts maps a pipeline-specific transcript identifier to its total
// read count summed across all samples in the abundance file. A Counts
// map is built once per run and is read-only afterwards.
type Counts map[string]int

// Format identifies the abundance file layout of one pipeline.
type Format int

const (
	// Oxford is comma-delimited with the transcript id in field 0.
	// Per-sample counts may be empty strings, which mean zero.
	Oxford Format = 1 + iota
	// Talon is tab-delimited with the transcript id in field 3 and
	// per-sample integer counts from field 11 onward.
	Talon
	// Flair is tab-delimited with the transcript id in field 0.
	// Counts are integral values encoded with a fractional part ("3.0").
	Flair
)

func (f Format) String() string {
	switch f {
	case Oxford:
		return "oxford"
	case Talon:
		return "talon"
	case Flair:
		return "flair"
	}
	return "unknown"
}

// ParseFormat parses a format name as accepted on command lines.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "oxford":
		return Oxford, nil
	case "talon":
		return Talon, nil
	case "flair":
		return Flair, nil
	}
	return 0, errors.Errorf("unknown abundance format %q (want oxford, talon, or flair)", s)
}

// Read parses an abundance file in the given format. The first line is
// a header and is discarded. If the same transcript id appears on more
// than one row, the last row wins.
func Read(r io.Reader, format Format) (Counts, error) {
	switch format {
	case Oxford:
		return ReadOxford(r)
	case Talon:
		return ReadTalon(r)
	case Flair:
		return ReadFlair(r)
	}
	return nil, errors.Errorf("invalid abundance format %d", format)
}

// ReadOxford parses an oxford-pipeline abundance file. Rows are
// comma-delimited; field 0 is the transcript id and the remaining
// fields are per-sample integer counts, where an empty field means
// zero.
func ReadOxford(r io.Reader) (Counts, error) {
	counts := Counts{}
	err := scanRows(r, func(line string) error {
		fields := strings.Split(line, ",")
		total := 0
		for _, f := range fields[1:] {
			if f == "" {
				continue
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return errors.Wrapf(err, "bad count for transcript %s", fields[0])
			}
			total += n
		}
		counts[fields[0]] = total
		return nil
	})
	return counts, err
}

// ReadTalon parses a talon-pipeline abundance file. Rows are
// tab-delimited; field 3 is the transcript id and fields 11 onward are
// per-sample integer counts.
func ReadTalon(r io.Reader) (Counts, error) {
	counts := Counts{}
	err := scanRows(r, func(line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			return errors.Errorf("short talon row: %d fields", len(fields))
		}
		total := 0
		for _, f := range fields[11:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return errors.Wrapf(err, "bad count for transcript %s", fields[3])
			}
			total += n
		}
		counts[fields[3]] = total
		return nil
	})
	return counts, err
}

// ReadFlair parses a flair-pipeline abundance file. Rows are
// tab-delimited; field 0 is the transcript id. Counts are always whole
// numbers but flair encodes them with a fractional part ("3.0"), so
// fields are parsed as floats and the row total rounded to an int.
func ReadFlair(r io.Reader) (Counts, error) {
	counts := Counts{}
	err := scanRows(r, func(line string) error {
		fields := strings.Split(line, "\t")
		total := 0.0
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return errors.Wrapf(err, "bad count for transcript %s", fields[0])
			}
			total += v
		}
		counts[fields[0]] = int(math.Round(total))
		return nil
	})
	return counts, err
}

// scanRows invokes row for every line after the header line.
func scanRows(r io.Reader, row func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return err
		}
		return errors.New("missing header line")
	}
	for sc.Scan() {
		if err := row(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
