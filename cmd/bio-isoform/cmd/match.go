package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio-isoform/encoding/gtf"
	"github.com/grailbio/bio-isoform/isoform"
	"v.io/x/lib/cmdline"
)

func newCmdMatch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "match",
		Short: `Split cross-pipeline transcript matches into per-agreement annotation files.
Groups from the gffcompare tracking file are bucketed by how many pipelines
assembled the transcript (three, two, or one), and each group is written to
its bucket's output as a single representative record chosen in oxford,
flair, talon priority order, tagged with a match_id attribute.`,
	}
	trackingFlag := cmd.Flags.String("tracking", "", "gffcompare tracking file path")
	oxfordFlag := cmd.Flags.String("oxford", "", "Oxford (q1) annotation path")
	flairFlag := cmd.Flags.String("flair", "", "Flair (q2) annotation path")
	talonFlag := cmd.Flags.String("talon", "", "Talon (q3) annotation path")
	threeFlag := cmd.Flags.String("three-output", "", "Output path for groups present in all three pipelines")
	twoFlag := cmd.Flags.String("two-output", "", "Output path for groups present in two pipelines")
	oneFlag := cmd.Flags.String("one-output", "", "Output path for groups present in one pipeline")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("match takes no positional arguments, but got %v", argv)
		}
		return runMatch(*trackingFlag,
			[3]string{*oxfordFlag, *flairFlag, *talonFlag},
			[3]string{*threeFlag, *twoFlag, *oneFlag})
	})
	return cmd
}

func runMatch(trackingPath string, gtfPaths, outputPaths [3]string) error {
	ctx := vcontext.Background()
	three, two, one, err := readTracking(ctx, trackingPath)
	if err != nil {
		return err
	}
	log.Printf("%s: %d groups in three pipelines, %d in two, %d in one",
		trackingPath, len(three), len(two), len(one))

	// The indexes are independent and read-only once built.
	var indexes [3]gtf.Index
	err = traverse.Each(len(gtfPaths), func(i int) error {
		index, err := readIndex(ctx, gtfPaths[i])
		if err != nil {
			return err
		}
		indexes[i] = index
		return nil
	})
	if err != nil {
		return err
	}

	for i, groups := range [3][]isoform.Group{three, two, one} {
		if err := writeMatches(ctx, groups, indexes, outputPaths[i]); err != nil {
			return err
		}
	}
	return nil
}

func readTracking(ctx context.Context, path string) (three, two, one []isoform.Group, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	three, two, one, err = isoform.Categorize(inr)
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return nil, nil, nil, err
	}
	return three, two, one, nil
}

func readIndex(ctx context.Context, path string) (gtf.Index, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	index, err := gtf.ReadIndex(inr)
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return nil, err
	}
	log.Printf("%s: indexed %d transcripts", path, len(index))
	return index, nil
}

func writeMatches(ctx context.Context, groups []isoform.Group, indexes [3]gtf.Index, path string) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out.Writer(ctx))
	err = isoform.WriteMatches(groups, indexes, gtf.NewWriter(w))
	once := errors.Once{}
	once.Set(err)
	once.Set(w.Flush())
	once.Set(out.Close(ctx))
	return once.Err()
}
