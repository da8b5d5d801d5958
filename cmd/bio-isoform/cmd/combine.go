package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio-isoform/encoding/abundance"
	"github.com/grailbio/bio-isoform/encoding/gtf"
	"github.com/grailbio/bio-isoform/isoform"
	"v.io/x/lib/cmdline"
)

func newCmdCombine() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "combine",
		Short: `Merge abundance counts into per-pipeline annotation files.
Transcripts with zero counts or no abundance entry are moved, together with
their exon lines, to the shared -removed file, which also receives an entry
explaining each removal. The -removed file is opened in append mode so the
pipelines of one invocation accumulate into it.`,
	}
	gtfFlag := cmd.Flags.String("gtf", "", "Comma-separated annotation (GTF) paths, one per pipeline")
	abundanceFlag := cmd.Flags.String("abundance", "", "Comma-separated abundance paths, parallel to -gtf")
	formatFlag := cmd.Flags.String("format", "", "Comma-separated abundance formats (oxford, talon, or flair), parallel to -gtf")
	outputFlag := cmd.Flags.String("output", "", "Comma-separated annotated output paths, parallel to -gtf")
	removedFlag := cmd.Flags.String("removed", "", "Path of the shared removed-transcript file (appended to)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("combine takes no positional arguments, but got %v", argv)
		}
		return runCombine(*gtfFlag, *abundanceFlag, *formatFlag, *outputFlag, *removedFlag)
	})
	return cmd
}

func runCombine(gtfArg, abundanceArg, formatArg, outputArg, removed string) error {
	gtfs := strings.Split(gtfArg, ",")
	abundances := strings.Split(abundanceArg, ",")
	formats := strings.Split(formatArg, ",")
	outputs := strings.Split(outputArg, ",")
	if gtfArg == "" || removed == "" {
		return fmt.Errorf("-gtf and -removed are required")
	}
	if len(abundances) != len(gtfs) || len(formats) != len(gtfs) || len(outputs) != len(gtfs) {
		return fmt.Errorf("-gtf, -abundance, -format, and -output must list the same number of paths")
	}
	ctx := vcontext.Background()

	// The removed file doubles as the quarantine log sink and must
	// accumulate across pipelines, hence local append mode rather than
	// file.Create.
	removedOut, err := os.OpenFile(removed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	removedW := bufio.NewWriter(removedOut)
	quar := isoform.NewLog(removedW)

	// Entries from pipelines that already completed must reach the
	// sink even when a later pipeline fails.
	once := errors.Once{}
	for i := range gtfs {
		if err := combineOne(ctx, gtfs[i], abundances[i], formats[i], outputs[i], quar); err != nil {
			once.Set(err)
			break
		}
	}
	once.Set(removedW.Flush())
	once.Set(removedOut.Close())
	return once.Err()
}

func combineOne(ctx context.Context, gtfPath, abundancePath, formatName, outputPath string, quar *isoform.Log) error {
	format, err := abundance.ParseFormat(formatName)
	if err != nil {
		return err
	}
	counts, err := readAbundance(ctx, abundancePath, format)
	if err != nil {
		return err
	}
	log.Printf("%s: %d transcripts in abundance table", abundancePath, len(counts))

	in, err := file.Open(ctx, gtfPath)
	if err != nil {
		return err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	out, err := file.Create(ctx, outputPath)
	if err != nil {
		_ = in.Close(ctx)
		return err
	}
	w := bufio.NewWriter(out.Writer(ctx))

	stats, err := isoform.Combine(inr, counts, filepath.Base(gtfPath), gtf.NewWriter(w), quar, isoform.DefaultCombineOpts)
	once := errors.Once{}
	once.Set(err)
	once.Set(w.Flush())
	once.Set(out.Close(ctx))
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return err
	}
	log.Printf("%s: %d transcripts: %d kept, %d zero count, %d missing",
		gtfPath, stats.Transcripts, stats.Kept, stats.ZeroCount, stats.Missing)
	return nil
}

func readAbundance(ctx context.Context, path string, format abundance.Format) (abundance.Counts, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	counts, err := abundance.Read(inr, format)
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
