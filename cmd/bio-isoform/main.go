package main

/*
bio-isoform reconciles the outputs of three long-read RNA transcript
assembly pipelines (oxford, flair, talon).

"bio-isoform combine" merges per-transcript abundance counts into each
pipeline's annotation file, quarantining transcripts without read
support. "bio-isoform match" buckets transcripts by how many pipelines
assembled them, using a gffcompare tracking file.

Sample usage:

	bio-isoform combine \
	    -gtf flair.gtf,oxford.gtf,talon.gtf \
	    -abundance flair.tsv,oxford.csv,talon.tsv \
	    -format flair,oxford,talon \
	    -output flair_combined.gtf,oxford_combined.gtf,talon_combined.gtf \
	    -removed removed_transcripts.gtf

	bio-isoform match \
	    -tracking gffcmp.tracking \
	    -oxford oxford_combined.gtf -flair flair_combined.gtf -talon talon_combined.gtf \
	    -three-output three_match.gtf -two-output two_match.gtf -one-output one_match.gtf
*/

import "github.com/grailbio/bio-isoform/cmd/bio-isoform/cmd"

func main() {
	cmd.Run()
}
