package isoform

import "github.com/grailbio/bio-isoform/encoding/gtf"

// A Resolver derives an alternative abundance lookup key for a
// transcript header whose identifier was not found in the counts
// table. Resolvers run in order until one produces a key that is
// present; each receives the original identifier and the header line's
// whitespace-split fields.
type Resolver func(id string, fields []string) (string, error)

// GeneFusedID recovers transcripts that flair renamed by fusing the
// transcript and gene identifiers with an underscore: the abundance
// file then lists "<transcript>_<gene>" while the annotation file
// still says "<transcript>". Note the fused key is not checked for
// collisions with an unrelated real transcript id.
func GeneFusedID(id string, fields []string) (string, error) {
	geneID, err := gtf.GeneID(fields)
	if err != nil {
		return "", err
	}
	return id + "_" + geneID, nil
}
