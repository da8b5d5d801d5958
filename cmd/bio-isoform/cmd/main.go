package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run is the bio-isoform entry point.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-isoform",
			Short:    "Reconcile transcript assemblies from multiple long-read RNA pipelines",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdCombine(),
				newCmdMatch(),
			},
		})
}
