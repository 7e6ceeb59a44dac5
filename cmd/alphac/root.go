package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds every flag shared across subcommands, bound on the root
// command with root.PersistentFlags().*Var the way cmd/retro/main.go bound
// flag.*Var.
type globalFlags struct {
	verbose  bool
	astGraph string
	domGraph string
	heapSize int
	steps    int64
}

func newRootCmd(flags *globalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:           "alphac",
		Short:         "compiler driver: lex, parse, lower, assemble, run",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable development-mode structured logging")
	root.PersistentFlags().StringVar(&flags.astGraph, "ast-graph", "", "write an indented AST dump to `filename`")
	root.PersistentFlags().StringVar(&flags.domGraph, "dom-graph", "", "write an indented element-graph dump to `filename`")
	root.PersistentFlags().IntVar(&flags.heapSize, "heap-size", 0, "override the VM heap size in bytes (0: default)")
	root.PersistentFlags().Int64Var(&flags.steps, "steps", 0, "cap the number of VM steps run (0: unbounded)")

	root.AddCommand(newBuildCmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newAsmCmd(flags))
	return root
}
