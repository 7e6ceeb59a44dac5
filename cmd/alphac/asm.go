package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/basecode-lang/alphac/asm"
	"github.com/basecode-lang/alphac/internal/diag"
	"github.com/basecode-lang/alphac/vm"
)

// newAsmCmd assembles a single raw inline-assembly file directly, bypassing
// the lex/parse/evaluate front end entirely (there is no element graph to
// build here, so compiler.Session's module-oriented Emit doesn't apply).
func newAsmCmd(flags *globalFlags) *cobra.Command {
	var execStats bool
	var dump bool
	cmd := &cobra.Command{
		Use:   "asm [file]",
		Short: "assemble a raw instruction-listing file and execute it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("asm requires exactly one file")
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}

			log := diag.NewNop()
			if flags.verbose {
				log, err = diag.NewLogger(true)
				if err != nil {
					return errors.Wrap(err, "building logger")
				}
			}

			var vmOpts []vm.Option
			if flags.heapSize > 0 {
				vmOpts = append(vmOpts, vm.HeapSize(flags.heapSize))
			}
			vmOpts = append(vmOpts, vm.WithLogger(log))

			term, err := vm.New(vmOpts...)
			if err != nil {
				return errors.Wrap(err, "starting vm")
			}
			a := asm.NewAssembler(term)
			if err := asm.CompileRawBlock(a, args[0], string(src)); err != nil {
				return errors.Wrap(err, "assembling")
			}
			a.Emit(func(e *asm.Emitter) int { return e.Exit(asm.Meta{}) })
			if _, err := a.Finalize(term.Heap); err != nil {
				return errors.Wrap(err, "finalizing")
			}

			start := time.Now()
			term.Reset()
			steps, runErr := term.Run(flags.steps)
			if execStats {
				delta := time.Since(start)
				fmt.Fprintf(cmd.OutOrStdout(), "executed %d step(s) in %v\n", steps, delta)
			}
			if dump {
				if err := diag.DumpTerp(cmd.OutOrStdout(), term); err != nil {
					return errors.Wrap(err, "dumping terp state")
				}
			}
			if runErr != nil {
				return errors.Wrap(runErr, "running")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&execStats, "stats", false, "print execution statistics upon exit")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump register state upon exit")
	return cmd
}
