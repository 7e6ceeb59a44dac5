package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/basecode-lang/alphac/internal/diag"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var execStats bool
	var dump bool
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "compile, lower, assemble, and execute",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("run requires at least one source file")
			}
			sess, ok, err := buildSession(cmd, flags, args)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("compilation failed")
			}
			if _, err := sess.Emit(); err != nil {
				return errors.Wrap(err, "assembling")
			}

			start := time.Now()
			steps, runErr := sess.Run(flags.steps)
			if execStats {
				delta := time.Since(start)
				fmt.Fprintf(cmd.OutOrStdout(), "executed %d step(s) in %v\n", steps, delta)
			}
			if dump {
				if err := diag.DumpTerp(cmd.OutOrStdout(), sess.Terp); err != nil {
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
