package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build [files...]",
		Short: "compile, lower and assemble without running",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("build requires at least one source file")
			}
			sess, ok, err := buildSession(cmd, flags, args)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("compilation failed")
			}
			addrs, err := sess.Emit()
			if err != nil {
				return errors.Wrap(err, "assembling")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assembled %d instruction(s)\n", len(addrs))
			return nil
		},
	}
}
