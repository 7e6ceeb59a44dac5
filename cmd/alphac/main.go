package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

func main() {
	var flags globalFlags
	root := newRootCmd(&flags)
	if err := root.Execute(); err != nil {
		if flags.verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", errors.Cause(err))
		}
		os.Exit(1)
	}
}
