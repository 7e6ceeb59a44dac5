package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/basecode-lang/alphac/compiler"
	"github.com/basecode-lang/alphac/internal/diag"
	"github.com/basecode-lang/alphac/vm"
)

// buildSession compiles every named file into a fresh compiler.Session,
// writing the AST/element-graph dumps flags requested and reporting any
// diagnostics raised to cmd.ErrOrStderr(). It returns the session and
// whether compilation succeeded; a false return has already had its
// diagnostics reported and needs no further error message.
func buildSession(cmd *cobra.Command, flags *globalFlags, files []string) (*compiler.Session, bool, error) {
	log := diag.NewNop()
	if flags.verbose {
		var err error
		log, err = diag.NewLogger(true)
		if err != nil {
			return nil, false, errors.Wrap(err, "building logger")
		}
	}

	var vmOpts []vm.Option
	if flags.heapSize > 0 {
		vmOpts = append(vmOpts, vm.HeapSize(flags.heapSize))
	}

	sess, err := compiler.New(compiler.WithLogger(log), compiler.WithVMOptions(vmOpts...))
	if err != nil {
		return nil, false, errors.Wrap(err, "starting compiler session")
	}

	ok := true
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			return nil, false, errors.Wrapf(err, "reading %s", name)
		}
		if _, fileOK := sess.Compile(name, src); !fileOK {
			ok = false
		}
	}

	if flags.astGraph != "" {
		if err := dumpASTGraph(sess, flags.astGraph); err != nil {
			return nil, false, err
		}
	}
	if flags.domGraph != "" {
		if err := dumpDomGraph(sess, flags.domGraph); err != nil {
			return nil, false, err
		}
	}

	if !ok {
		if err := diag.ReportAll(cmd.ErrOrStderr(), sess.Buffers, sess.Sess.Diagnostics()); err != nil {
			return nil, false, errors.Wrap(err, "reporting diagnostics")
		}
	}
	return sess, ok, nil
}

func dumpASTGraph(sess *compiler.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	for _, name := range sess.Files() {
		diag.DumpAST(f, sess.ASTs[name])
	}
	return nil
}

func dumpDomGraph(sess *compiler.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	for _, name := range sess.Files() {
		diag.DumpScope(f, sess.Scopes[name])
	}
	return nil
}
