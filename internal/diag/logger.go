// Package diag wraps structured logging and renders the caret-pointed
// source snippets described by spec.md §7's user-visible failure behavior.
package diag

import "go.uber.org/zap"

// NewLogger returns a SugaredLogger: development-style (human-readable,
// caller/stack traces on warn+) when verbose is true, production-style
// (JSON, info level) otherwise.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// NewNop returns a logger that discards everything, for tests and callers
// that don't want diagnostics on stderr.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
