// Package ngi holds small internal utilities shared by the diagnostic and
// driver packages.
package ngi

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and latches the first write error: once Err
// is set, every subsequent Write is a no-op returning that same error. This
// lets a caller doing many sequential writes (a multi-line diagnostic dump,
// say) skip checking err after every call and just inspect Err once at the
// end.
type ErrWriter struct {
	w   io.Writer
	Err error
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// NewErrWriter wraps w in an ErrWriter.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}
