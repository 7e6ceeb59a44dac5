package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/basecode-lang/alphac/internal/ngi"
	"github.com/basecode-lang/alphac/source"
)

// Report renders one diagnostic as spec.md §7 describes: code, message, and
// a source snippet with a caret under the offending column. buf must be the
// Buffer the diagnostic's location was raised against.
func Report(w io.Writer, buf *source.Buffer, d source.Diagnostic) {
	fmt.Fprintf(w, "%s: %s: %s\n", d.Location, d.Code, d.Message)
	if buf == nil {
		return
	}
	line := buf.LineText(d.Location.Start)
	fmt.Fprintf(w, "    %s\n", line)
	col := d.Location.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", col-1))
}

// ReportAll renders every diagnostic in order, looking up each one's source
// Buffer by its location's file name. Writes are latched through an
// ErrWriter so a broken output stream (e.g. a full disk mid-dump) stops
// cheaply instead of retrying every remaining diagnostic.
func ReportAll(w io.Writer, buffers map[string]*source.Buffer, diags []source.Diagnostic) error {
	ew := ngi.NewErrWriter(w)
	for _, d := range diags {
		Report(ew, buffers[d.Location.Name], d)
		if ew.Err != nil {
			break
		}
	}
	return ew.Err
}
