// Package source holds compiled source text and the diagnostics raised
// against it. It is the bottom of the pipeline described in the project's
// design notes: every other component borrows a *Buffer rather than owning
// its own copy of the text.
package source

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

// Location is a half-open byte range in a Buffer, plus its derived
// line/column for diagnostics. Line and Column are both 1-based.
type Location struct {
	Name        string
	Start, End  int
	Line        int
	Column      int
}

// String renders a location the way compiler tools traditionally do:
// "name:line:column".
func (l Location) String() string {
	return l.Name + ":" + itoa(l.Line) + ":" + itoa(l.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// Buffer holds one source file's contents, keyed by a path-like handle, and a
// precomputed table of line-break offsets so that Locate can binary search
// instead of rescanning on every call.
type Buffer struct {
	Name    string
	data    []byte
	lineOff []int // byte offset of the first character of each line
}

// New wraps raw bytes as a Buffer identified by name (typically a file path,
// but any stable handle works for embedded or generated sources).
func New(name string, data []byte) *Buffer {
	b := &Buffer{Name: name, data: data, lineOff: []int{0}}
	for i, c := range data {
		if c == '\n' {
			b.lineOff = append(b.lineOff, i+1)
		}
	}
	return b
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Byte returns the byte at offset, or 0 past end of buffer.
func (b *Buffer) Byte(offset int) byte {
	if offset < 0 || offset >= len(b.data) {
		return 0
	}
	return b.data[offset]
}

// Slice returns the raw bytes in [start,end). Out-of-range indices are
// clamped rather than panicking, since diagnostics may be raised against
// slightly stale offsets.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(b.data) {
		end = len(b.data)
	}
	if start > end {
		return nil
	}
	return b.data[start:end]
}

// Locate resolves a byte offset to a 1-based (line, column) pair.
func (b *Buffer) Locate(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.data) {
		offset = len(b.data)
	}
	i := sort.Search(len(b.lineOff), func(i int) bool { return b.lineOff[i] > offset })
	line = i // lineOff[i-1] is the start of this line, 0-based line index i-1
	col := offset - b.lineOff[i-1] + 1
	return line, col
}

// At builds a Location for [start,end) against this buffer.
func (b *Buffer) At(start, end int) Location {
	line, col := b.Locate(start)
	return Location{Name: b.Name, Start: start, End: end, Line: line, Column: col}
}

// LineText returns the full text of the line containing offset, without the
// trailing newline. Used to render the caret snippet in diagnostic output.
func (b *Buffer) LineText(offset int) []byte {
	line, _ := b.Locate(offset)
	start := b.lineOff[line-1]
	end := len(b.data)
	if idx := bytes.IndexByte(b.data[start:], '\n'); idx >= 0 {
		end = start + idx
	}
	return b.data[start:end]
}

// Diagnostic is a structured, append-only compiler message: a stable code, a
// human-readable message, and the location it was raised against.
type Diagnostic struct {
	Code     string
	Message  string
	Location Location
	Fatal    bool
}

func (d Diagnostic) Error() string {
	return d.Location.String() + ": " + d.Code + ": " + d.Message
}

// Session accumulates diagnostics in emission order and tracks whether the
// compilation has failed. It is embedded by every pipeline component that
// needs to raise errors, so that diagnostics across the lexer, parser and
// evaluator land in a single ordered list.
type Session struct {
	diags  []Diagnostic
	failed bool
}

// Error appends a diagnostic and marks the session failed if fatal is true.
// It also returns an error value wrapping the diagnostic so callers that
// want to propagate a Go error can do `return s.Error(...)`.
func (s *Session) Error(code, message string, loc Location, fatal bool) error {
	d := Diagnostic{Code: code, Message: message, Location: loc, Fatal: fatal}
	s.diags = append(s.diags, d)
	if fatal {
		s.failed = true
	}
	return errors.WithStack(d)
}

// Diagnostics returns all diagnostics raised so far, in emission order.
func (s *Session) Diagnostics() []Diagnostic { return s.diags }

// Failed reports whether any fatal diagnostic has been raised.
func (s *Session) Failed() bool { return s.failed }
