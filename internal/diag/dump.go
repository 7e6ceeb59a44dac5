package diag

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/internal/ngi"
	"github.com/basecode-lang/alphac/vm"
)

// DumpAST writes an indented text dump of an AST rooted at n, one node per
// line as "kind [token]". Grounded on the teacher's DumpVM-style text
// dumping of machine state, applied here to the front end's tree instead of
// the VM's stacks.
func DumpAST(w io.Writer, n *ast.Node) {
	dumpNode(w, n, 0)
}

func dumpNode(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.Token != "" {
		fmt.Fprintf(w, "%s%d %q\n", indent, int(n.Kind), n.Token)
	} else {
		fmt.Fprintf(w, "%s%d\n", indent, int(n.Kind))
	}
	dumpNode(w, n.Left, depth+1)
	dumpNode(w, n.Right, depth+1)
	for _, c := range n.Children {
		dumpNode(w, c, depth+1)
	}
}

// DumpScope writes an indented text dump of an element-graph scope: each
// statement's kind and symbol (if any), then nested scopes recursively.
func DumpScope(w io.Writer, s *element.Scope) {
	dumpScope(w, s, 0)
}

func dumpScope(w io.Writer, s *element.Scope, depth int) {
	if s == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, stmt := range s.Statements {
		el := stmt.Left
		if el == nil {
			continue
		}
		if el.Symbol.Name != "" {
			fmt.Fprintf(w, "%s%d %s\n", indent, int(el.Kind), el.Symbol.FullyQualified())
		} else {
			fmt.Fprintf(w, "%s%d\n", indent, int(el.Kind))
		}
	}
	for _, nested := range s.Nested {
		fmt.Fprintf(w, "%sscope:\n", indent)
		dumpScope(w, nested, depth+1)
	}
}

func dumpCells(w *ngi.ErrWriter, prefix byte, a []uint64) {
	w.Write([]byte{prefix})
	l := len(a) - 1
	for i := 0; i < l; i++ {
		io.WriteString(w, strconv.FormatUint(a[i], 10))
		w.Write([]byte{' '})
	}
	if l >= 0 {
		io.WriteString(w, strconv.FormatUint(a[l], 10))
	}
}

// DumpTerp dumps a Terp's integer registers, float registers (as their bit
// patterns), and PC/SP/FR/SR to w for post-mortem inspection, one
// '\x1c'/'\x1d'-prefixed line per register bank. Grounded on the teacher's
// DumpVM, adapted from dumping the old Forth-cell data/address stacks to
// dumping this VM's register file.
func DumpTerp(w io.Writer, t *vm.Terp) error {
	ew := ngi.NewErrWriter(w)
	dumpCells(ew, '\x1c', t.I[:])
	ew.Write([]byte{'\n'})
	floats := make([]uint64, len(t.F))
	for i, f := range t.F {
		floats[i] = math.Float64bits(f)
	}
	dumpCells(ew, '\x1d', floats)
	ew.Write([]byte{'\n'})
	fmt.Fprintf(ew, "pc=%d sp=%d fr=%d sr=%d\n", t.PC, t.SP, t.FR, t.SR)
	return ew.Err
}
