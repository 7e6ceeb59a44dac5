package compiler

import (
	"testing"

	"github.com/basecode-lang/alphac/element"
)

// TestEmitAndRunPlainArithmetic covers spec.md scenario S1: a source file
// binding an identifier to an arithmetic expression should, after trivial
// lowering and a run, leave the evaluated value in the register bound to
// that identifier.
func TestEmitAndRunPlainArithmetic(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scope, ok := sess.Compile("s1.a", []byte("a := 5 + 7 * 2;\n"))
	if !ok {
		t.Fatalf("compile failed: %v", sess.Sess.Diagnostics())
	}

	if _, err := sess.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if _, err := sess.Run(10000); err != nil {
		t.Fatalf("Run: %v", err)
	}

	reg, ok := sess.RegisterFor(scope, "a")
	if !ok {
		t.Fatalf("no register lowered for %q", "a")
	}

	// Note: this asserts the lowering treats * with higher precedence than
	// +, matching ordinary arithmetic: 5 + 7*2 = 19, not (5+7)*2 = 24.
	if got, want := sess.Terp.I[reg], uint64(19); got != want {
		t.Fatalf("a = %d, want %d", got, want)
	}
}

// TestEmitRawBlockPassesThrough covers the raw-block path of Emit: inline
// assembly text lowered verbatim via asm.CompileRawBlock. The scope is built
// directly against the element package rather than through Compile, since
// the front end does not parse raw-block syntax out of source text — only
// the evaluator's ast.KindRawBlock handler produces these elements.
func TestEmitRawBlockPassesThrough(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw := &element.Element{
		Kind:    element.KindRawBlock,
		RawText: "move.qword r1, 41\ninc.qword r1\n",
	}
	stmt := &element.Element{Kind: element.KindStatement, Left: raw}
	scope := element.NewScope(element.BlockModule, nil)
	scope.Statements = append(scope.Statements, stmt)

	sess.order = append(sess.order, "s2.a")
	sess.modules = append(sess.modules, scope)

	if _, err := sess.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, err := sess.Run(10000); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := sess.Terp.I[1], uint64(42); got != want {
		t.Fatalf("r1 = %d, want %d", got, want)
	}
}
