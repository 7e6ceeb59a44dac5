package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/lexer"
	"github.com/basecode-lang/alphac/parser"
	"github.com/basecode-lang/alphac/source"
)

func evalSource(t *testing.T, src string) (*Evaluator, *source.Session) {
	t.Helper()
	buf := source.New(t.Name(), []byte(src))
	sess := &source.Session{}
	b := ast.NewBuilder()
	p := parser.New(lexer.New(buf), b, sess)
	mod := p.ParseModule()
	require.False(t, sess.Failed(), "parse failed: %+v", sess.Diagnostics())
	e := New(sess)
	e.EvaluateModule(mod)
	return e, sess
}

func hasDiagnosticCode(sess *source.Session, code string) bool {
	for _, d := range sess.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestIdentifierMaterializationPlainAssignment(t *testing.T) {
	_, sess := evalSource(t, "x := 5 ;")
	assert.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
}

// TestConstantAssignmentRequiresConstantRHS pins Open Question 2: a `::=`
// declaration with a non-constant right-hand side (here, a call
// expression) is rejected with P/C024.
func TestConstantAssignmentRequiresConstantRHS(t *testing.T) {
	_, sess := evalSource(t, "f := proc (a: s32) { return a ; } ; x ::= f(1) ;")
	require.True(t, sess.Failed(), "expected ::= with a non-constant rhs to fail")
	assert.True(t, hasDiagnosticCode(sess, "P/C024"), "expected P/C024 diagnostic, got %+v", sess.Diagnostics())
}

func TestConstantAssignmentAcceptsLiteral(t *testing.T) {
	_, sess := evalSource(t, "PI ::= 3 ;")
	assert.False(t, sess.Failed(), "unexpected diagnostics for constant literal: %+v", sess.Diagnostics())
}

func TestQualifiedDeclarationMaterializesNamespace(t *testing.T) {
	_, sess := evalSource(t, "geometry.pi ::= 3 ;")
	assert.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
}

func TestUnresolvedIdentifierReported(t *testing.T) {
	_, sess := evalSource(t, "y := missing ;")
	require.True(t, sess.Failed(), "expected unresolved-identifier diagnostic")
	assert.True(t, hasDiagnosticCode(sess, "P/U001"), "expected P/U001 diagnostic, got %+v", sess.Diagnostics())
}
