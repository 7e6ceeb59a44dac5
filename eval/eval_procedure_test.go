package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/lexer"
	"github.com/basecode-lang/alphac/parser"
	"github.com/basecode-lang/alphac/source"
)

func evalModule(t *testing.T, src string) (*Evaluator, *element.Scope, *source.Session) {
	t.Helper()
	buf := source.New(t.Name(), []byte(src))
	sess := &source.Session{}
	b := ast.NewBuilder()
	p := parser.New(lexer.New(buf), b, sess)
	mod := p.ParseModule()
	require.False(t, sess.Failed(), "parse failed: %+v", sess.Diagnostics())
	e := New(sess)
	scope := e.EvaluateModule(mod)
	return e, scope, sess
}

func TestProcedureTypeReturnsListBeforeParameters(t *testing.T) {
	_, scope, sess := evalModule(t, "add ::= proc : s32 (a: s32, b: s32) { return a + b ; } ;")
	require.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
	decl, ok := scope.Lookup("add")
	require.True(t, ok, "expected 'add' to be declared")
	proc := decl.Initializer
	require.Equal(t, element.KindProcedureType, proc.Kind)
	assert.Len(t, proc.Returns, 1)
	require.Len(t, proc.Fields, 2)
	for _, p := range proc.Fields {
		assert.True(t, p.StackResident, "expected parameter %+v to be stack-resident", p)
	}
}

func TestProcedureWithBodyCreatesInstance(t *testing.T) {
	_, scope, sess := evalModule(t, "add ::= proc : s32 (a: s32, b: s32) { return a + b ; } ;")
	require.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
	decl, _ := scope.Lookup("add")
	proc := decl.Initializer
	require.Len(t, proc.Instances, 1)
	instance := proc.Instances[0]
	assert.Equal(t, element.KindProcedureInstance, instance.Kind)
	require.NotNil(t, instance.Body)
	assert.Len(t, instance.Body.Statements, 1, "expected instance body to contain the return statement")
}

func TestProcedureWithoutBodyHasNoInstance(t *testing.T) {
	_, scope, sess := evalModule(t, "Handler ::= proc : s32 (a: s32) ;")
	require.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
	decl, _ := scope.Lookup("Handler")
	proc := decl.Initializer
	assert.Empty(t, proc.Instances, "expected a bodyless procedure type to have no instances")
}

// TestProcedureAttributesFallThroughToInstance pins Open Question 1: a
// statement-level attribute on a procedure declaration also lands on the
// instantiated procedure body, not just the declared identifier.
func TestProcedureAttributesFallThroughToInstance(t *testing.T) {
	_, scope, sess := evalModule(t, "#inline\nadd ::= proc : s32 (a: s32, b: s32) { return a + b ; } ;")
	require.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
	decl, _ := scope.Lookup("add")
	require.True(t, decl.HasAttribute("inline"), "expected identifier to carry the #inline attribute")
	instance := decl.Initializer.Instances[0]
	assert.True(t, instance.HasAttribute("inline"), "expected procedure instance to also carry the #inline attribute (Open Question 1)")
}

func TestDefersRunInReverseRegistrationOrder(t *testing.T) {
	_, scope, sess := evalModule(t, `
cleanup ::= proc (a: s32) {
  defer a ;
  defer a + 1 ;
  return a ;
} ;
`)
	require.False(t, sess.Failed(), "unexpected diagnostics: %+v", sess.Diagnostics())
	decl, _ := scope.Lookup("cleanup")
	instance := decl.Initializer.Instances[0]
	require.Len(t, instance.Defers, 2)
	assert.Equal(t, "+", instance.Defers[0].Left.Operator, "expected last-registered defer (a + 1) to run first")
}
