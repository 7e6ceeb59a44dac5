package parser

import (
	"testing"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/lexer"
	"github.com/basecode-lang/alphac/source"
)

func parseModule(t *testing.T, src string) (*ast.Node, *source.Session) {
	t.Helper()
	buf := source.New(t.Name(), []byte(src))
	sess := &source.Session{}
	l := lexer.New(buf)
	b := ast.NewBuilder()
	p := New(l, b, sess)
	mod := p.ParseModule()
	return mod, sess
}

func firstStatementExpr(t *testing.T, mod *ast.Node) *ast.Node {
	t.Helper()
	for _, c := range mod.Children {
		if c.Kind == ast.KindStatement {
			return c.Right
		}
	}
	t.Fatalf("no statement found in module: %+v", mod)
	return nil
}

func TestParserPrecedenceSumBeforeProduct(t *testing.T) {
	// a := 5 + 7 * 2 ; must parse product tighter than sum:
	// assign(a, sum(5, product(7,2)))
	mod, sess := parseModule(t, "a := 5 + 7 * 2 ;")
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	assign := firstStatementExpr(t, mod)
	if assign.Kind != ast.KindAssignment {
		t.Fatalf("got kind %v, want assignment", assign.Kind)
	}
	sum := assign.Right
	if sum.Kind != ast.KindBinaryOperator || sum.Token != "+" {
		t.Fatalf("got %+v, want top-level '+'", sum)
	}
	product := sum.Right
	if product.Kind != ast.KindBinaryOperator || product.Token != "*" {
		t.Fatalf("got %+v, want nested '*'", product)
	}
}

func TestParserLeftAssociativeSubtraction(t *testing.T) {
	// a - b - c must parse as (a - b) - c.
	mod, sess := parseModule(t, "x := a - b - c ;")
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	assign := firstStatementExpr(t, mod)
	outer := assign.Right
	if outer.Kind != ast.KindBinaryOperator || outer.Token != "-" {
		t.Fatalf("got %+v", outer)
	}
	inner := outer.Left
	if inner.Kind != ast.KindBinaryOperator || inner.Token != "-" {
		t.Fatalf("expected left-nested '-', got %+v", inner)
	}
	if outer.Right.Kind != ast.KindSymbol || outer.Right.Token != "c" {
		t.Fatalf("expected bare 'c' on the right, got %+v", outer.Right)
	}
}

func TestParserRightAssociativeAssignment(t *testing.T) {
	// a := b := 1 must parse as a := (b := 1).
	mod, sess := parseModule(t, "a := b := 1 ;")
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	outer := firstStatementExpr(t, mod)
	if outer.Kind != ast.KindAssignment {
		t.Fatalf("got %+v", outer)
	}
	inner := outer.Right
	if inner.Kind != ast.KindAssignment {
		t.Fatalf("expected nested assignment on the right, got %+v", inner)
	}
	if inner.Left.Token != "b" {
		t.Fatalf("got %+v, want inner lhs 'b'", inner.Left)
	}
}

func TestParserIfElseIfElseChain(t *testing.T) {
	mod, sess := parseModule(t, `
x := 0 ;
if a { x := 1 ; } else if b { x := 2 ; } else { x := 3 ; } ;
`)
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	var ifNode *ast.Node
	for _, c := range mod.Children {
		if c.Kind == ast.KindStatement && c.Right.Kind == ast.KindIf {
			ifNode = c.Right
		}
	}
	if ifNode == nil {
		t.Fatalf("no if statement found")
	}
	elseIf := ifNode.Right
	if elseIf == nil || elseIf.Kind != ast.KindElseIf {
		t.Fatalf("got %+v, want else-if spine", elseIf)
	}
	elseNode := elseIf.Right
	if elseNode == nil || elseNode.Kind != ast.KindElse {
		t.Fatalf("got %+v, want else", elseNode)
	}
}

func TestParserProcExpressionParamsAndReturns(t *testing.T) {
	mod, sess := parseModule(t, "add ::= proc : s32 (a: s32, b: s32) { return a + b ; } ;")
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	assign := firstStatementExpr(t, mod)
	if assign.Kind != ast.KindConstantAssignment {
		t.Fatalf("got %+v", assign)
	}
	proc := assign.Right
	if proc.Kind != ast.KindProcExpression {
		t.Fatalf("got %+v", proc)
	}
	if len(proc.Params().Children) != 2 {
		t.Fatalf("got %d params, want 2: %+v", len(proc.Params().Children), proc.Params().Children)
	}
	if len(proc.Returns().Children) != 1 {
		t.Fatalf("got %d returns, want 1: %+v", len(proc.Returns().Children), proc.Returns().Children)
	}
}

func TestParserCallArguments(t *testing.T) {
	mod, sess := parseModule(t, "r := add(1, 2, 3) ;")
	if sess.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sess.Diagnostics())
	}
	assign := firstStatementExpr(t, mod)
	call := assign.Right
	if call.Kind != ast.KindProcCall {
		t.Fatalf("got %+v", call)
	}
	if len(call.CallArgs().Children) != 3 {
		t.Fatalf("got %d args, want 3: %+v", len(call.CallArgs().Children), call.CallArgs().Children)
	}
}

func TestParserScopeBalancedAfterModule(t *testing.T) {
	b := ast.NewBuilder()
	buf := source.New(t.Name(), []byte("x := 1 ; if x { y := 2 ; } ;"))
	sess := &source.Session{}
	p := New(lexer.New(buf), b, sess)
	p.ParseModule()
	if b.Depth() != 0 {
		t.Fatalf("got scope depth %d after module parse, want 0", b.Depth())
	}
}
