// Package eval walks an *ast.Node tree and drives the element.Graph/
// element.ScopeManager to build the post-AST semantic graph.
//
// Grounded on spec.md §4.F: a dispatch table from AST kind to handler, each
// handler receiving a context and returning its produced element (or
// failing silently into a recorded diagnostic, never a panic) — the same
// non-throwing contract package parser already follows one layer up.
package eval

import (
	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/source"
)

// Handler evaluates one AST node, producing an element or reporting
// failure via the Evaluator's session.
type Handler func(e *Evaluator, n *ast.Node) (*element.Element, bool)

// Evaluator owns the element graph and scope manager it builds into, plus
// the diagnostic session shared across the whole pipeline.
type Evaluator struct {
	Graph  *element.Graph
	Scopes *element.ScopeManager
	Sess   *source.Session

	handlers map[ast.Kind]Handler
}

// New returns an Evaluator wired to a fresh graph/scope manager, reporting
// diagnostics against sess.
func New(sess *source.Session) *Evaluator {
	scopes := element.NewScopeManager()
	e := &Evaluator{
		Graph:  element.NewGraph(scopes),
		Scopes: scopes,
		Sess:   sess,
	}
	e.handlers = defaultHandlers()
	return e
}

func (e *Evaluator) fail(code, msg string, loc source.Location) (*element.Element, bool) {
	e.Sess.Error(code, msg, loc, true)
	return nil, false
}

// Evaluate dispatches on n.Kind. It never panics: an unhandled kind or a
// handler failure both return (nil, false) after recording a diagnostic,
// matching spec.md §4.F's "the evaluator never throws" contract.
func (e *Evaluator) Evaluate(n *ast.Node) (*element.Element, bool) {
	if n == nil {
		return nil, false
	}
	h, ok := e.handlers[n.Kind]
	if !ok {
		return e.fail("P/B031", "no evaluator handler for this node kind", n.Location)
	}
	return h(e, n)
}

// EvaluateModule opens the program's root module scope, evaluates every
// top-level statement, then resolves the deferred identifier-reference
// queue (spec.md §9 "two-pass symbol resolution").
func (e *Evaluator) EvaluateModule(mod *ast.Node) *element.Scope {
	scope := e.Scopes.PushModule("main")
	e.evaluateScopeBody(mod, scope)
	e.Scopes.PopScope()

	for _, ref := range e.Scopes.ResolveAll() {
		e.Sess.Error("P/U001", "unresolved identifier "+ref.Symbol.FullyQualified(), ref.Location, true)
	}
	return scope
}

// evaluateScopeBody evaluates every child of an ast block/module node,
// routing comments/imports/statements into scope via element.Graph.Attach
// (each typed constructor that represents a top-level construct calls
// Attach itself; evaluateScopeBody's job is simply to visit every child in
// source order so routing and side effects happen in order).
func (e *Evaluator) evaluateScopeBody(block *ast.Node, scope *element.Scope) {
	for _, child := range block.Children {
		switch child.Kind {
		case ast.KindLineComment, ast.KindBlockComment:
			scope.Comments = append(scope.Comments, e.Graph.NewComment(child.Location, child.Token, child.Kind == ast.KindBlockComment))
		default:
			e.Evaluate(child)
		}
	}
}
