package eval

import (
	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/element"
)

func defaultHandlers() map[ast.Kind]Handler {
	return map[ast.Kind]Handler{
		ast.KindStatement: handleStatement,

		ast.KindAssignment:         handleIdentifierDecl,
		ast.KindConstantAssignment: handleIdentifierDecl,

		ast.KindBinaryOperator: handleBinary,
		ast.KindUnaryOperator:  handleUnary,
		ast.KindAddressOf:      handleUnary,

		ast.KindLiteralInteger: handleLiteral,
		ast.KindLiteralFloat:   handleLiteral,
		ast.KindLiteralString:  handleLiteral,
		ast.KindLiteralChar:    handleLiteral,
		ast.KindLiteralBool:    handleLiteral,
		ast.KindLiteralNull:    handleLiteral,

		ast.KindSymbol:     handleSymbolRef,
		ast.KindSymbolPart: handleSymbolRef,

		ast.KindIf:       handleIf,
		ast.KindWhile:    handleWhile,
		ast.KindForIn:    handleForIn,
		ast.KindReturn:   handleReturn,
		ast.KindImport:   handleImport,
		ast.KindDirective: handleDirective,
		ast.KindLabel:    handleLabel,
		ast.KindDefer:    handleDefer,
		ast.KindWith:     handleWith,

		ast.KindStructExpression: handleComposite,
		ast.KindUnionExpression:  handleComposite,
		ast.KindEnumExpression:   handleComposite,

		ast.KindProcExpression: handleProcExpression,
		ast.KindProcCall:       handleCall,
		ast.KindSubscript:      handleSubscript,

		ast.KindRawBlock: handleRawBlock,

		ast.KindCast:      handleCast,
		ast.KindTransmute: handleCast,

		ast.KindSizeOf:    handleIntrinsic,
		ast.KindAlignOf:   handleIntrinsic,
		ast.KindTypeOf:    handleIntrinsic,
		ast.KindAlloc:     handleIntrinsic,
		ast.KindFree:      handleIntrinsic,

		ast.KindSpread:        handleSpread,
		ast.KindBreak:         handleBreakContinue,
		ast.KindContinue:      handleBreakContinue,
		ast.KindNamespace:     handleNamespace,
		ast.KindTypeIdentifier: handleTypeIdentifier,
	}
}

// astQualifiedSymbol reads a chain of KindSymbol/KindSymbolPart nodes built
// by parser.parseMemberAccess into a namespace-qualified symbol, e.g.
// `a.b.c` becomes Parts=["a","b"], Name="c".
func astQualifiedSymbol(n *ast.Node) element.QualifiedSymbol {
	var segs []*ast.Node // trailing identifier of each '.' link, innermost first
	cur := n
	for cur.Kind == ast.KindSymbolPart {
		segs = append(segs, cur.Right)
		cur = cur.Left
	}
	// cur is now the leading bare symbol; walk segs in reverse to recover
	// source order (a.b.c -> parts=[a,b], name=c).
	var parts []string
	for i := len(segs) - 1; i >= 0; i-- {
		parts = append(parts, cur.Token)
		cur = segs[i]
	}
	return element.QualifiedSymbol{Parts: parts, Name: cur.Token, Location: n.Location}
}

func handleLabel(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	return e.Graph.NewLabel(n.Location, n.Token), true
}

// handleStatement evaluates the wrapped expression, transfers the AST
// node's pending attributes onto the produced element, and appends a
// statement wrapper to the current scope.
func handleStatement(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	for _, label := range n.Children {
		e.Evaluate(label)
	}
	inner, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	for _, attrNode := range n.PendingAttributes {
		val, _ := e.Evaluate(attrNode.Left)
		attr := e.Graph.NewAttribute(attrNode.Location, attrNode.Token, val)
		inner.SetAttribute(attrNode.Token, attr)
	}
	// A procedure declaration's statement-level attributes (e.g. #inline)
	// also apply to the instantiated procedure body, not just the
	// identifier naming it (Open Question 1 — see DESIGN.md: treated as
	// intentional, matching the source's fallthrough from
	// add_procedure_instance into basic_block).
	if proc, instance := procedureInstanceOf(inner); proc != nil {
		for name, attr := range inner.Attributes {
			instance.SetAttribute(name, attr)
		}
	}
	stmt := e.Graph.NewStatement(n.Location, inner)
	return stmt, true
}

// procedureInstanceOf reports the procedure type and its freshly-created
// instance when decl is an identifier whose initializer is a procedure
// type with exactly one instance (the one this declaration just built).
func procedureInstanceOf(decl *element.Element) (*element.Element, *element.Element) {
	if decl.Kind != element.KindIdentifier || decl.Initializer == nil {
		return nil, nil
	}
	proc := decl.Initializer
	if proc.Kind != element.KindProcedureType || len(proc.Instances) == 0 {
		return nil, nil
	}
	return proc, proc.Instances[len(proc.Instances)-1]
}

func handleLiteral(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	kind := map[ast.Kind]element.Kind{
		ast.KindLiteralInteger: element.KindLiteralInteger,
		ast.KindLiteralFloat:   element.KindLiteralFloat,
		ast.KindLiteralString:  element.KindLiteralString,
		ast.KindLiteralChar:    element.KindLiteralChar,
		ast.KindLiteralBool:    element.KindLiteralBool,
		ast.KindLiteralNull:    element.KindLiteralNull,
	}[n.Kind]
	return e.Graph.NewLiteral(kind, n.Location, n.Token), true
}

func handleBinary(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	left, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	right, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	return e.Graph.NewBinaryOperator(n.Location, n.Token, left, right), true
}

func handleUnary(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	operand, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	return e.Graph.NewUnaryOperator(n.Location, n.Token, operand), true
}

// handleSymbolRef produces an identifier-reference element for a bare or
// qualified symbol; resolution happens later via Scopes.ResolveAll.
func handleSymbolRef(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	qsym := astQualifiedSymbol(n)
	ref := e.Graph.NewIdentifierReference(n.Location, qsym)
	if target, ok := e.Scopes.FindIdentifier(e.Scopes.Current(), qsym); ok {
		ref.Resolved = true
		ref.Target = target
	}
	return ref, true
}

func handleTypeIdentifier(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	if t, ok := e.Scopes.FindType(e.Scopes.Current(), n.Token); ok {
		return t, true
	}
	return e.Graph.NewUnknownType(n.Location), true
}

func handleCast(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	typeExpr, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	expr, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	return e.Graph.NewCast(n.Location, typeExpr, expr, n.Kind == ast.KindTransmute), true
}

func handleIntrinsic(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	kindMap := map[ast.Kind]element.Kind{
		ast.KindSizeOf:  element.KindSizeOf,
		ast.KindAlignOf: element.KindAlignOf,
		ast.KindTypeOf:  element.KindTypeOf,
		ast.KindAlloc:   element.KindAlloc,
		ast.KindFree:    element.KindFree,
	}
	var arg *element.Element
	var ok bool
	if n.Left != nil {
		arg, ok = e.Evaluate(n.Left)
		if !ok {
			return nil, false
		}
	}
	return e.Graph.NewIntrinsicCall(kindMap[n.Kind], n.Location, arg), true
}

func handleSpread(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	inner, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	return e.Graph.NewSpread(n.Location, inner), true
}

func handleBreakContinue(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	return e.Graph.NewBreakContinue(n.Location, n.Kind == ast.KindBreak), true
}

func handleSubscript(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	target, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	index, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	return e.Graph.NewBinaryOperator(n.Location, "[]", target, index), true
}

func handleCall(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	callee, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	var args []*element.Element
	for _, a := range n.CallArgs().Children {
		arg, ok := e.Evaluate(a)
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
	return e.Graph.NewProcedureCall(n.Location, callee, args), true
}

func handleReturn(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	var vals []*element.Element
	for _, v := range n.ReturnArgs().Children {
		val, ok := e.Evaluate(v)
		if !ok {
			return nil, false
		}
		vals = append(vals, val)
	}
	return e.Graph.NewReturn(n.Location, vals), true
}

func handleImport(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	var from *element.Element
	if n.Right != nil {
		var ok bool
		from, ok = e.Evaluate(n.Right)
		if !ok {
			return nil, false
		}
	}
	imp := e.Graph.NewImport(n.Location, n.Token, from)
	e.Graph.Attach(imp)
	return imp, true
}

func handleDirective(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	var val *element.Element
	if n.Left != nil {
		var ok bool
		val, ok = e.Evaluate(n.Left)
		if !ok {
			return nil, false
		}
	}
	return e.Graph.NewDirective(n.Location, n.Token, val), true
}

func handleIf(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	cond, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	thenScope := evaluateBlock(e, n.Children[0])

	var elseBranch *element.Element
	switch {
	case n.Right == nil:
		// no else clause
	case n.Right.Kind == ast.KindElseIf:
		elseBranch, ok = handleIf(e, n.Right)
		if !ok {
			return nil, false
		}
	case n.Right.Kind == ast.KindElse:
		elseScope := evaluateBlock(e, n.Right.Children[0])
		elseBranch = e.Graph.NewElse(n.Right.Location, elseScope)
	}
	return e.Graph.NewIf(n.Location, cond, thenScope, elseBranch), true
}

func handleWhile(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	cond, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	body := evaluateBlock(e, n.Children[0])
	return e.Graph.NewWhile(n.Location, cond, body), true
}

func handleForIn(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	induction, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	iterable, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}
	body := evaluateBlock(e, n.Children[0])
	return e.Graph.NewFor(n.Location, induction, iterable, body), true
}

// handleDefer evaluates the deferred expression and registers it on the
// innermost enclosing procedure instance's Defers list (supplemented
// feature: once the body finishes, handleProcExpression replaces this list
// with resolveDefers' reversed copy).
func handleDefer(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	body, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	def := e.Graph.NewDefer(n.Location, body)
	if owner := currentProcedureInstance(e); owner != nil {
		owner.Defers = append(owner.Defers, def)
	}
	return def, true
}

func currentProcedureInstance(e *Evaluator) *element.Element {
	for s := e.Scopes.Current(); s != nil; s = s.Parent {
		if s.Kind == element.BlockProcedureInstance && s.Owner != nil {
			return s.Owner
		}
	}
	return nil
}

// resolveDefers returns a procedure instance's registered defers in reverse
// registration order, the order they run in (supplemented feature: spec.md names `defer` as an
// AST/element kind but leaves its runtime ordering to the implementation;
// last-registered-runs-first is the conventional semantics carried over
// from the languages this AST shape is modeled on).
func resolveDefers(instance *element.Element) []*element.Element {
	out := make([]*element.Element, len(instance.Defers))
	for i, d := range instance.Defers {
		out[len(out)-1-i] = d
	}
	return out
}

// handleWith evaluates the target expression and opens a generic scope for
// the body, without merging the target's fields into the lookup chain —
// name resolution inside a `with` body still goes through the ordinary
// scope chain (supplemented feature; spec.md's grammar admits `with` but
// does not specify its resolution semantics beyond scoping the block).
func handleWith(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	target, ok := e.Evaluate(n.Left)
	if !ok {
		return nil, false
	}
	body := evaluateBlock(e, n.Children[0])
	return e.Graph.NewWith(n.Location, target, body), true
}

func handleNamespace(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	ns := e.Graph.NewNamespace(n.Location, n.Token)
	if cur := e.Scopes.Current(); cur != nil {
		cur.Declare(n.Token, ns)
	}
	e.Scopes.PushNewBlockExisting(ns.Body)
	e.evaluateScopeBody(n.Children[0], ns.Body)
	e.Scopes.PopScope()
	return ns, true
}

// evaluateBlock opens a generic scope for an ast block node, evaluates its
// statements, and restores the prior scope.
func evaluateBlock(e *Evaluator, astBlock *ast.Node) *element.Scope {
	scope := e.Scopes.PushNewBlock(element.BlockGeneric)
	e.evaluateScopeBody(astBlock, scope)
	e.Scopes.PopScope()
	return scope
}

func handleComposite(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	composite := e.Graph.NewCompositeType(n.Location)
	for _, field := range n.Children {
		var typeExpr *element.Element
		if field.Left != nil {
			var ok bool
			typeExpr, ok = e.Evaluate(field.Left)
			if !ok {
				return nil, false
			}
		}
		e.Graph.AddField(composite, field.Location, field.Token, typeExpr)
	}
	return composite, true
}

func handleRawBlock(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	return e.Graph.NewRawBlock(n.Location, n.Token), true
}

// handleProcExpression constructs a procedure type (return list first,
// then parameter list, per spec.md §4.F) and, if a body is present,
// immediately instantiates it into a procedure instance whose body block
// is traversed to create the instance (materialization step 7).
func handleProcExpression(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	proc := e.Graph.NewProcedureType(n.Location)
	for _, ret := range n.Returns().Children {
		typeExpr, ok := e.Evaluate(ret)
		if !ok {
			return nil, false
		}
		e.Graph.AddReturnField(proc, ret.Location, typeExpr)
	}
	for _, param := range n.Params().Children {
		var typeExpr *element.Element
		if param.Left != nil {
			var ok bool
			typeExpr, ok = e.Evaluate(param.Left)
			if !ok {
				return nil, false
			}
		}
		e.Graph.AddParameter(proc, param.Location, param.Token, typeExpr)
	}

	if len(n.Children) > 2 {
		body := n.Children[2]
		instance := e.Graph.NewProcedureInstance(n.Location, proc)
		e.Scopes.PushNewBlockExisting(instance.Body)
		for _, p := range proc.Fields {
			instance.Body.Declare(p.Symbol.Name, p)
		}
		e.evaluateScopeBody(body, instance.Body)
		e.Scopes.PopScope()
		instance.Defers = resolveDefers(instance)
	}
	return proc, true
}

// handleIdentifierDecl implements spec.md §4.F's identifier materialization
// algorithm for both `:=` and `::=` declarations:
//
//  1. determine the target scope (current top-level if qualified, else
//     current/supplied scope);
//  2. walk the namespace prefix, creating namespace elements for missing
//     segments (erroring if an existing element there is not a namespace);
//  3. evaluate the initializer;
//  4. if the initializer is a type reference and the declaration is
//     `::=`, alias the type (Open Question: this repo requires the RHS of
//     a `::=` to be a constant expression — see DESIGN.md "Open Question
//     decisions");
//  5. compute the identifier's type (explicit, inferred, or an unknown
//     placeholder);
//  6. if the initializer is a non-constant expression and no initializer
//     element was attached, synthesize an assignment statement;
//  7. if the initializer is a procedure type, its instance traversal
//     already happened inside handleProcExpression (step 7 folded into
//     step 3's evaluation rather than repeated here).
func handleIdentifierDecl(e *Evaluator, n *ast.Node) (*element.Element, bool) {
	isConstant := n.Kind == ast.KindConstantAssignment
	qsym := astQualifiedSymbol(n.Left)

	// Step 1+2: resolve target scope, materializing missing namespace
	// segments along a qualified prefix.
	targetScope := e.Scopes.Current()
	if qsym.Qualified() {
		targetScope = e.Scopes.CurrentTopLevel()
		for _, part := range qsym.Parts {
			existing, ok := targetScope.Lookup(part)
			if !ok {
				ns := e.Graph.NewNamespace(n.Location, part)
				targetScope.Declare(part, ns)
				existing = ns
			} else if existing.Kind != element.KindNamespace {
				return e.fail("P/C021", "'"+part+"' is not a namespace", n.Location)
			}
			targetScope = existing.Body
		}
	}

	// Step 3: evaluate the initializer.
	init, ok := e.Evaluate(n.Right)
	if !ok {
		return nil, false
	}

	if isConstant && !isConstantExpression(init) {
		return e.fail("P/C024", "right-hand side of ::= must be a constant expression", n.Right.Location)
	}

	id := e.Graph.NewIdentifier(n.Location, qsym, init)

	// Step 4: alias a resolved type reference under ::=.
	if isConstant && isTypeLike(init) {
		id.IsTypeAlias = true
		id.Type = init
	} else {
		// Step 5: compute the identifier's type.
		if init.Type != nil {
			id.Type = init.Type
		} else {
			id.Type = e.Graph.NewUnknownType(n.Location)
		}
	}

	targetScope.Declare(qsym.Name, id)

	// Step 6: synthesize an assignment statement for a non-constant
	// initializer that produced no standalone initializer element (a
	// procedure/composite-type declaration is its own element and needs
	// no synthetic assignment; anything else that is not itself constant
	// does).
	if !isConstant && !isConstantExpression(init) && !isTypeLike(init) {
		assign := e.Graph.NewBinaryOperator(n.Location, ":=", id, init)
		e.Graph.NewStatement(n.Location, assign)
	}

	return id, true
}

func isTypeLike(el *element.Element) bool {
	switch el.Kind {
	case element.KindType, element.KindCompositeType, element.KindNumericType,
		element.KindPointerType, element.KindArrayType, element.KindProcedureType,
		element.KindUnknownType:
		return true
	}
	return false
}

// isConstantExpression reports whether el is a compile-time constant:
// literals, type expressions, and procedure types all qualify; everything
// else (identifier references, calls, runtime operators) does not. This is
// the resolution of Open Question 2 (see DESIGN.md).
func isConstantExpression(el *element.Element) bool {
	switch el.Kind {
	case element.KindLiteralInteger, element.KindLiteralFloat, element.KindLiteralString,
		element.KindLiteralChar, element.KindLiteralBool, element.KindLiteralNull:
		return true
	}
	return isTypeLike(el)
}
