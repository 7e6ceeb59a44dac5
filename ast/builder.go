package ast

import "github.com/basecode-lang/alphac/source"

// scopeFrame tracks one open lexical scope: the block node itself and the
// attributes collected so far that are waiting to be transferred onto the
// next non-attribute statement (spec.md §4.D).
type scopeFrame struct {
	block        *Node
	pendingAttrs []*Node
}

// Builder is the central factory allocating every AST node, assigning a
// monotonically increasing ID, and maintaining the parser's lexical scope
// stack (BeginScope/EndScope). It is the sole allocator: nothing outside
// Builder may construct a Node directly, mirroring
// _examples/original_source/parser/ast.cpp's ast_builder.
type Builder struct {
	nextID ID
	nodes  []*Node
	scopes []*scopeFrame
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NodeCount returns the number of nodes allocated so far, for the
// monotonic-ids invariant test (spec.md testable property 6).
func (b *Builder) NodeCount() int { return len(b.nodes) }

func (b *Builder) alloc(kind Kind, loc source.Location, tok string) *Node {
	b.nextID++
	n := &Node{ID: b.nextID, Kind: kind, Location: loc, Token: tok}
	b.nodes = append(b.nodes, n)
	return n
}

// BeginScope allocates a new block node of the given kind, pushes it as the
// current scope, and returns it. Every BeginScope must be matched by an
// EndScope on all exit paths (spec.md §9's "scoped scope management"); see
// parser.Parser.parseBlock for the guarded push/pop pattern.
func (b *Builder) BeginScope(kind Kind, loc source.Location, tok string) *Node {
	block := b.alloc(kind, loc, tok)
	if len(b.scopes) > 0 {
		parent := b.scopes[len(b.scopes)-1].block
		parent.AddChild(block)
	}
	b.scopes = append(b.scopes, &scopeFrame{block: block})
	return block
}

// EndScope pops the current scope and returns its block node. It panics if
// called with no open scope, since that indicates a push/pop imbalance bug
// in the caller rather than a recoverable compile error.
func (b *Builder) EndScope() *Node {
	n := len(b.scopes)
	if n == 0 {
		panic("ast: EndScope called with no open scope")
	}
	f := b.scopes[n-1]
	b.scopes = b.scopes[:n-1]
	return f.block
}

// Depth returns the number of currently open scopes, used by tests to
// assert begin/end balance (spec.md testable property 5).
func (b *Builder) Depth() int { return len(b.scopes) }

// CurrentScope returns the innermost currently open block, or nil if no
// scope is open.
func (b *Builder) CurrentScope() *Node {
	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1].block
}

// PushPendingAttribute buffers attr on the current scope's pending-attribute
// list, to be transferred onto the next non-attribute statement.
func (b *Builder) PushPendingAttribute(attr *Node) {
	if len(b.scopes) == 0 {
		return
	}
	f := b.scopes[len(b.scopes)-1]
	f.pendingAttrs = append(f.pendingAttrs, attr)
}

// TransferPendingAttributes moves the current scope's buffered attributes
// onto stmt and clears the buffer. Called once per non-attribute statement.
func (b *Builder) TransferPendingAttributes(stmt *Node) {
	if len(b.scopes) == 0 || stmt == nil {
		return
	}
	f := b.scopes[len(b.scopes)-1]
	if len(f.pendingAttrs) == 0 {
		return
	}
	stmt.PendingAttributes = append(stmt.PendingAttributes, f.pendingAttrs...)
	f.pendingAttrs = nil
}

// --- typed constructors -----------------------------------------------

// NewLiteral allocates a literal node of the given kind.
func (b *Builder) NewLiteral(kind Kind, loc source.Location, tok string) *Node {
	return b.alloc(kind, loc, tok)
}

// NewSymbol allocates a bare (possibly qualified) symbol reference node.
func (b *Builder) NewSymbol(loc source.Location, tok string) *Node {
	return b.alloc(KindSymbol, loc, tok)
}

// NewBinary allocates a binary-operator node with the given operands.
func (b *Builder) NewBinary(loc source.Location, op string, left, right *Node) *Node {
	n := b.alloc(KindBinaryOperator, loc, op)
	n.SetLeft(left)
	n.SetRight(right)
	return n
}

// NewUnary allocates a unary-operator node.
func (b *Builder) NewUnary(loc source.Location, op string, operand *Node) *Node {
	n := b.alloc(KindUnaryOperator, loc, op)
	n.SetLeft(operand)
	return n
}

// NewAssignment allocates an assignment node (lhs := rhs form uses
// KindAssignment; the ::= form uses NewConstantAssignment).
func (b *Builder) NewAssignment(loc source.Location, lhs, rhs *Node) *Node {
	n := b.alloc(KindAssignment, loc, ":=")
	n.SetLeft(lhs)
	n.SetRight(rhs)
	return n
}

// NewConstantAssignment allocates a ::= node.
func (b *Builder) NewConstantAssignment(loc source.Location, lhs, rhs *Node) *Node {
	n := b.alloc(KindConstantAssignment, loc, "::=")
	n.SetLeft(lhs)
	n.SetRight(rhs)
	return n
}

// NewReturnNode pre-allocates an empty argument-list child for the return
// values, matching the original's return_node invariant (spec.md §4.C).
func (b *Builder) NewReturnNode(loc source.Location) *Node {
	n := b.alloc(KindReturn, loc, "return")
	n.AddChild(b.alloc(KindArgumentList, loc, ""))
	return n
}

// ReturnArgs returns the pre-allocated argument list of a return node.
func (n *Node) ReturnArgs() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// NewProcCall pre-allocates an argument-list child, matching the original's
// proc_expression_node invariant for call sites.
func (b *Builder) NewProcCall(loc source.Location, callee *Node) *Node {
	n := b.alloc(KindProcCall, loc, "")
	n.SetLeft(callee)
	n.AddChild(b.alloc(KindArgumentList, loc, ""))
	return n
}

// CallArgs returns the pre-allocated argument list of a call node.
func (n *Node) CallArgs() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// NewProcExpression pre-allocates a parameter-list child and a return
// argument-list child, since procedure type construction always reads both
// lists even when empty (spec.md §4.F).
func (b *Builder) NewProcExpression(loc source.Location) *Node {
	n := b.alloc(KindProcExpression, loc, "proc")
	n.AddChild(b.alloc(KindParameterList, loc, ""))
	n.AddChild(b.alloc(KindArgumentList, loc, "")) // return list
	return n
}

// Params returns a proc expression's pre-allocated parameter list.
func (n *Node) Params() *Node { return n.Children[0] }

// Returns returns a proc expression's pre-allocated return list.
func (n *Node) Returns() *Node { return n.Children[1] }

// NewIf allocates an if node; else-if/else chains are right-linked via
// SetRight onto the spine, per the parser's "if" parselet.
func (b *Builder) NewIf(loc source.Location, cond, then *Node) *Node {
	n := b.alloc(KindIf, loc, "if")
	n.SetLeft(cond)
	n.AddChild(then)
	return n
}

// NewWhile allocates a while node.
func (b *Builder) NewWhile(loc source.Location, cond, body *Node) *Node {
	n := b.alloc(KindWhile, loc, "while")
	n.SetLeft(cond)
	n.AddChild(body)
	return n
}

// NewForIn allocates a for-in node: induction variable as Left, iterable as
// Right, body as the sole child.
func (b *Builder) NewForIn(loc source.Location, induction, iterable, body *Node) *Node {
	n := b.alloc(KindForIn, loc, "for")
	n.SetLeft(induction)
	n.SetRight(iterable)
	n.AddChild(body)
	return n
}

// NewLabel allocates a statement-prefix label node.
func (b *Builder) NewLabel(loc source.Location, name string) *Node {
	return b.alloc(KindLabel, loc, name)
}

// NewDefer allocates a defer node wrapping its body expression.
func (b *Builder) NewDefer(loc source.Location, body *Node) *Node {
	n := b.alloc(KindDefer, loc, "defer")
	n.SetLeft(body)
	return n
}

// NewWith allocates a with node: target namespace expression as Left, body
// block as the sole child.
func (b *Builder) NewWith(loc source.Location, target, body *Node) *Node {
	n := b.alloc(KindWith, loc, "with")
	n.SetLeft(target)
	n.AddChild(body)
	return n
}

// NewAttribute allocates a standalone attribute node.
func (b *Builder) NewAttribute(loc source.Location, name string, value *Node) *Node {
	n := b.alloc(KindAttribute, loc, name)
	n.SetLeft(value)
	return n
}

// NewDirective allocates a directive node (e.g. #align, #packed).
func (b *Builder) NewDirective(loc source.Location, name string, value *Node) *Node {
	n := b.alloc(KindDirective, loc, name)
	n.SetLeft(value)
	return n
}

// NewImport allocates an import node; From, when non-nil, is the module
// path expression of an `import X from "path"` form.
func (b *Builder) NewImport(loc source.Location, name string, from *Node) *Node {
	n := b.alloc(KindImport, loc, name)
	n.SetRight(from)
	return n
}

// NewCast allocates a cast or transmute node over expr using the given
// transmute flag to select the kind.
func (b *Builder) NewCast(loc source.Location, typeExpr, expr *Node, transmute bool) *Node {
	kind := KindCast
	if transmute {
		kind = KindTransmute
	}
	n := b.alloc(kind, loc, "")
	n.SetLeft(typeExpr)
	n.SetRight(expr)
	return n
}

// NewSubscript allocates an `expr[index]` node.
func (b *Builder) NewSubscript(loc source.Location, target, index *Node) *Node {
	n := b.alloc(KindSubscript, loc, "")
	n.SetLeft(target)
	n.SetRight(index)
	return n
}

// NewComposite allocates a struct/union/enum expression node owning its own
// scope; fields are appended by the parser as children.
func (b *Builder) NewComposite(kind Kind, loc source.Location) *Node {
	return b.alloc(kind, loc, "")
}

// NewRawBlock allocates a raw inline-assembly block node; its Token carries
// the unparsed assembly text, to be compiled by package asm.
func (b *Builder) NewRawBlock(loc source.Location, text string) *Node {
	return b.alloc(KindRawBlock, loc, text)
}

// NewComment allocates a line or block comment node.
func (b *Builder) NewComment(loc source.Location, text string, block bool) *Node {
	kind := KindLineComment
	if block {
		kind = KindBlockComment
	}
	return b.alloc(kind, loc, text)
}

// NewStatement wraps expr (and any leading labels) into a KindStatement
// node, transferring any pending attributes from the current scope.
func (b *Builder) NewStatement(loc source.Location, labels []*Node, expr *Node) *Node {
	n := b.alloc(KindStatement, loc, "")
	for _, l := range labels {
		n.AddChild(l)
	}
	n.SetRight(expr)
	b.TransferPendingAttributes(n)
	return n
}

// NewParameter allocates a parameter node; flags (pointer/array/spread) may
// be set by the caller since they're only meaningful for this kind and
// KindTypeIdentifier.
func (b *Builder) NewParameter(loc source.Location, name string, typeExpr *Node) *Node {
	n := b.alloc(KindParameter, loc, name)
	n.SetLeft(typeExpr)
	return n
}

// NewTypeIdentifier allocates a type-identifier node.
func (b *Builder) NewTypeIdentifier(loc source.Location, name string) *Node {
	return b.alloc(KindTypeIdentifier, loc, name)
}

// NewField allocates a struct/union/enum field (either `name: Type` or bare
// `name` form; typeExpr is nil for the bare form).
func (b *Builder) NewField(loc source.Location, name string, typeExpr *Node) *Node {
	n := b.alloc(KindField, loc, name)
	n.SetLeft(typeExpr)
	return n
}

// NewSpread allocates a spread (`...expr`) node.
func (b *Builder) NewSpread(loc source.Location, expr *Node) *Node {
	n := b.alloc(KindSpread, loc, "...")
	n.SetLeft(expr)
	return n
}
