package element

import "github.com/basecode-lang/alphac/source"

// Graph is the sole allocator of semantic elements. It assigns each
// element's id, owning module, and parent scope, mirroring ast.Builder's
// role one layer up (spec.md §4.E: "The element builder is the sole
// allocator of semantic elements; it sets the owning module, parent scope,
// id, and default source location.").
type Graph struct {
	nextID  ID
	scopes  *ScopeManager
	count   int
}

// NewGraph returns an empty Graph backed by the given scope manager.
func NewGraph(scopes *ScopeManager) *Graph {
	return &Graph{scopes: scopes}
}

// Scopes returns the graph's scope manager.
func (g *Graph) Scopes() *ScopeManager { return g.scopes }

func (g *Graph) alloc(kind Kind, loc source.Location) *Element {
	g.nextID++
	g.count++
	el := &Element{ID: g.nextID, Kind: kind, Location: loc}
	if s := g.scopes.Current(); s != nil {
		el.Module = g.scopes.CurrentTopLevel()
		el.Parent = s.Owner
	}
	return el
}

// NodeCount returns the number of elements allocated so far.
func (g *Graph) NodeCount() int { return g.count }

// Attach routes el into the current scope's ordered collections (spec.md
// §4.F's routing function); kinds the routing function does not recognize
// are dropped.
func (g *Graph) Attach(el *Element) {
	g.scopes.Current().route(el)
}

// --- typed constructors ---------------------------------------------------

// NewIdentifier allocates an identifier element bound to qsym.
func (g *Graph) NewIdentifier(loc source.Location, qsym QualifiedSymbol, init *Element) *Element {
	el := g.alloc(KindIdentifier, loc)
	el.Symbol = qsym
	el.Initializer = init
	return el
}

// NewIdentifierReference allocates an unresolved reference to qsym and
// enqueues it on the scope manager for later resolution (spec.md §9
// "two-pass symbol resolution").
func (g *Graph) NewIdentifierReference(loc source.Location, qsym QualifiedSymbol) *Element {
	el := g.alloc(KindIdentifierReference, loc)
	el.Symbol = qsym
	g.scopes.EnqueueUnresolved(el)
	return el
}

// NewNamespace allocates a namespace element owning its own scope.
func (g *Graph) NewNamespace(loc source.Location, name string) *Element {
	el := g.alloc(KindNamespace, loc)
	el.Symbol = QualifiedSymbol{Name: name}
	el.Body = NewScope(BlockGeneric, g.scopes.Current())
	el.Body.Owner = el
	return el
}

// NewBinaryOperator allocates a binary-operator element.
func (g *Graph) NewBinaryOperator(loc source.Location, op string, left, right *Element) *Element {
	el := g.alloc(KindBinaryOperator, loc)
	el.Operator = op
	el.Left, el.Right = left, right
	return el
}

// NewUnaryOperator allocates a unary-operator element.
func (g *Graph) NewUnaryOperator(loc source.Location, op string, operand *Element) *Element {
	el := g.alloc(KindUnaryOperator, loc)
	el.Operator = op
	el.Left = operand
	return el
}

// NewLiteral allocates a literal element of the given kind.
func (g *Graph) NewLiteral(kind Kind, loc source.Location, value string) *Element {
	el := g.alloc(kind, loc)
	el.LiteralValue = value
	return el
}

// NewCompositeType allocates a struct/union/enum type element. Its fields
// are appended to the element's Fields list by AddField; no scope is
// allocated for the composite, so its fields are not declared in any scope.
func (g *Graph) NewCompositeType(loc source.Location) *Element {
	el := g.alloc(KindCompositeType, loc)
	return el
}

// AddField appends a field to a composite type or a procedure's parameter
// list, recognizing both `name: Type` (assignment form, typeExpr non-nil)
// and bare `name` declarations (spec.md §4.E).
func (g *Graph) AddField(owner *Element, loc source.Location, name string, typeExpr *Element) *Element {
	field := g.alloc(KindField, loc)
	field.Symbol = QualifiedSymbol{Name: name}
	field.Type = typeExpr
	field.Parent = owner
	owner.Fields = append(owner.Fields, field)
	return field
}

// NewProcedureType allocates a procedure-type element. Parameters and
// return fields are appended afterward via AddField/AddReturnField,
// matching "return list first, then parameter list" construction order
// (spec.md §4.F).
func (g *Graph) NewProcedureType(loc source.Location) *Element {
	return g.alloc(KindProcedureType, loc)
}

// AddReturnField appends a return-type field to a procedure type.
func (g *Graph) AddReturnField(proc *Element, loc source.Location, typeExpr *Element) *Element {
	field := g.alloc(KindField, loc)
	field.Type = typeExpr
	field.Parent = proc
	proc.Returns = append(proc.Returns, field)
	return field
}

// AddParameter appends a parameter field to a procedure type, marking its
// identifier stack-resident per spec.md §4.F ("each parameter becomes a
// field whose identifier is marked stack-resident").
func (g *Graph) AddParameter(proc *Element, loc source.Location, name string, typeExpr *Element) *Element {
	field := g.AddField(proc, loc, name, typeExpr)
	field.StackResident = true
	return field
}

// NewProcedureInstance allocates a procedure-instance element with its own
// BlockProcedureInstance scope, and registers it on procType.Instances.
func (g *Graph) NewProcedureInstance(loc source.Location, procType *Element) *Element {
	el := g.alloc(KindProcedureInstance, loc)
	el.Type = procType
	el.Body = NewScope(BlockProcedureInstance, g.scopes.Current())
	el.Body.Owner = el
	procType.Instances = append(procType.Instances, el)
	return el
}

// NewProcedureCall allocates a call element.
func (g *Graph) NewProcedureCall(loc source.Location, callee *Element, args []*Element) *Element {
	el := g.alloc(KindProcedureCall, loc)
	el.Callee = callee
	el.Args = args
	return el
}

// NewCast allocates a cast or transmute element.
func (g *Graph) NewCast(loc source.Location, typeExpr, expr *Element, transmute bool) *Element {
	kind := KindCast
	if transmute {
		kind = KindTransmute
	}
	el := g.alloc(kind, loc)
	el.Type = typeExpr
	el.Left = expr
	return el
}

// NewReturn allocates a return element carrying its value expressions.
func (g *Graph) NewReturn(loc source.Location, values []*Element) *Element {
	el := g.alloc(KindReturn, loc)
	el.Args = values
	return el
}

// NewIf allocates an if element; elseBranch is either another if element
// (else-if) or a generic Else-kinded element wrapping a block, or nil.
func (g *Graph) NewIf(loc source.Location, cond *Element, then *Scope, elseBranch *Element) *Element {
	el := g.alloc(KindIf, loc)
	el.Condition = cond
	el.Then = then
	el.Else = elseBranch
	return el
}

// NewElse allocates a bare else-branch element wrapping its block.
func (g *Graph) NewElse(loc source.Location, body *Scope) *Element {
	el := g.alloc(KindElse, loc)
	el.Then = body
	return el
}

// NewWhile allocates a while element.
func (g *Graph) NewWhile(loc source.Location, cond *Element, body *Scope) *Element {
	el := g.alloc(KindWhile, loc)
	el.Condition = cond
	el.Then = body
	return el
}

// NewFor allocates a for-in element.
func (g *Graph) NewFor(loc source.Location, induction, iterable *Element, body *Scope) *Element {
	el := g.alloc(KindFor, loc)
	el.Induction = induction
	el.Iterable = iterable
	el.Then = body
	return el
}

// NewDefer allocates a defer element.
func (g *Graph) NewDefer(loc source.Location, body *Element) *Element {
	el := g.alloc(KindDefer, loc)
	el.Left = body
	return el
}

// NewWith allocates a with element.
func (g *Graph) NewWith(loc source.Location, target *Element, body *Scope) *Element {
	el := g.alloc(KindWith, loc)
	el.Left = target
	el.Then = body
	return el
}

// NewLabel allocates a label element.
func (g *Graph) NewLabel(loc source.Location, name string) *Element {
	el := g.alloc(KindLabel, loc)
	el.Symbol = QualifiedSymbol{Name: name}
	return el
}

// NewImport allocates an import element.
func (g *Graph) NewImport(loc source.Location, name string, from *Element) *Element {
	el := g.alloc(KindImport, loc)
	el.Symbol = QualifiedSymbol{Name: name}
	el.Initializer = from
	return el
}

// NewDirective allocates a directive element.
func (g *Graph) NewDirective(loc source.Location, name string, value *Element) *Element {
	el := g.alloc(KindDirective, loc)
	el.Symbol = QualifiedSymbol{Name: name}
	el.Left = value
	return el
}

// NewAttribute allocates an attribute element.
func (g *Graph) NewAttribute(loc source.Location, name string, value *Element) *Element {
	el := g.alloc(KindAttribute, loc)
	el.Symbol = QualifiedSymbol{Name: name}
	el.Left = value
	return el
}

// NewComment allocates a comment element, routed into the current scope's
// comment list by Attach.
func (g *Graph) NewComment(loc source.Location, text string, block bool) *Element {
	kind := KindLineComment
	if block {
		kind = KindBlockComment
	}
	el := g.alloc(kind, loc)
	el.LiteralValue = text
	return el
}

// NewIntrinsicCall allocates a size_of/align_of/address_of/type_of/alloc/
// free/copy/fill element wrapping its argument.
func (g *Graph) NewIntrinsicCall(kind Kind, loc source.Location, arg *Element) *Element {
	el := g.alloc(kind, loc)
	el.Left = arg
	return el
}

// NewRawBlock allocates a raw inline-assembly block element.
func (g *Graph) NewRawBlock(loc source.Location, text string) *Element {
	el := g.alloc(KindRawBlock, loc)
	el.RawText = text
	return el
}

// NewBreakContinue allocates a break or continue element.
func (g *Graph) NewBreakContinue(loc source.Location, isBreak bool) *Element {
	kind := KindContinue
	if isBreak {
		kind = KindBreak
	}
	return g.alloc(kind, loc)
}

// NewSpread allocates a spread element.
func (g *Graph) NewSpread(loc source.Location, expr *Element) *Element {
	el := g.alloc(KindSpread, loc)
	el.Left = expr
	return el
}

// NewStatement allocates a generic statement wrapper element and attaches
// it to the current scope's statement list.
func (g *Graph) NewStatement(loc source.Location, expr *Element) *Element {
	el := g.alloc(KindStatement, loc)
	el.Left = expr
	g.Attach(el)
	return el
}

// NewUnknownType manufactures an unresolved-inference placeholder type
// element (spec.md §4.F step 5: "if still unknown, manufacture an
// unknown-type placeholder attached to the identifier").
func (g *Graph) NewUnknownType(loc source.Location) *Element {
	return g.alloc(KindUnknownType, loc)
}
