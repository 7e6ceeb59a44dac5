// Package element implements the post-AST semantic graph: typed, parented
// "elements" produced by the evaluator, plus the nested scope/symbol-table
// structure described in the project's design notes.
//
// Grounded on _examples/original_source/element.h's tagged-variant element
// hierarchy (a shared header of id/module/parent/location/attributes, with
// per-kind payload), generalized here into a single Element struct carrying
// every kind's payload as optional fields — the same flattening the ast
// package already applies to its node type, kept consistent across layers.
package element

import "github.com/basecode-lang/alphac/source"

// Kind is the closed tag set of semantic element kinds (spec.md §3 names
// ≥50).
type Kind int

// Element kinds.
const (
	KindInvalid Kind = iota
	KindIdentifier
	KindIdentifierReference
	KindType
	KindCompositeType
	KindNumericType
	KindPointerType
	KindArrayType
	KindProcedureType
	KindProcedureInstance
	KindProcedureCall
	KindBinaryOperator
	KindUnaryOperator
	KindLiteralInteger
	KindLiteralFloat
	KindLiteralString
	KindLiteralChar
	KindLiteralBool
	KindLiteralNull
	KindCast
	KindTransmute
	KindReturn
	KindIf
	KindElse
	KindWhile
	KindFor
	KindDefer
	KindWith
	KindBreak
	KindContinue
	KindLabel
	KindImport
	KindModule
	KindNamespace
	KindDirective
	KindAttribute
	KindStatement
	KindExpression
	KindSizeOf
	KindAlignOf
	KindAddressOf
	KindTypeOf
	KindAlloc
	KindFree
	KindCopy
	KindFill
	KindRawBlock
	KindSpread
	KindField
	KindInitializer
	KindTypeReference
	KindSymbol
	KindLineComment
	KindBlockComment
	KindUnknownType // placeholder manufactured when inference fails
)

// ID uniquely identifies an Element within one Graph's arena.
type ID int

// QualifiedSymbol is a namespace path plus a terminal name: the
// `a.b.c` in `a.b.c := 1`.
type QualifiedSymbol struct {
	Parts    []string // namespace prefix, e.g. ["a", "b"]
	Name     string   // terminal name, e.g. "c"
	Location source.Location
}

// FullyQualified renders the dotted string form used for symbol-table keys
// and diagnostics.
func (q QualifiedSymbol) FullyQualified() string {
	s := q.Name
	for i := len(q.Parts) - 1; i >= 0; i-- {
		s = q.Parts[i] + "." + s
	}
	return s
}

// Qualified reports whether the symbol carries a namespace prefix.
func (q QualifiedSymbol) Qualified() bool { return len(q.Parts) > 0 }

// Element is the single semantic graph node type. Every kind's payload is
// carried as optional fields on this shared struct (mirroring ast.Node's
// flattening of its own tagged variant), rather than as a Go interface
// hierarchy: dispatch on Kind, not on dynamic type, matching the "match
// arms over kind" pattern in the design notes.
type Element struct {
	ID       ID
	Kind     Kind
	Module   *Scope   // owning module's top-level block (weak)
	Parent   *Element // weak, never owning
	Location source.Location

	// Attributes collected from the originating AST node's pending
	// attribute list, keyed by name.
	Attributes map[string]*Element

	// identifier / identifier-reference
	Symbol      QualifiedSymbol
	Initializer *Element
	Type        *Element // resolved or placeholder type
	StackResident bool   // true for procedure parameters

	// binary/unary operator
	Operator    string
	Left, Right *Element

	// literals
	LiteralValue string

	// composite/procedure types
	Fields    []*Element // struct/union/enum fields, or proc parameters
	Returns   []*Element // procedure return fields
	Instances []*Element // procedure-type's instantiated bodies

	// procedure instance / call
	Body   *Scope
	Callee *Element
	Args   []*Element

	// control flow
	Condition *Element
	Then      *Scope
	Else      *Element // nested if (else-if) or a bare else Element
	Induction *Element
	Iterable  *Element

	// generic ordered children (statement lists, argument lists, etc.)
	Children []*Element

	// Defers collects defer elements registered within a procedure
	// instance body, in registration order while the body is evaluated;
	// once the body finishes, it is replaced by eval.resolveDefers' reversed
	// copy, so it then holds the defers in run order, last registered first
	// (supplemented feature).
	Defers []*Element

	// raw-block inline assembly source text
	RawText string

	// alias flag: true when a `::=` declaration's initializer resolved to
	// a type reference, making this identifier a type alias rather than a
	// value binding (Open Question 2 — see DESIGN.md).
	IsTypeAlias bool

	// Resolved reports whether an identifier-reference has been bound to
	// its target identifier element.
	Resolved bool
	Target   *Element // the identifier this reference resolved to
}

// AddChild appends a generic ordered child and sets its parent pointer.
func (e *Element) AddChild(c *Element) {
	if c == nil {
		return
	}
	c.Parent = e
	e.Children = append(e.Children, c)
}

// SetAttribute records a named attribute on e.
func (e *Element) SetAttribute(name string, attr *Element) {
	if e.Attributes == nil {
		e.Attributes = map[string]*Element{}
	}
	e.Attributes[name] = attr
}

// HasAttribute reports whether e carries an attribute named name.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attributes[name]
	return ok
}
