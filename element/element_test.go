package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/alphac/source"
)

func loc() source.Location { return source.Location{} }

func TestScopeManagerPushPopBalance(t *testing.T) {
	m := NewScopeManager()
	m.PushModule("main")
	m.PushNewBlock(BlockGeneric)
	assert.Equal(t, 2, m.Depth())
	m.PopScope()
	m.PopScope()
	assert.Equal(t, 0, m.Depth())
}

func TestFindIdentifierWalksScopeChainOutward(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	outer := m.PushModule("main")
	x := g.NewIdentifier(loc(), QualifiedSymbol{Name: "x"}, nil)
	outer.Declare("x", x)

	m.PushNewBlock(BlockGeneric)
	found, ok := m.FindIdentifier(m.Current(), QualifiedSymbol{Name: "x"})
	require.True(t, ok, "expected to find outer-scope x from inner scope")
	assert.Same(t, x, found)
	m.PopScope()
	m.PopScope()
}

func TestUnresolvedQueueDrainedByResolveAll(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	top := m.PushModule("main")

	ref := g.NewIdentifierReference(loc(), QualifiedSymbol{Name: "f"})
	require.Len(t, m.Unresolved(), 1, "expected reference to be enqueued")

	f := g.NewIdentifier(loc(), QualifiedSymbol{Name: "f"}, nil)
	top.Declare("f", f)

	leftover := m.ResolveAll()
	assert.Empty(t, leftover, "expected no leftover unresolved references")
	assert.True(t, ref.Resolved)
	assert.Same(t, f, ref.Target)
	m.PopScope()
}

func TestUnresolvedReferenceStaysUnresolvedWithoutDeclaration(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	m.PushModule("main")
	g.NewIdentifierReference(loc(), QualifiedSymbol{Name: "missing"})
	leftover := m.ResolveAll()
	assert.Len(t, leftover, 1)
	m.PopScope()
}

func TestAddFieldRecognizesAssignmentAndBareForms(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	m.PushModule("main")
	composite := g.NewCompositeType(loc())
	typed := g.AddField(composite, loc(), "x", g.NewUnknownType(loc()))
	bare := g.AddField(composite, loc(), "y", nil)
	assert.NotNil(t, typed.Type, "expected assignment-form field to carry a type")
	assert.Nil(t, bare.Type, "expected bare field to carry no type")
	assert.Len(t, composite.Fields, 2)
	m.PopScope()
}

func TestProcedureTypeParameterIsStackResident(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	m.PushModule("main")
	proc := g.NewProcedureType(loc())
	param := g.AddParameter(proc, loc(), "a", nil)
	assert.True(t, param.StackResident, "expected procedure parameter to be marked stack-resident")
	m.PopScope()
}

func TestNamespaceQualifiedLookup(t *testing.T) {
	m := NewScopeManager()
	g := NewGraph(m)
	top := m.PushModule("main")
	ns := g.NewNamespace(loc(), "geometry")
	top.Declare("geometry", ns)

	m.open = append(m.open, ns.Body)
	pi := g.NewIdentifier(loc(), QualifiedSymbol{Name: "pi"}, nil)
	ns.Body.Declare("pi", pi)
	m.open = m.open[:len(m.open)-1]

	found, ok := m.FindIdentifier(top, QualifiedSymbol{Parts: []string{"geometry"}, Name: "pi"})
	require.True(t, ok, "expected to resolve geometry.pi")
	assert.Same(t, pi, found)
	m.PopScope()
}
