package element

import "strings"

// ScopeManager maintains the four pieces of state spec.md §4.E names: a
// stack of currently open blocks, a stack of top-level (module) blocks, a
// module stack, and a queue of unresolved identifier references.
type ScopeManager struct {
	open   []*Scope // current scope chain, innermost last
	topLvl []*Scope // one per module being compiled
	mods   []string // module name stack, parallel to topLvl

	unresolved []*Element
}

// NewScopeManager returns an empty manager.
func NewScopeManager() *ScopeManager {
	return &ScopeManager{}
}

// PushNewBlock allocates a block of kind under the current scope (or as a
// new top-level block if none is open) and pushes it as current.
func (m *ScopeManager) PushNewBlock(kind BlockKind) *Scope {
	var parent *Scope
	if len(m.open) > 0 {
		parent = m.open[len(m.open)-1]
	}
	s := NewScope(kind, parent)
	m.open = append(m.open, s)
	if parent == nil {
		m.topLvl = append(m.topLvl, s)
	}
	return s
}

// PushNewBlockExisting pushes an already-allocated scope (one created
// alongside its owning element, e.g. by NewNamespace or
// NewProcedureInstance) as the current scope, without allocating a new
// one.
func (m *ScopeManager) PushNewBlockExisting(s *Scope) *Scope {
	m.open = append(m.open, s)
	if s.Parent == nil {
		m.topLvl = append(m.topLvl, s)
	}
	return s
}

// PushModule opens a new top-level module block and records its name on
// the module stack, for `find_identifier`'s qualified-name resolution.
func (m *ScopeManager) PushModule(name string) *Scope {
	s := m.PushNewBlock(BlockModule)
	m.mods = append(m.mods, name)
	return s
}

// PopScope restores the prior top of the open-block stack and returns the
// popped scope. It panics on an unbalanced pop, mirroring ast.Builder's
// EndScope contract.
func (m *ScopeManager) PopScope() *Scope {
	n := len(m.open)
	if n == 0 {
		panic("element: PopScope called with no open scope")
	}
	s := m.open[n-1]
	m.open = m.open[:n-1]
	if k := len(m.topLvl); k > 0 && m.topLvl[k-1] == s {
		m.topLvl = m.topLvl[:k-1]
	}
	if s.Kind == BlockModule && len(m.mods) > 0 {
		m.mods = m.mods[:len(m.mods)-1]
	}
	return s
}

// Current returns the innermost open scope, or nil.
func (m *ScopeManager) Current() *Scope {
	if len(m.open) == 0 {
		return nil
	}
	return m.open[len(m.open)-1]
}

// CurrentTopLevel returns the module-level scope enclosing the current
// scope, or nil if none is open.
func (m *ScopeManager) CurrentTopLevel() *Scope {
	if len(m.topLvl) == 0 {
		return nil
	}
	return m.topLvl[len(m.topLvl)-1]
}

// Depth reports the number of currently open scopes, for balance checks.
func (m *ScopeManager) Depth() int { return len(m.open) }

// EnqueueUnresolved appends an identifier-reference element awaiting
// resolution after the enclosing scope's top-level declarations have all
// materialized (spec.md §9 "two-pass symbol resolution").
func (m *ScopeManager) EnqueueUnresolved(ref *Element) {
	m.unresolved = append(m.unresolved, ref)
}

// Unresolved returns the current unresolved-reference queue.
func (m *ScopeManager) Unresolved() []*Element { return m.unresolved }

// ResolveAll attempts to bind every queued identifier-reference to a
// declared identifier, draining the queue. References already bound when
// they were created are left as they are. It returns references that
// still could not be resolved (the caller reports one diagnostic per
// leftover).
func (m *ScopeManager) ResolveAll() []*Element {
	var unresolved []*Element
	for _, ref := range m.unresolved {
		if ref.Resolved {
			continue
		}
		target, ok := m.FindIdentifier(ref.Module, ref.Symbol)
		if !ok {
			unresolved = append(unresolved, ref)
			continue
		}
		ref.Resolved = true
		ref.Target = target
	}
	m.unresolved = nil
	return unresolved
}

// FindIdentifier resolves qsym: qualified names are looked up from the
// given top-level module scope by walking its namespace prefix; bare names
// walk the current scope chain outward from scope.
func (m *ScopeManager) FindIdentifier(scope *Scope, qsym QualifiedSymbol) (*Element, bool) {
	if qsym.Qualified() {
		return m.findQualified(scope, qsym)
	}
	for s := scope; s != nil; s = s.Parent {
		if decl, ok := s.Lookup(qsym.Name); ok {
			return decl, true
		}
	}
	return nil, false
}

func (m *ScopeManager) findQualified(scope *Scope, qsym QualifiedSymbol) (*Element, bool) {
	cur := scope
	for cur != nil && cur.Parent != nil {
		cur = cur.Parent
	}
	if cur == nil {
		return nil, false
	}
	for _, part := range qsym.Parts {
		ns, ok := cur.Lookup(part)
		if !ok || ns.Kind != KindNamespace || ns.Body == nil {
			return nil, false
		}
		cur = ns.Body
	}
	return cur.Lookup(qsym.Name)
}

// FindType looks up a type name the same way FindIdentifier does, then
// confirms the resolved element is itself type-shaped.
func (m *ScopeManager) FindType(scope *Scope, name string) (*Element, bool) {
	decl, ok := m.FindIdentifier(scope, QualifiedSymbol{Name: name})
	if !ok {
		return nil, false
	}
	switch decl.Kind {
	case KindType, KindCompositeType, KindNumericType, KindPointerType, KindArrayType, KindProcedureType:
		return decl, true
	}
	if decl.IsTypeAlias && decl.Initializer != nil {
		return decl.Initializer, true
	}
	return nil, false
}

// qualifiedKey is a small helper used by callers that need a dotted string
// form without constructing a full QualifiedSymbol.
func qualifiedKey(parts []string, name string) string {
	if len(parts) == 0 {
		return name
	}
	return strings.Join(parts, ".") + "." + name
}
