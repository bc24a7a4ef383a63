package scope

import (
	"asls/internal/arena"
	"asls/internal/diag"
	"asls/internal/lexer"
)

// Tree is the scope tree of one module. Exactly one root exists.
type Tree struct {
	Text    string
	Root    ID
	Imports []Import
	Ignore  *lexer.IgnoreTable
	Diags   *diag.Bag

	scopes *arena.Arena[Scope]
}

func newTree(text string) *Tree {
	return &Tree{
		Text:   text,
		Ignore: lexer.BuildIgnoreTable(text, 0),
		Diags:  diag.NewBag(0),
		scopes: arena.New[Scope](16),
	}
}

func (t *Tree) newScope(kind Kind, parent ID) ID {
	id := ID(t.scopes.Allocate(Scope{Kind: kind, Parent: parent}))
	t.scopes.Get(uint32(id)).ID = id
	if parent.IsValid() {
		p := t.Get(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

// Get returns the scope for id or nil.
func (t *Tree) Get(id ID) *Scope {
	if t == nil {
		return nil
	}
	return t.scopes.Get(uint32(id))
}

// RootScope returns the global scope.
func (t *Tree) RootScope() *Scope {
	return t.Get(t.Root)
}

// Len returns the number of scopes including the root.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return int(t.scopes.Len())
}

// Walk visits scopes depth-first in source order until fn returns false.
func (t *Tree) Walk(fn func(s *Scope) bool) {
	var visit func(id ID) bool
	visit = func(id ID) bool {
		s := t.Get(id)
		if s == nil {
			return true
		}
		if !fn(s) {
			return false
		}
		for _, child := range s.Children {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	visit(t.Root)
}

// ScopeAt returns the innermost scope whose braces contain off.
func (t *Tree) ScopeAt(off uint32) ID {
	cur := t.Root
	for {
		s := t.Get(cur)
		next := NoID
		for _, child := range s.Children {
			c := t.Get(child)
			if c.Start > off {
				break
			}
			if c.Contains(off) {
				next = child
				break
			}
		}
		if !next.IsValid() {
			return cur
		}
		cur = next
	}
}

// Chain returns id and its ancestors, innermost first.
func (t *Tree) Chain(id ID) []ID {
	var out []ID
	for id.IsValid() {
		out = append(out, id)
		id = t.Get(id).Parent
	}
	return out
}

// EnclosingType returns the nearest class or struct scope around id.
func (t *Tree) EnclosingType(id ID) ID {
	for _, sid := range t.Chain(id) {
		if t.Get(sid).Kind.IsType() {
			return sid
		}
	}
	return NoID
}

// EnclosingFunction returns the nearest function or constructor scope.
func (t *Tree) EnclosingFunction(id ID) ID {
	for _, sid := range t.Chain(id) {
		if t.Get(sid).Kind.IsFunction() {
			return sid
		}
	}
	return NoID
}

// NamespacePath returns the namespaces enclosing id, outermost first.
func (t *Tree) NamespacePath(id ID) []string {
	var rev []string
	for _, sid := range t.Chain(id) {
		if s := t.Get(sid); s.Kind == KindNamespace && s.Name != "" {
			rev = append(rev, s.Name)
		}
	}
	out := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

// StatementAt returns the statement of scope id that covers off.
func (t *Tree) StatementAt(id ID, off uint32) *Statement {
	s := t.Get(id)
	if s == nil {
		return nil
	}
	for i := range s.Statements {
		st := &s.Statements[i]
		if st.Start <= off && off <= st.End {
			return st
		}
	}
	return nil
}

// FindType returns the class, struct, enum or namespace scope named name.
func (t *Tree) FindType(name string) *Scope {
	var found *Scope
	t.Walk(func(s *Scope) bool {
		switch s.Kind {
		case KindClass, KindStruct, KindEnum, KindNamespace:
			if s.Name == name {
				found = s
				return false
			}
		}
		return true
	})
	return found
}
