package typedb

// MaxInheritanceDepth bounds supertype and sibling walks.
const MaxInheritanceDepth = 32

// SuperOf returns the supertype of t: the script supertype, or the host
// supertype when no script supertype is declared.
func (db *DB) SuperOf(t *Type) *Type {
	if t == nil {
		return nil
	}
	if t.Super != "" {
		if s := db.GetType(t.Super); s != nil {
			return s
		}
	}
	if t.HostSuper != "" {
		return db.GetType(t.HostSuper)
	}
	return nil
}

// InheritsFrom reports whether the type named name is ancestor or derives
// from it. Names without a declaration still match themselves.
func (db *DB) InheritsFrom(name, ancestor string) bool {
	cur := name
	for range MaxInheritanceDepth {
		if cur == ancestor {
			return true
		}
		t := db.GetType(cur)
		if t == nil {
			return false
		}
		next := t.Super
		if next == "" {
			next = t.HostSuper
		}
		if next == "" {
			return false
		}
		cur = next
	}
	return false
}

// SiblingsOf resolves the sibling names of t, plus the same-named
// counterpart linking a type with its namespace.
func (db *DB) SiblingsOf(t *Type) []*Type {
	var out []*Type
	seen := map[TypeID]bool{t.ID: true}
	add := func(s *Type) {
		if s != nil && !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	for _, name := range t.Siblings {
		if s := db.GetNamespace(name); s != nil {
			add(s)
			continue
		}
		add(db.GetType(name))
	}
	if t.Name != "" && !t.Flags.Has(TypeInstance) {
		if t.IsNamespace() {
			add(db.GetType(t.Name))
		} else {
			add(db.GetNamespace(t.Name))
		}
	}
	return out
}

// walk visits t, then its supertype chain and its siblings depth-first,
// each type at most once, until fn returns false.
func (db *DB) walk(t *Type, fn func(t *Type, depth int) bool) {
	seen := make(map[TypeID]bool)
	var visit func(t *Type, depth int) bool
	visit = func(t *Type, depth int) bool {
		if t == nil || depth > MaxInheritanceDepth || seen[t.ID] {
			return true
		}
		seen[t.ID] = true
		if !fn(t, depth) {
			return false
		}
		if !visit(db.SuperOf(t), depth+1) {
			return false
		}
		for _, s := range db.SiblingsOf(t) {
			if !visit(s, depth+1) {
				return false
			}
		}
		return true
	}
	visit(t, 0)
}

// Hierarchy returns t followed by every type reachable through supertypes
// and siblings in search order.
func (db *DB) Hierarchy(t *Type) []*Type {
	var out []*Type
	db.walk(t, func(t *Type, _ int) bool {
		out = append(out, t)
		return true
	})
	return out
}

// FindFirstSymbol returns the first symbol named name on t or the types it
// inherits from or is extended by, or nil.
func (db *DB) FindFirstSymbol(t *Type, name string) Symbol {
	var found Symbol
	db.walk(t, func(t *Type, _ int) bool {
		if syms := t.OwnSymbols(name); len(syms) > 0 {
			found = syms[0]
			return false
		}
		return true
	})
	return found
}

// FindSymbols returns every symbol named name, own symbols first.
func (db *DB) FindSymbols(t *Type, name string) []Symbol {
	var out []Symbol
	db.walk(t, func(t *Type, _ int) bool {
		out = append(out, t.OwnSymbols(name)...)
		return true
	})
	return out
}

// FindMethods returns the overloads named name in search order.
func (db *DB) FindMethods(t *Type, name string) []*Method {
	var out []*Method
	for _, s := range db.FindSymbols(t, name) {
		if m, ok := s.(*Method); ok {
			out = append(out, m)
		}
	}
	return out
}

// FindSymbolsWithPrefix returns the symbols whose name starts with prefix,
// ignoring case, own symbols first.
func (db *DB) FindSymbolsWithPrefix(t *Type, prefix string) []Symbol {
	var out []Symbol
	db.walk(t, func(t *Type, _ int) bool {
		out = append(out, t.OwnSymbolsWithPrefix(prefix)...)
		return true
	})
	return out
}
