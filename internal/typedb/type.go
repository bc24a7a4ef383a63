package typedb

import (
	"slices"

	"asls/internal/source"
)

// Type is a class, struct, enum, namespace, delegate or host type.
type Type struct {
	ID   TypeID
	Name string
	// Super is the script-declared supertype; HostSuper the engine-declared
	// one used when Super is empty.
	Super     string
	HostSuper string
	// Siblings name types whose members extend this one without inheritance.
	Siblings       []string
	Flags          TypeFlags
	TemplateParams []string
	// TemplateBase and TemplateArgs are set on instantiations.
	TemplateBase string
	TemplateArgs []string
	// Module is the owning module, source.NoModule for host types and for
	// types contributed by more than one module.
	Module       source.ModuleID
	Contributors []source.ModuleID
	Doc          string
	Decl         source.Span
	Methods      []*Method
	Properties   []*Property

	byName   map[string][]Symbol
	byPrefix map[string][]Symbol
}

// NewType returns an empty type owned by module.
func NewType(name string, flags TypeFlags, module source.ModuleID) *Type {
	return &Type{Name: name, Flags: flags, Module: module}
}

func (t *Type) IsNamespace() bool { return t.Flags.Has(TypeNamespace) }
func (t *Type) IsEnum() bool      { return t.Flags.Has(TypeEnum) }

// AddMethod appends m and indexes it.
func (t *Type) AddMethod(m *Method) {
	m.Owner = t.ID
	t.Methods = append(t.Methods, m)
	t.index(m)
}

// AddProperty appends p and indexes it.
func (t *Type) AddProperty(p *Property) {
	p.Owner = t.ID
	t.Properties = append(t.Properties, p)
	t.index(p)
}

// Constructors returns the methods flagged as constructors.
func (t *Type) Constructors() []*Method {
	var out []*Method
	for _, m := range t.Methods {
		if m.IsConstructor() {
			out = append(out, m)
		}
	}
	return out
}

// OwnSymbols returns the symbols declared directly on t, name first.
func (t *Type) OwnSymbols(name string) []Symbol {
	return t.byName[name]
}

// OwnSymbolsWithPrefix returns direct symbols whose name starts with prefix,
// ignoring case.
func (t *Type) OwnSymbolsWithPrefix(prefix string) []Symbol {
	if len([]rune(prefix)) < 2 {
		out := make([]Symbol, 0, len(t.Methods)+len(t.Properties))
		for _, p := range t.Properties {
			if HasFoldedPrefix(p.Name, prefix) {
				out = append(out, p)
			}
		}
		for _, m := range t.Methods {
			if HasFoldedPrefix(m.Name, prefix) {
				out = append(out, m)
			}
		}
		return out
	}
	var out []Symbol
	for _, s := range t.byPrefix[prefixKey(prefix)] {
		if HasFoldedPrefix(s.SymbolName(), prefix) {
			out = append(out, s)
		}
	}
	return out
}

func (t *Type) index(s Symbol) {
	if t.byName == nil {
		t.byName = make(map[string][]Symbol)
		t.byPrefix = make(map[string][]Symbol)
	}
	name := s.SymbolName()
	t.byName[name] = append(t.byName[name], s)
	key := prefixKey(name)
	t.byPrefix[key] = append(t.byPrefix[key], s)
}

// reindex rebuilds both symbol indexes in declaration order, properties
// first.
func (t *Type) reindex() {
	t.byName = make(map[string][]Symbol, len(t.Methods)+len(t.Properties))
	t.byPrefix = make(map[string][]Symbol)
	for _, p := range t.Properties {
		t.index(p)
	}
	for _, m := range t.Methods {
		t.index(m)
	}
}

// setOwner points every member at t.ID.
func (t *Type) setOwner() {
	for _, m := range t.Methods {
		m.Owner = t.ID
	}
	for _, p := range t.Properties {
		p.Owner = t.ID
	}
}

// dropMembers removes the members contributed by module.
func (t *Type) dropMembers(module source.ModuleID) {
	t.Methods = slices.DeleteFunc(t.Methods, func(m *Method) bool { return m.Module == module })
	t.Properties = slices.DeleteFunc(t.Properties, func(p *Property) bool { return p.Module == module })
}

func (t *Type) addContributor(module source.ModuleID) {
	if !module.IsValid() || slices.Contains(t.Contributors, module) {
		return
	}
	t.Contributors = append(t.Contributors, module)
	slices.Sort(t.Contributors)
	t.updateOwner()
}

func (t *Type) removeContributor(module source.ModuleID) {
	t.Contributors = slices.DeleteFunc(t.Contributors, func(m source.ModuleID) bool { return m == module })
	t.updateOwner()
}

func (t *Type) updateOwner() {
	if t.Flags.Has(TypeHost) || len(t.Contributors) != 1 {
		t.Module = source.NoModule
		return
	}
	t.Module = t.Contributors[0]
}

func (t *Type) hasMethod(m *Method, limit int) bool {
	key := m.signatureKey()
	for _, e := range t.Methods[:limit] {
		if e.Module == m.Module && e.signatureKey() == key {
			return true
		}
	}
	return false
}

func (t *Type) hasProperty(p *Property, limit int) bool {
	for _, e := range t.Properties[:limit] {
		if e.Module == p.Module && e.Name == p.Name && e.Type == p.Type {
			return true
		}
	}
	return false
}
