package typedb

import (
	"strings"

	"asls/internal/source"
)

// Symbol is a member of a type: *Method or *Property. Use sites switch on
// the concrete type exhaustively.
type Symbol interface {
	SymbolName() string
	SymbolOwner() TypeID
	SymbolFlags() MemberFlags
	SymbolModule() source.ModuleID
	isSymbol()
}

// Arg is one declared method parameter.
type Arg struct {
	Name    string
	Type    string
	Default string
}

// Method is a function member, a constructor or a global function on a
// namespace.
type Method struct {
	ID   MethodID
	Name string
	// Return is the declared return type; empty for constructors.
	Return string
	Args   []Arg
	Flags  MemberFlags
	Owner  TypeID
	Module source.ModuleID
	Doc    string
	Decl   source.Span
}

// Property is a variable member, a global variable or an enum value.
type Property struct {
	Name string
	Type string
	// Value is the enum value expression as written.
	Value  string
	Flags  MemberFlags
	Owner  TypeID
	Module source.ModuleID
	Doc    string
	Decl   source.Span
}

func (m *Method) SymbolName() string            { return m.Name }
func (m *Method) SymbolOwner() TypeID           { return m.Owner }
func (m *Method) SymbolFlags() MemberFlags      { return m.Flags }
func (m *Method) SymbolModule() source.ModuleID { return m.Module }
func (*Method) isSymbol()                       {}

func (p *Property) SymbolName() string            { return p.Name }
func (p *Property) SymbolOwner() TypeID           { return p.Owner }
func (p *Property) SymbolFlags() MemberFlags      { return p.Flags }
func (p *Property) SymbolModule() source.ModuleID { return p.Module }
func (*Property) isSymbol()                       {}

// Signature renders the method declaration, e.g.
// "void Reset(int Count, float Scale = 1.0) const".
func (m *Method) Signature() string {
	var b strings.Builder
	if m.Flags.Has(MemberStatic) {
		b.WriteString("static ")
	}
	if m.Return != "" {
		b.WriteString(m.Return)
		b.WriteByte(' ')
	}
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, a := range m.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Label())
	}
	b.WriteByte(')')
	if m.Flags.Has(MemberConst) {
		b.WriteString(" const")
	}
	return b.String()
}

// Label renders one parameter as written in a signature.
func (a Arg) Label() string {
	s := a.Type
	if a.Name != "" {
		if s != "" {
			s += " "
		}
		s += a.Name
	}
	if a.Default != "" {
		s += " = " + a.Default
	}
	return s
}

// RequiredArgs counts parameters without a default value.
func (m *Method) RequiredArgs() int {
	n := 0
	for _, a := range m.Args {
		if a.Default == "" {
			n++
		}
	}
	return n
}

// IsConstructor reports whether m constructs its owner type.
func (m *Method) IsConstructor() bool { return m.Flags.Has(MemberConstructor) }

// signatureKey identifies "the same" method across reparses.
func (m *Method) signatureKey() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('|')
	b.WriteString(m.Return)
	b.WriteByte('(')
	for i, a := range m.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Type)
	}
	b.WriteByte(')')
	if m.Flags.Has(MemberConst) {
		b.WriteString("const")
	}
	return b.String()
}

// Label renders the property as "Type Name".
func (p *Property) Label() string {
	if p.Type == "" {
		return p.Name
	}
	return p.Type + " " + p.Name
}
