package ast

import (
	"strings"
)

// RefKind is the reference qualifier of a type.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefPlain        // &
	RefIn           // &in
	RefOut          // &out
	RefInOut        // &inout
)

// TypeRef is a type as written in source: an optionally namespace-qualified
// name with generic arguments and qualifiers.
type TypeRef struct {
	Pos
	Name   string // base name, namespace path joined with "::"
	Args   []*TypeRef
	Const  bool
	Ref    RefKind
	Handle bool // trailing '?'
	// Open is set when generic arguments were not closed before the input ended.
	Open bool
}

// TypeName returns the canonical spelling without qualifiers, e.g.
// "TMap<FName,TArray<int>>".
func (t *TypeRef) TypeName() string {
	if t == nil {
		return ""
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	var b strings.Builder
	t.writeName(&b)
	return b.String()
}

func (t *TypeRef) writeName(b *strings.Builder) {
	b.WriteString(t.Name)
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		a.writeName(b)
	}
	b.WriteByte('>')
}

// String renders the type with its qualifiers for display.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	t.writeName(&b)
	if t.Handle {
		b.WriteByte('?')
	}
	switch t.Ref {
	case RefPlain:
		b.WriteByte('&')
	case RefIn:
		b.WriteString("&in")
	case RefOut:
		b.WriteString("&out")
	case RefInOut:
		b.WriteString("&inout")
	}
	return b.String()
}

// Specifier is a macro annotation such as UPROPERTY(EditAnywhere, Category = "X").
type Specifier struct {
	Pos
	Macro string
	Args  []SpecifierArg
	// Closed is false when the argument list ran to the end of input.
	Closed bool
}

// SpecifierArg is one entry of a specifier argument list.
type SpecifierArg struct {
	Name  string
	Value string
}

// Has reports whether the specifier carries the named argument.
func (s *Specifier) Has(name string) bool {
	for _, a := range s.Args {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}
