package scope

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/diag"
	"asls/internal/lexer"
	"asls/internal/parser"
	"asls/internal/token"
)

// classify recognizes the declaration in front of scope id.
func (b *builder) classify(id ID) {
	t := b.tree
	s := t.Get(id)
	parent := t.Get(s.Parent)

	code := b.stripComments(s.DeclText, s.DeclStart)
	display, _ := parser.StripSpecifiers(code, s.DeclStart)
	s.CleanedDecl = strings.Join(strings.Fields(display), " ")

	enclosing := ""
	if parent.Kind.IsType() {
		enclosing = parent.Name
	}
	inFunction := t.EnclosingFunction(s.Parent).IsValid()

	hdr := parser.ParseHeader(code, s.DeclStart, enclosing)
	s.Header = hdr
	switch h := hdr.(type) {
	case *ast.ClassDecl:
		s.Specifiers = h.Specifiers
		if inFunction {
			s.Kind = KindOther
			return
		}
		switch h.Kind {
		case ast.ClassStruct:
			s.Kind = KindStruct
		case ast.ClassNamespace:
			s.Kind = KindNamespace
		default:
			s.Kind = KindClass
		}
		s.Name = h.Name
		s.Doc = b.tree.DocBefore(h.Start)
		if h.Name == "" {
			b.note(diag.ParseMissingTypename, int(h.Start), int(h.End), "type declaration without a name")
		}
	case *ast.FuncDecl:
		s.Specifiers = h.Specifiers
		if inFunction {
			s.Kind = KindOther
			return
		}
		s.Kind = KindFunction
		if h.IsConstructor() {
			s.Kind = KindConstructor
		}
		s.Name = h.Name
		s.Doc = b.tree.DocBefore(h.Start)
		for _, prm := range h.Params {
			if prm.Name == "" {
				continue
			}
			s.Vars = append(s.Vars, Variable{
				Name:    prm.Name,
				Type:    prm.Type.String(),
				TypeRef: prm.Type,
				NamePos: prm.NamePos,
				Flags:   VarArgument,
				Default: prm.DefaultText,
			})
		}
	case *ast.EnumDecl:
		s.Specifiers = h.Specifiers
		s.Kind = KindEnum
		s.Name = h.Name
		s.Doc = b.tree.DocBefore(h.Start)
	case *ast.Control:
		s.Kind = KindOther
		s.Control = h.Keyword
		if h.Keyword == token.KwSwitch {
			s.Discriminant = h.Cond
		}
		if vd, ok := h.Init.(*ast.VarDecl); ok && h.Keyword == token.KwFor {
			for _, v := range vd.Vars {
				s.Vars = append(s.Vars, Variable{
					Name:    v.Name,
					Type:    vd.Type.String(),
					TypeRef: vd.Type,
					NamePos: v.NamePos,
					Flags:   VarLocal | VarLoop,
					Init:    v.Init,
					HasInit: v.HasInit,
				})
			}
		}
	case *ast.ForEach:
		s.Kind = KindOther
		s.Control = token.KwFor
		s.Vars = append(s.Vars, Variable{
			Name:    h.Name,
			Type:    h.Type.String(),
			TypeRef: h.Type,
			NamePos: h.NamePos,
			Flags:   VarLocal | VarLoop,
			Range:   h.Range,
		})
	default:
		s.Kind = KindOther
		if s.CleanedDecl != "" {
			b.note(diag.ParseMiss, int(s.DeclStart), int(s.Start)-1, "declaration not recognized: "+s.CleanedDecl)
		}
	}
}

// stripComments blanks comments and preprocessor lines inside raw, which
// starts at base, keeping newlines so offsets stay valid.
func (b *builder) stripComments(raw string, base uint32) string {
	var buf []byte
	end := base + u32(len(raw))
	for _, r := range b.tree.Ignore.Ranges {
		if r.End <= base || r.Start >= end {
			continue
		}
		if r.Kind != lexer.RangeComment && r.Kind != lexer.RangePreprocessor {
			continue
		}
		if buf == nil {
			buf = []byte(raw)
		}
		for off := max(r.Start, base); off < min(r.End, end); off++ {
			if buf[off-base] != '\n' {
				buf[off-base] = ' '
			}
		}
	}
	if buf == nil {
		return raw
	}
	return string(buf)
}
