package scope

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/diag"
	"asls/internal/parser"
)

// fill parses the unscoped spans of scope id into statements and extracts
// declarations from them.
func (b *builder) fill(id ID) {
	s := b.tree.Get(id)
	if s.Kind == KindEnum {
		b.fillEnum(s)
		return
	}
	for _, sp := range s.Unscoped {
		b.eachPiece(int(sp.Start), int(sp.End), ';', func(start, end int) {
			b.statement(s, start, end)
		})
	}
}

// eachPiece splits [from, to) at sep outside nested brackets and ignored
// ranges, calling fn for every non-blank piece.
func (b *builder) eachPiece(from, to int, sep byte, fn func(start, end int)) {
	text := b.tree.Text
	depth := 0
	pieceStart := from
	emit := func(end int) {
		if strings.TrimSpace(b.stripComments(text[pieceStart:end], u32(pieceStart))) != "" {
			fn(pieceStart, end)
		}
	}
	for i := from; i < to; {
		if r, ok := b.tree.Ignore.At(u32(i)); ok {
			i = int(r.End)
			continue
		}
		switch c := text[i]; {
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			emit(i)
			pieceStart = i + 1
		}
		i++
	}
	if pieceStart < to {
		emit(min(to, len(text)))
	}
}

func (b *builder) statement(s *Scope, start, end int) {
	code := b.stripComments(b.tree.Text[start:end], u32(start))
	first := start + (len(code) - len(strings.TrimLeft(code, " \t\r\n")))
	st := Statement{Start: u32(first), End: u32(end)}

	node, ok := parser.ParseStatement(code, u32(start))
	if ok {
		st.Node = node
	} else if s.Kind != KindOther && !s.Kind.IsFunction() {
		b.note(diag.ParseBadStatement, first, end, "statement could not be parsed")
	}
	s.Statements = append(s.Statements, st)
	if st.Node == nil {
		return
	}

	switch n := st.Node.(type) {
	case *ast.VarDecl:
		b.declareVars(s, n)
	case *ast.ForEach:
		s.Vars = append(s.Vars, loopVar(n))
	case *ast.Control:
		if fe, ok := n.Init.(*ast.ForEach); ok {
			s.Vars = append(s.Vars, loopVar(fe))
		}
	case *ast.Import:
		b.tree.Imports = append(b.tree.Imports, Import{
			Module:  n.Path,
			PathPos: n.PathPos,
			Start:   n.Start,
			End:     n.End,
		})
	case *ast.DefaultStmt:
		s.Defaults = append(s.Defaults, st)
	case *ast.DelegateDecl:
		if (s.Kind == KindGlobal || s.Kind == KindNamespace) && n.Sig != nil && n.Sig.Name != "" {
			s.Delegates = append(s.Delegates, Delegate{
				Name:    n.Sig.Name,
				Event:   n.Event,
				Sig:     n.Sig,
				Doc:     b.tree.DocBefore(n.Start),
				NamePos: n.Sig.NamePos,
			})
		}
	}
}

func loopVar(fe *ast.ForEach) Variable {
	return Variable{
		Name:    fe.Name,
		Type:    fe.Type.String(),
		TypeRef: fe.Type,
		NamePos: fe.NamePos,
		Flags:   VarLocal | VarLoop,
		Range:   fe.Range,
	}
}

func (b *builder) declareVars(s *Scope, vd *ast.VarDecl) {
	var flags VarFlags
	switch {
	case s.Kind.IsType():
		flags = VarMember
	case s.Kind == KindGlobal || s.Kind == KindNamespace:
		flags = VarGlobal
	default:
		flags = VarLocal
	}
	switch vd.Access {
	case ast.AccessPrivate:
		flags |= VarPrivate
	case ast.AccessProtected:
		flags |= VarProtected
	}
	if vd.Type.Const {
		flags |= VarConst
	}
	doc := ""
	if flags&VarLocal == 0 {
		doc = b.tree.DocBefore(vd.Start)
	}
	for _, d := range vd.Vars {
		s.Vars = append(s.Vars, Variable{
			Name:       d.Name,
			Type:       vd.Type.String(),
			TypeRef:    vd.Type,
			Doc:        doc,
			NamePos:    d.NamePos,
			Flags:      flags,
			Specifiers: vd.Specifiers,
			Init:       d.Init,
			HasInit:    d.HasInit,
		})
	}
}

// fillEnum reads comma-separated "Name [= Value]" entries.
func (b *builder) fillEnum(s *Scope) {
	text := b.tree.Text
	for _, sp := range s.Unscoped {
		b.eachPiece(int(sp.Start), int(sp.End), ',', func(start, end int) {
			code := b.stripComments(text[start:end], u32(start))
			lead := len(code) - len(strings.TrimLeft(code, " \t\r\n"))
			body := strings.TrimSpace(code)
			name, value, _ := strings.Cut(body, "=")
			name = strings.TrimSpace(name)
			if name == "" {
				return
			}
			ev := EnumValue{
				Name:    name,
				Value:   strings.TrimSpace(value),
				NamePos: u32(start + lead),
			}
			ev.Doc = b.tree.DocBefore(ev.NamePos)
			if ev.Doc == "" {
				ev.Doc = b.tree.DocAfter(u32(start + lead + len(body)))
			}
			s.EnumValues = append(s.EnumValues, ev)
		})
	}
}
