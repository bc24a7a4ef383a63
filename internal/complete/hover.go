package complete

import (
	"fmt"
	"strings"

	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// Hover describes the symbol under the cursor. Span is the identifier.
type Hover struct {
	Text string
	Span source.Span
}

// Hover returns the description of the identifier touching offset, or nil.
func (r *Resolver) Hover(module source.ModuleID, offset uint32) *Hover {
	span := r.span("hover", module, offset)
	var out *Hover
	r.ws.Read(func(v workspace.View) {
		res, t := r.targetAt(v, module, offset)
		if t == nil {
			return
		}
		out = &Hover{Text: res.describe(t), Span: t.span}
	})
	if out == nil {
		span.End("none")
	} else {
		span.End(out.Span.String())
	}
	return out
}

func (r *resolution) describe(t *target) string {
	var head, doc string
	switch {
	case t.local != nil:
		head, doc = localLabel(t.local), t.local.Doc
	case len(t.syms) > 0:
		head, doc = r.symbolLabel(t.syms[0])
		if n := len(t.syms) - 1; n > 0 {
			head += fmt.Sprintf(" (+%d overloads)", n)
		}
	case t.typ != nil:
		_, head = typeDetail(t.typ)
		doc = r.opts.Docs(t.typ.Doc, nil)
	}
	if doc == "" {
		return head
	}
	return head + "\n\n" + doc
}

func localLabel(v *scope.Variable) string {
	kind := "local"
	switch {
	case v.Flags.Has(scope.VarArgument):
		kind = "argument"
	case v.Flags.Has(scope.VarLoop):
		kind = "loop variable"
	}
	s := "(" + kind + ") " + v.Type + " " + v.Name
	if v.Default != "" {
		s += " = " + v.Default
	}
	return s
}

// symbolLabel renders a member qualified with its owner, and its doc.
func (r *resolution) symbolLabel(sym typedb.Symbol) (string, string) {
	owner := ""
	if o := r.db.Lookup(sym.SymbolOwner()); o != nil && o.Name != "" {
		owner = o.Name + "::"
	}
	switch s := sym.(type) {
	case *typedb.Method:
		m := *s
		m.Name = owner + m.Name
		return m.Signature(), r.opts.Docs(s.Doc, s)
	case *typedb.Property:
		var b strings.Builder
		if s.Flags.Has(typedb.MemberEnumValue) {
			b.WriteString(owner + s.Name)
			if s.Value != "" {
				b.WriteString(" = " + s.Value)
			}
			return b.String(), r.opts.Docs(s.Doc, nil)
		}
		if s.Flags.Has(typedb.MemberConst) {
			b.WriteString("const ")
		}
		if s.Type != "" {
			b.WriteString(s.Type + " ")
		}
		b.WriteString(owner + s.Name)
		return b.String(), r.opts.Docs(s.Doc, nil)
	}
	return "", ""
}
