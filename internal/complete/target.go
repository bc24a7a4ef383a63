package complete

import (
	"fmt"

	"asls/internal/ast"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/token"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// target is the symbol an identifier refers to. Exactly one of syms,
// typ and local is set; syms holds overloads, best match first.
type target struct {
	name  string
	span  source.Span
	syms  []typedb.Symbol
	typ   *typedb.Type
	local *scope.Variable
}

func (t *target) empty() bool {
	return len(t.syms) == 0 && t.typ == nil && t.local == nil
}

// key identifies the target across modules. Two identifiers refer to the
// same symbol when their keys are equal.
func (t *target) key(db *typedb.DB) string {
	switch {
	case t.local != nil:
		return fmt.Sprintf("l%d:%d", t.span.Module, t.local.NamePos)
	case len(t.syms) > 0:
		switch s := t.syms[0].(type) {
		case *typedb.Method:
			return fmt.Sprintf("m%d", s.ID)
		case *typedb.Property:
			owner := ""
			if o := db.Lookup(s.Owner); o != nil {
				owner = o.Name
			}
			return "p" + owner + "." + s.Name
		}
	case t.typ != nil:
		if t.typ.IsNamespace() {
			return "n" + t.typ.Name
		}
		return "t" + t.typ.Name
	}
	return ""
}

// decl returns the declaring span of the target, if known.
func (t *target) decl() source.Span {
	switch {
	case t.local != nil:
		return source.Span{Module: t.span.Module, Start: t.local.NamePos, End: t.local.NamePos + uint32(len(t.local.Name))}
	case len(t.syms) > 0:
		switch s := t.syms[0].(type) {
		case *typedb.Method:
			return s.Decl
		case *typedb.Property:
			return s.Decl
		}
	case t.typ != nil:
		return t.typ.Decl
	}
	return source.Span{}
}

// targetAt resolves the identifier touching off. The local of a
// different module never matches, so locals carry the module in their key.
func (r *Resolver) targetAt(v workspace.View, module source.ModuleID, off uint32) (*resolution, *target) {
	mod := v.Module(module)
	if mod == nil || mod.Tree == nil || int(off) > len(mod.Text) || mod.Tree.Ignore.CursorInside(off) {
		return nil, nil
	}
	start, end := wordAt(mod.Text, off)
	if start == end {
		return nil, nil
	}
	name := mod.Text[start:end]
	if _, kw := token.LookupKeyword(name); kw || name[0] >= '0' && name[0] <= '9' {
		return nil, nil
	}
	res := r.resolve(v, module, end)
	if res == nil {
		return nil, nil
	}
	t := &target{name: name, span: source.Span{Module: module, Start: start, End: end}}
	res.target(t)
	if t.empty() {
		return res, nil
	}
	return res, t
}

func (r *resolution) target(t *target) {
	c := r.ctx
	switch c.Kind {
	case KindMember:
		if c.PriorType == nil {
			return
		}
		t.syms = r.db.FindSymbols(c.PriorType, t.name)
		if len(t.syms) == 0 {
			if sym := r.memberSymbol(c.PriorType, t.name); sym != nil {
				t.syms = append(t.syms, sym)
			}
		}
		if len(t.syms) == 0 {
			for _, m := range r.ucsFunctions(c.PriorType) {
				if m.Name == t.name {
					t.syms = append(t.syms, m)
				}
			}
		}
	case KindNamespace:
		if c.Target == nil {
			return
		}
		t.syms = r.db.FindSymbols(c.Target, t.name)
		if len(t.syms) > 0 {
			break
		}
		qualified := t.name
		if c.Target.Name != "" {
			qualified = c.Target.Name + "::" + t.name
		}
		if t.typ = r.db.GetNamespace(qualified); t.typ == nil {
			t.typ = r.db.GetType(t.name)
		}
	case KindScope, KindTypeOnly, KindNewName:
		r.unqualified(t)
	}
	if len(t.syms) > 1 {
		r.pickOverload(t)
	}
}

// unqualified resolves a bare name the way identType does.
func (r *resolution) unqualified(t *target) {
	if v := r.findLocal(t.name); v != nil {
		t.local = v
		return
	}
	if ut := r.usingType(); ut != nil {
		if t.syms = r.db.FindSymbols(ut, t.name); len(t.syms) > 0 {
			return
		}
		if sym := r.memberSymbol(ut, t.name); sym != nil {
			t.syms = []typedb.Symbol{sym}
			return
		}
	}
	for _, ns := range r.namespaceChain() {
		if t.syms = r.db.FindSymbols(ns, t.name); len(t.syms) > 0 {
			return
		}
	}
	if t.typ = r.db.GetType(t.name); t.typ == nil {
		t.typ = r.lookupNamespace(t.name)
	}
}

// pickOverload moves the declared or best matching overload to the front.
func (r *resolution) pickOverload(t *target) {
	var cands []candidate
	for i, s := range t.syms {
		m, ok := s.(*typedb.Method)
		if !ok {
			return
		}
		if m.Decl.Module == t.span.Module && m.Decl.Start == t.span.Start {
			t.syms[0], t.syms[i] = t.syms[i], t.syms[0]
			return
		}
		cands = append(cands, candidate{m: m})
	}
	call := r.callNamed(t.span.End)
	if call == nil {
		return
	}
	if i := r.bestCandidate(cands, call.Args); i > 0 {
		t.syms[0], t.syms[i] = t.syms[i], t.syms[0]
	}
}

// callNamed finds the call in the statement at the cursor whose callee
// name ends at end.
func (r *resolution) callNamed(end uint32) *ast.Call {
	st := r.tree.StatementAt(r.ctx.Scope, end)
	if st == nil || st.Node == nil {
		return nil
	}
	var found *ast.Call
	ast.Inspect(st.Node, func(n ast.Node) bool {
		call, ok := n.(*ast.Call)
		if !ok {
			return found == nil
		}
		var nameEnd uint32
		switch fn := call.Fn.(type) {
		case *ast.Ident:
			nameEnd = fn.End
		case *ast.Member:
			nameEnd = fn.NamePos + uint32(len(fn.Name))
		case *ast.NamespaceAccess:
			nameEnd = fn.NamePos + uint32(len(fn.Name))
		}
		if nameEnd == end {
			found = call
			return false
		}
		return found == nil
	})
	return found
}
