package typedb

import (
	"asls/internal/ast"
	"asls/internal/parser"
)

// instantiate builds and caches the instantiation for a generic spelling.
// Malformed spellings, unknown templates and argument count mismatches
// yield nil.
func (db *DB) instantiate(spelling string) *Type {
	db.instMu.Lock()
	defer db.instMu.Unlock()
	if t := db.byName(spelling); t != nil {
		return t
	}
	ref, ok := parser.ParseTypename(spelling)
	if !ok || ref.Open || len(ref.Args) == 0 || ref.Const || ref.Ref != ast.RefNone {
		return nil
	}
	canonical := ref.TypeName()
	if canonical != spelling {
		if t := db.byName(canonical); t != nil {
			db.alias(spelling, t)
			return t
		}
	}
	base := db.byName(ref.Name)
	if base == nil || !base.Flags.Has(TypeTemplate) || len(base.TemplateParams) != len(ref.Args) {
		return nil
	}

	subst := make(map[string]*ast.TypeRef, len(ref.Args))
	args := make([]string, len(ref.Args))
	for i, p := range base.TemplateParams {
		subst[p] = ref.Args[i]
		args[i] = ref.Args[i].TypeName()
	}
	inst := &Type{
		Name:         canonical,
		Super:        substituteTypename(base.Super, subst),
		HostSuper:    substituteTypename(base.HostSuper, subst),
		Siblings:     base.Siblings,
		Flags:        base.Flags&^TypeTemplate | TypeInstance,
		TemplateBase: base.Name,
		TemplateArgs: args,
		Module:       base.Module,
		Doc:          base.Doc,
		Decl:         base.Decl,
	}
	for _, m := range base.Methods {
		cp := *m
		cp.Return = substituteTypename(m.Return, subst)
		cp.Args = make([]Arg, len(m.Args))
		for i, a := range m.Args {
			a.Type = substituteTypename(a.Type, subst)
			cp.Args[i] = a
		}
		inst.Methods = append(inst.Methods, &cp)
	}
	for _, p := range base.Properties {
		cp := *p
		cp.Type = substituteTypename(p.Type, subst)
		inst.Properties = append(inst.Properties, &cp)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	// the template may have been removed while members were copied
	if db.typesByName[base.Name] != base.ID {
		return nil
	}
	db.insert(inst)
	db.instancesOf[base.Name] = append(db.instancesOf[base.Name], canonical)
	if canonical != spelling {
		db.typesByName[spelling] = inst.ID
		db.instancesOf[base.Name] = append(db.instancesOf[base.Name], spelling)
	}
	return inst
}

func (db *DB) alias(spelling string, t *Type) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.typesByName[spelling] = t.ID
	if t.TemplateBase != "" {
		db.instancesOf[t.TemplateBase] = append(db.instancesOf[t.TemplateBase], spelling)
	}
}

// substituteTypename replaces template parameter names in a written type
// at every nesting level, keeping the outer qualifiers.
func substituteTypename(written string, subst map[string]*ast.TypeRef) string {
	if written == "" || len(subst) == 0 {
		return written
	}
	ref, ok := parser.ParseTypename(written)
	if !ok {
		return written
	}
	return substituteRef(ref, subst).String()
}

func substituteRef(ref *ast.TypeRef, subst map[string]*ast.TypeRef) *ast.TypeRef {
	if len(ref.Args) == 0 {
		arg, ok := subst[ref.Name]
		if !ok {
			return ref
		}
		out := *arg
		out.Const = ref.Const || arg.Const
		out.Handle = ref.Handle || arg.Handle
		if ref.Ref != ast.RefNone {
			out.Ref = ref.Ref
		}
		return &out
	}
	out := *ref
	out.Args = make([]*ast.TypeRef, len(ref.Args))
	for i, a := range ref.Args {
		out.Args[i] = substituteRef(a, subst)
	}
	return &out
}
