package workspace

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"asls/internal/ast"
	"asls/internal/diag"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/token"
	"asls/internal/typedb"
)

// Register adds the declarations of mod to db and returns the notes raised
// on the way. The caller removes the module's previous contribution first.
func Register(db *typedb.DB, mod *Module) *diag.Bag {
	r := &registrar{
		db:         db,
		mod:        mod,
		tree:       mod.Tree,
		notes:      diag.NewBag(0),
		namespaces: make(map[string]*typedb.Type),
	}
	r.container(mod.Tree.Root, "")
	for _, name := range r.order {
		frag := r.namespaces[name]
		if name == "" && len(frag.Methods) == 0 && len(frag.Properties) == 0 {
			continue
		}
		db.MergeNamespaceToDB(frag, true)
	}
	return r.notes
}

type registrar struct {
	db    *typedb.DB
	mod   *Module
	tree  *scope.Tree
	notes *diag.Bag
	// namespaces collects one fragment per namespace so that repeated
	// blocks in one module merge before reaching the database.
	namespaces map[string]*typedb.Type
	order      []string
}

func (r *registrar) namespace(name string) *typedb.Type {
	if ns, ok := r.namespaces[name]; ok {
		return ns
	}
	ns := typedb.NewType(name, typedb.TypeNamespace, r.mod.ID)
	r.namespaces[name] = ns
	r.order = append(r.order, name)
	return ns
}

func (r *registrar) span(start uint32, name string) source.Span {
	n, err := safecast.Conv[uint32](len(name))
	if err != nil {
		panic(fmt.Errorf("name too long: %w", err))
	}
	return source.Span{Module: r.mod.ID, Start: start, End: start + n}
}

// container registers the global or namespace-level content of id.
func (r *registrar) container(id scope.ID, ns string) {
	s := r.tree.Get(id)
	frag := r.namespace(ns)
	for _, v := range s.Vars {
		if v.Flags.Has(scope.VarGlobal) {
			frag.Properties = append(frag.Properties, r.property(v))
		}
	}
	for _, st := range s.Statements {
		if fn, ok := st.Node.(*ast.FuncDecl); ok && fn.Name != "" {
			frag.Methods = append(frag.Methods, r.method(fn, r.tree.DocBefore(fn.Start)))
		}
	}
	for _, d := range s.Delegates {
		r.delegate(d)
	}
	for _, cid := range s.Children {
		c := r.tree.Get(cid)
		switch c.Kind {
		case scope.KindNamespace:
			if c.Name == "" {
				continue
			}
			qualified := c.Name
			if ns != "" {
				qualified = ns + "::" + c.Name
			}
			child := r.namespace(qualified)
			if child.Doc == "" {
				child.Doc = c.Doc
			}
			if child.Decl == (source.Span{}) {
				child.Decl = r.span(c.Class().NamePos, c.Name)
			}
			r.container(cid, qualified)
		case scope.KindClass, scope.KindStruct:
			r.class(c)
		case scope.KindEnum:
			r.enum(c)
		case scope.KindFunction:
			if fn := c.Func(); fn != nil && fn.Name != "" {
				frag.Methods = append(frag.Methods, r.method(fn, c.Doc))
			}
		case scope.KindOther:
			if c.Control == token.Invalid {
				r.container(cid, ns)
			}
		}
	}
}

func (r *registrar) class(c *scope.Scope) {
	h := c.Class()
	if h == nil || c.Name == "" {
		return
	}
	flags := typedb.TypeClass
	if c.Kind == scope.KindStruct {
		flags = typedb.TypeStruct
	}
	t := typedb.NewType(c.Name, flags, r.mod.ID)
	t.Super = h.Super
	t.Doc = c.Doc
	t.Decl = r.span(h.NamePos, h.Name)

	for _, v := range c.Vars {
		if v.Flags.Has(scope.VarMember) {
			t.Properties = append(t.Properties, r.property(v))
		}
	}
	for _, st := range c.Statements {
		if fn, ok := st.Node.(*ast.FuncDecl); ok && fn.Name != "" {
			t.Methods = append(t.Methods, r.method(fn, r.tree.DocBefore(fn.Start)))
		}
	}
	hasCtor := false
	for _, cid := range c.Children {
		child := r.tree.Get(cid)
		if !child.Kind.IsFunction() {
			continue
		}
		fn := child.Func()
		if fn == nil || fn.Name == "" {
			continue
		}
		m := r.method(fn, child.Doc)
		if m.IsConstructor() {
			hasCtor = true
		}
		t.Methods = append(t.Methods, m)
	}
	if c.Kind == scope.KindStruct && !hasCtor {
		t.Methods = append(t.Methods, &typedb.Method{
			Name:   c.Name,
			Flags:  typedb.MemberConstructor,
			Module: r.mod.ID,
			Decl:   t.Decl,
		})
	}
	// a name clash is reported by Diagnostics
	r.db.AddType(t)
}

func (r *registrar) enum(c *scope.Scope) {
	if c.Name == "" {
		return
	}
	t := typedb.NewType(c.Name, typedb.TypeEnum, r.mod.ID)
	t.Doc = c.Doc
	if h, ok := c.Header.(*ast.EnumDecl); ok {
		t.Decl = r.span(h.NamePos, h.Name)
	}
	var next int64
	for _, ev := range c.EnumValues {
		value := ev.Value
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64); err == nil {
			next = n + 1
		} else if value == "" {
			value = strconv.FormatInt(next, 10)
			next++
		}
		t.Properties = append(t.Properties, &typedb.Property{
			Name:   ev.Name,
			Type:   c.Name,
			Value:  value,
			Flags:  typedb.MemberEnumValue | typedb.MemberConst | typedb.MemberStatic,
			Module: r.mod.ID,
			Doc:    ev.Doc,
			Decl:   r.span(ev.NamePos, ev.Name),
		})
	}
	r.db.AddType(t)
}

func (r *registrar) property(v scope.Variable) *typedb.Property {
	var flags typedb.MemberFlags
	if v.Flags.Has(scope.VarPrivate) {
		flags |= typedb.MemberPrivate
	}
	if v.Flags.Has(scope.VarProtected) {
		flags |= typedb.MemberProtected
	}
	if v.Flags.Has(scope.VarConst) {
		flags |= typedb.MemberConst
	}
	return &typedb.Property{
		Name:   v.Name,
		Type:   v.Type,
		Flags:  flags,
		Module: r.mod.ID,
		Doc:    v.Doc,
		Decl:   r.span(v.NamePos, v.Name),
	}
}

func (r *registrar) method(fn *ast.FuncDecl, doc string) *typedb.Method {
	m := &typedb.Method{
		Name:   fn.Name,
		Module: r.mod.ID,
		Doc:    doc,
		Decl:   r.span(fn.NamePos, fn.Name),
		Flags:  funcFlags(fn),
	}
	if fn.Return != nil {
		m.Return = fn.Return.String()
	} else {
		m.Flags |= typedb.MemberConstructor
	}
	m.Args = make([]typedb.Arg, 0, len(fn.Params))
	for _, p := range fn.Params {
		m.Args = append(m.Args, typedb.Arg{Name: p.Name, Type: p.Type.String(), Default: p.DefaultText})
	}
	return m
}

func funcFlags(fn *ast.FuncDecl) typedb.MemberFlags {
	var flags typedb.MemberFlags
	switch fn.Access {
	case ast.AccessPrivate:
		flags |= typedb.MemberPrivate
	case ast.AccessProtected:
		flags |= typedb.MemberProtected
	}
	for _, f := range []struct {
		fn  ast.FuncFlags
		mem typedb.MemberFlags
	}{
		{ast.FuncConst, typedb.MemberConst},
		{ast.FuncOverride, typedb.MemberOverride},
		{ast.FuncProperty, typedb.MemberAccessor},
		{ast.FuncFinal, typedb.MemberFinal},
		{ast.FuncStatic, typedb.MemberStatic},
		{ast.FuncMixin, typedb.MemberMixin},
	} {
		if fn.Flags&f.fn != 0 {
			flags |= f.mem
		}
	}
	for i := range fn.Specifiers {
		spec := &fn.Specifiers[i]
		if spec.Macro == "UFUNCTION" && (spec.Has("BlueprintEvent") || spec.Has("BlueprintOverride")) {
			flags |= typedb.MemberBlueprintEvent
		}
	}
	return flags
}
