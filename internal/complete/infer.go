package complete

import (
	"asls/internal/ast"
	"asls/internal/parser"
	"asls/internal/scope"
	"asls/internal/token"
	"asls/internal/typedb"
)

// exprType is the inferred type of an expression. name may be set without
// t for types the database does not know. static marks an expression that
// names a type or namespace rather than a value of it.
type exprType struct {
	t      *typedb.Type
	name   string
	static bool
}

// canonical strips qualifiers from a written typename.
func (r *resolution) canonical(name string) string {
	if name == "" {
		return ""
	}
	ref, ok := parser.ParseType(name, 0)
	if !ok {
		return name
	}
	return ref.TypeName()
}

func (r *resolution) typeNamed(name string) exprType {
	n := r.canonical(name)
	if n == "" || n == "void" || n == "auto" {
		return exprType{name: n}
	}
	return exprType{t: r.db.GetType(n), name: n}
}

func (r *resolution) symbolType(sym typedb.Symbol) exprType {
	switch s := sym.(type) {
	case *typedb.Property:
		return r.typeNamed(s.Type)
	case *typedb.Method:
		return r.typeNamed(s.Return)
	default:
		return exprType{}
	}
}

func (r *resolution) typeOf(x ast.Expr) exprType {
	switch n := x.(type) {
	case nil:
		return exprType{}
	case *ast.Ident:
		return r.identType(n.Name)
	case *ast.Literal:
		switch n.Kind {
		case token.IntLit, token.CharLit:
			return r.typeNamed("int")
		case token.FloatLit:
			return r.typeNamed("float")
		case token.StringLit:
			return r.typeNamed("FString")
		case token.KwTrue, token.KwFalse:
			return r.typeNamed("bool")
		}
		return exprType{}
	case *ast.This:
		return exprType{t: r.usingType(), name: r.ctx.Using}
	case *ast.Super:
		if s := r.db.SuperOf(r.usingType()); s != nil {
			return exprType{t: s, name: s.Name}
		}
		return exprType{}
	case *ast.TypeName:
		et := r.typeNamed(n.Type.TypeName())
		et.static = true
		return et
	case *ast.Paren:
		return r.typeOf(n.X)
	case *ast.Postfix:
		return r.typeOf(n.X)
	case *ast.Unary:
		if n.Op == token.Bang {
			return r.typeNamed("bool")
		}
		return r.typeOf(n.X)
	case *ast.Binary:
		if n.Op.IsBoolean() {
			return r.typeNamed("bool")
		}
		return r.typeOf(n.Left)
	case *ast.Assign:
		return r.typeOf(n.Left)
	case *ast.Ternary:
		return r.typeOf(n.Then)
	case *ast.Cast:
		return r.typeNamed(n.Type.TypeName())
	case *ast.Member:
		base := r.typeOf(n.Left)
		if base.t == nil {
			return exprType{}
		}
		if sym := r.memberSymbol(base.t, n.Name); sym != nil {
			return r.symbolType(sym)
		}
		return exprType{}
	case *ast.NamespaceAccess:
		return r.namespaceMemberType(n)
	case *ast.Call:
		return r.callType(n)
	case *ast.Index:
		base := r.typeOf(n.Left)
		if base.t != nil && len(base.t.TemplateArgs) > 0 {
			return r.typeNamed(base.t.TemplateArgs[len(base.t.TemplateArgs)-1])
		}
		return exprType{}
	default:
		return exprType{}
	}
}

// identType resolves a bare identifier: locals, then members of the
// enclosing type, then the namespace chain, then type and namespace names.
func (r *resolution) identType(name string) exprType {
	if v := r.findLocal(name); v != nil {
		return r.localType(v)
	}
	if ut := r.usingType(); ut != nil {
		if sym := r.memberSymbol(ut, name); sym != nil {
			return r.symbolType(sym)
		}
	}
	for _, ns := range r.namespaceChain() {
		if sym := r.db.FindFirstSymbol(ns, name); sym != nil {
			return r.symbolType(sym)
		}
	}
	if t := r.db.GetType(name); t != nil {
		return exprType{t: t, name: t.Name, static: true}
	}
	if ns := r.lookupNamespace(name); ns != nil {
		return exprType{t: ns, name: ns.Name, static: true}
	}
	return exprType{}
}

const maxAutoDepth = 8

// localType is the declared type of v, deduced from its initializer or
// from the element type of its range when declared "auto".
func (r *resolution) localType(v *scope.Variable) exprType {
	if r.canonical(v.Type) != "auto" {
		return r.typeNamed(v.Type)
	}
	if r.inferring >= maxAutoDepth {
		return exprType{name: "auto"}
	}
	r.inferring++
	defer func() { r.inferring-- }()
	switch {
	case v.Range != nil:
		rng := r.typeOf(v.Range)
		if rng.t == nil || len(rng.t.TemplateArgs) == 0 {
			return exprType{}
		}
		return r.typeNamed(rng.t.TemplateArgs[0])
	case v.Init != nil:
		et := r.typeOf(v.Init)
		et.static = false
		return et
	}
	return exprType{name: "auto"}
}

// memberSymbol finds name on t, accepting "Name" for a "GetName" accessor.
func (r *resolution) memberSymbol(t *typedb.Type, name string) typedb.Symbol {
	if sym := r.db.FindFirstSymbol(t, name); sym != nil {
		return sym
	}
	for _, m := range r.db.FindMethods(t, "Get"+name) {
		if m.Flags.Has(typedb.MemberAccessor) {
			return m
		}
	}
	return nil
}

// lookupNamespace resolves name relative to the enclosing namespaces.
func (r *resolution) lookupNamespace(name string) *typedb.Type {
	prefix := r.ctx.Namespace
	for prefix != "" {
		if ns := r.db.GetNamespace(prefix + "::" + name); ns != nil {
			return ns
		}
		i := lastSep(prefix)
		if i < 0 {
			break
		}
		prefix = prefix[:i]
	}
	return r.db.GetNamespace(name)
}

// scopeRef resolves the left side of "::" to a namespace or type. A nil
// left side is the root namespace.
func (r *resolution) scopeRef(left ast.Expr) *typedb.Type {
	switch n := left.(type) {
	case nil:
		return r.db.Root()
	case *ast.Ident:
		if ns := r.lookupNamespace(n.Name); ns != nil {
			return ns
		}
		return r.db.GetType(n.Name)
	case *ast.NamespaceAccess:
		parent := r.scopeRef(n.Left)
		if parent == nil {
			return nil
		}
		if parent.IsNamespace() {
			qualified := n.Name
			if parent.Name != "" {
				qualified = parent.Name + "::" + n.Name
			}
			if ns := r.db.GetNamespace(qualified); ns != nil {
				return ns
			}
		}
		return r.db.GetType(n.Name)
	case *ast.TypeName:
		return r.db.GetType(n.Type.TypeName())
	case *ast.Super:
		return r.db.SuperOf(r.usingType())
	default:
		return nil
	}
}

func (r *resolution) namespaceMemberType(n *ast.NamespaceAccess) exprType {
	target := r.scopeRef(n.Left)
	if target == nil || n.Name == "" {
		return exprType{}
	}
	if sym := r.db.FindFirstSymbol(target, n.Name); sym != nil {
		return r.symbolType(sym)
	}
	if t := r.scopeRef(n); t != nil {
		return exprType{t: t, name: t.Name, static: true}
	}
	return exprType{}
}

func (r *resolution) callType(n *ast.Call) exprType {
	switch fn := n.Fn.(type) {
	case *ast.TypeName:
		return r.typeNamed(fn.Type.TypeName())
	case *ast.Ident:
		if r.findLocal(fn.Name) == nil {
			if t := r.db.GetType(fn.Name); t != nil && !t.IsNamespace() {
				return exprType{t: t, name: t.Name}
			}
		}
	case *ast.NamespaceAccess:
		if t := r.scopeRef(fn); t != nil && !t.IsNamespace() && !t.IsEnum() {
			if r.db.FindFirstSymbol(r.scopeRef(fn.Left), fn.Name) == nil {
				return exprType{t: t, name: t.Name}
			}
		}
	}
	cands := r.callCandidates(n)
	if i := r.bestCandidate(cands, n.Args); i >= 0 {
		return r.typeNamed(cands[i].m.Return)
	}
	return exprType{}
}

// locals returns the variables declared in function and block scopes
// around the cursor, innermost scope and latest declaration first.
func (r *resolution) locals() []scope.Variable {
	var out []scope.Variable
	for _, sid := range r.tree.Chain(r.ctx.Scope) {
		s := r.tree.Get(sid)
		if s.Kind != scope.KindOther && !s.Kind.IsFunction() {
			break
		}
		for i := len(s.Vars) - 1; i >= 0; i-- {
			v := s.Vars[i]
			if v.Flags.Has(scope.VarArgument) {
				out = append(out, v)
				continue
			}
			if v.NamePos > r.ctx.PrefixStart || r.initializing(v) {
				continue
			}
			out = append(out, v)
		}
		if s.Kind.IsFunction() {
			break
		}
	}
	return out
}

// initializing reports whether the cursor sits in v's own initializer:
// v is the last declarator before the cursor in the current statement.
func (r *resolution) initializing(v scope.Variable) bool {
	if !v.HasInit || v.Flags.Has(scope.VarLoop) || v.NamePos < r.ctx.StatementStart {
		return false
	}
	for _, other := range r.scopeAt().Vars {
		if other.NamePos > v.NamePos && other.NamePos <= r.ctx.PrefixStart {
			return false
		}
	}
	return true
}

func (r *resolution) findLocal(name string) *scope.Variable {
	for _, v := range r.locals() {
		if v.Name == name {
			return &v
		}
	}
	return nil
}

// returnType is the declared return type of the enclosing function.
func (r *resolution) returnType() string {
	fid := r.tree.EnclosingFunction(r.ctx.Scope)
	if !fid.IsValid() {
		return ""
	}
	fn := r.tree.Get(fid).Func()
	if fn == nil || fn.Return == nil {
		return ""
	}
	return r.canonical(fn.Return.TypeName())
}

// discriminantType is the type of the innermost switch subject.
func (r *resolution) discriminantType() string {
	for _, sid := range r.tree.Chain(r.ctx.Scope) {
		s := r.tree.Get(sid)
		if s.Kind == scope.KindOther && s.Control == token.KwSwitch {
			return r.typeOf(s.Discriminant).name
		}
	}
	return ""
}
