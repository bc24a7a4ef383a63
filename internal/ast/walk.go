package ast

// Inspect calls fn for n and, while fn returns true, for its children in
// source order.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Ident, *Literal, *This, *Super, *TypeName, *Import, *ClassDecl, *EnumDecl:
	case *Member:
		Inspect(n.Left, fn)
	case *NamespaceAccess:
		Inspect(n.Left, fn)
	case *Call:
		Inspect(n.Fn, fn)
		for _, a := range n.Args {
			Inspect(a.Value, fn)
		}
	case *Index:
		Inspect(n.Left, fn)
		Inspect(n.Index, fn)
	case *Unary:
		Inspect(n.X, fn)
	case *Postfix:
		Inspect(n.X, fn)
	case *Binary:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Assign:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Ternary:
		Inspect(n.Cond, fn)
		Inspect(n.Then, fn)
		Inspect(n.Else, fn)
	case *Cast:
		Inspect(n.X, fn)
	case *Paren:
		Inspect(n.X, fn)
	case *InitList:
		for _, e := range n.Elems {
			Inspect(e, fn)
		}
	case *ExprStmt:
		Inspect(n.X, fn)
	case *Return:
		Inspect(n.X, fn)
	case *Case:
		Inspect(n.X, fn)
	case *DefaultStmt:
		Inspect(n.X, fn)
	case *VarDecl:
		for _, v := range n.Vars {
			Inspect(v.Init, fn)
		}
	case *FuncDecl:
		for _, p := range n.Params {
			Inspect(p.Default, fn)
		}
	case *ForEach:
		Inspect(n.Range, fn)
	case *Control:
		Inspect(n.Init, fn)
		Inspect(n.Cond, fn)
		Inspect(n.Body, fn)
	case *DelegateDecl:
		if n.Sig != nil {
			Inspect(n.Sig, fn)
		}
	}
}
