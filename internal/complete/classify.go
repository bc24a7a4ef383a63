package complete

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/token"
)

func nameEnd(pos uint32, name string) uint32 {
	return pos + uint32(len(name)) // #nosec G115 -- identifiers are short
}

// afterBlank reports whether the cursor follows whitespace, which turns a
// complete type name into the start of a declaration.
func (r *resolution) afterBlank() bool {
	return r.ctx.Prefix == "" && r.off > 0 && strings.ContainsRune(" \t", rune(r.text[r.off-1]))
}

func (r *resolution) statement(st ast.Stmt) {
	c := r.ctx
	switch n := st.(type) {
	case *ast.ExprStmt:
		if n.X == nil {
			return
		}
		r.expr(n.X)
	case *ast.Return:
		c.Expected = r.returnType()
		r.expr(n.X)
	case *ast.Case:
		if n.Default {
			return
		}
		c.Expected = r.discriminantType()
		r.expr(n.X)
	case *ast.DefaultStmt:
		c.Construction = true
		r.expr(n.X)
	case *ast.VarDecl:
		r.varDecl(n)
	case *ast.FuncDecl:
		r.funcDecl(n)
	case *ast.ClassDecl:
		switch {
		case n.ExpectSuper && r.afterBlank():
			c.Kind = KindTypeOnly
		case n.Super != "" && nameEnd(n.SuperPos, n.Super) == r.off:
			c.Kind = KindTypeOnly
		case n.Name != "" && nameEnd(n.NamePos, n.Name) == r.off:
			c.Kind = KindNewName
		}
	case *ast.EnumDecl:
		if n.Name != "" && nameEnd(n.NamePos, n.Name) == r.off {
			c.Kind = KindNewName
		}
	case *ast.DelegateDecl:
		if n.Sig != nil {
			r.funcDecl(n.Sig)
		}
	case *ast.ForEach:
		r.forEach(n)
	case *ast.Control:
		r.control(n)
	case *ast.Import:
		if n.End == r.off || r.afterBlank() {
			c.Kind = KindImport
			c.Prefix = strings.TrimSpace(r.text[n.PathPos:r.off])
		}
	}
}

func (r *resolution) control(n *ast.Control) {
	c := r.ctx
	if n.Body != nil {
		r.statement(n.Body)
		return
	}
	if fe, ok := n.Init.(*ast.ForEach); ok {
		r.forEach(fe)
		return
	}
	if n.Init != nil && n.Cond == nil && n.Init.Span().End == r.off {
		r.statement(n.Init)
		return
	}
	switch n.Keyword {
	case token.KwIf, token.KwWhile, token.KwFor:
		c.Expected = "bool"
	case token.KwElse:
		if inner, ok := n.Init.(*ast.Control); ok {
			r.control(inner)
			return
		}
	}
	if strings.TrimSpace(r.text[n.Start:r.off]) == n.Keyword.String() {
		// "if" with no parenthesis yet
		return
	}
	r.expr(n.Cond)
}

func (r *resolution) forEach(fe *ast.ForEach) {
	c := r.ctx
	if fe.Range == nil {
		if nameEnd(fe.NamePos, fe.Name) == r.off {
			c.Kind = KindNewName
			c.NewNameType = fe.Type.TypeName()
			return
		}
		c.Kind = KindScope
		return
	}
	r.expr(fe.Range)
}

func (r *resolution) varDecl(vd *ast.VarDecl) {
	c := r.ctx
	if len(vd.Vars) == 0 {
		return
	}
	d := vd.Vars[len(vd.Vars)-1]
	switch {
	case d.HasInit:
		c.Expected = r.canonical(vd.Type.TypeName())
		r.expr(d.Init)
	case nameEnd(d.NamePos, d.Name) == r.off:
		c.Kind = KindNewName
		c.NewNameType = vd.Type.TypeName()
	}
}

func (r *resolution) funcDecl(fn *ast.FuncDecl) {
	c := r.ctx
	if fn.Name != "" && nameEnd(fn.NamePos, fn.Name) == r.off {
		c.Kind = KindNewName
		return
	}
	if fn.Closed || fn.Lparen == 0 {
		return
	}
	tail := strings.TrimSpace(r.text[fn.Lparen:r.off])
	if len(fn.Params) == 0 || tail == "(" || strings.HasSuffix(tail, ",") {
		c.Kind = KindTypeOnly
		return
	}
	p := fn.Params[len(fn.Params)-1]
	switch {
	case p.Default != nil || strings.HasSuffix(strings.TrimSpace(r.text[p.Start:r.off]), "="):
		c.Expected = r.canonical(p.Type.TypeName())
		r.expr(p.Default)
	case p.Name != "" && nameEnd(p.NamePos, p.Name) == r.off:
		c.Kind = KindNewName
		c.NewNameType = p.Type.TypeName()
	case p.Name == "" && r.afterBlank() && !p.Type.Open:
		c.Kind = KindNewName
		c.NewNameType = p.Type.TypeName()
	case p.Name == "":
		c.Kind = KindTypeOnly
	}
}

// expr follows the right edge of x down to the expression the cursor
// ends, collecting the expected type on the way.
func (r *resolution) expr(x ast.Expr) {
	c := r.ctx
	for {
		switch n := x.(type) {
		case nil:
			c.Kind = KindScope
			return
		case *ast.Assign:
			c.Expected = r.typeOf(n.Left).name
			x = n.Right
		case *ast.Binary:
			if n.Op.IsLogical() {
				c.Expected = "bool"
			} else {
				c.Expected = r.typeOf(n.Left).name
			}
			x = n.Right
		case *ast.Unary:
			if n.Op == token.Bang {
				c.Expected = "bool"
			}
			x = n.X
		case *ast.Ternary:
			switch {
			case n.Else != nil:
				x = n.Else
			case strings.HasSuffix(strings.TrimSpace(r.text[n.Start:r.off]), ":"):
				x = nil
			case n.Then != nil:
				x = n.Then
			default:
				x = nil
			}
		case *ast.Call:
			if n.Closed {
				r.leaf(n)
				return
			}
			c.Expected = r.paramType(n)
			if len(n.Args) == 0 {
				x = nil
				continue
			}
			x = n.Args[len(n.Args)-1].Value
		case *ast.Index:
			if n.Closed {
				r.leaf(n)
				return
			}
			c.Expected = ""
			x = n.Index
		case *ast.Paren:
			if n.Closed {
				r.leaf(n)
				return
			}
			x = n.X
		case *ast.Cast:
			if n.Closed {
				r.leaf(n)
				return
			}
			if n.X == nil && !strings.HasSuffix(strings.TrimSpace(r.text[n.Start:r.off]), "(") {
				c.Kind = KindTypeOnly
				return
			}
			c.Expected = ""
			x = n.X
		case *ast.InitList:
			if n.Closed || len(n.Elems) == 0 {
				if !n.Closed {
					c.Kind = KindScope
				}
				return
			}
			x = n.Elems[len(n.Elems)-1]
		default:
			r.leaf(x)
			return
		}
	}
}

func (r *resolution) leaf(x ast.Expr) {
	c := r.ctx
	switch n := x.(type) {
	case *ast.Ident:
		if n.End == r.off {
			c.Kind = KindScope
			return
		}
		if r.afterBlank() && r.isTypeName(n.Name) {
			c.Kind = KindNewName
			c.NewNameType = n.Name
		}
	case *ast.TypeName:
		if r.afterBlank() {
			c.Kind = KindNewName
			c.NewNameType = n.Type.TypeName()
		}
	case *ast.Member:
		if n.Name != "" && nameEnd(n.NamePos, n.Name) != r.off {
			return
		}
		c.Kind = KindMember
		c.Prior = n.Left
		c.PriorType = r.typeOf(n.Left).t
		if c.PriorType == nil {
			// unknown receiver: fall back to scope symbols
			c.Kind = KindScope
		}
	case *ast.NamespaceAccess:
		if n.Name != "" && nameEnd(n.NamePos, n.Name) != r.off {
			return
		}
		c.Kind = KindNamespace
		c.Target = r.scopeRef(n.Left)
		if c.Target == nil {
			c.Kind = KindNone
		}
	}
}

// isTypeName reports whether name can start a declaration.
func (r *resolution) isTypeName(name string) bool {
	if name == "auto" {
		return true
	}
	t := r.db.GetType(name)
	return t != nil && !t.IsNamespace()
}
