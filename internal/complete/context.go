package complete

import (
	"asls/internal/ast"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/token"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// ContextKind tells what the cursor is completing.
type ContextKind uint8

const (
	// KindNone offers nothing: inside comments or literals, after a
	// complete expression, or where nothing parsed.
	KindNone ContextKind = iota
	// KindScope completes a plain identifier from the enclosing scopes.
	KindScope
	// KindMember completes after "Expr.".
	KindMember
	// KindNamespace completes after "Name::" or a leading "::".
	KindNamespace
	// KindTypeOnly completes type names: supertypes, parameter types, casts.
	KindTypeOnly
	// KindNewName is a name being declared; only suggestions are offered.
	KindNewName
	// KindSpecifier completes inside a UCLASS/UFUNCTION/... argument list.
	KindSpecifier
	// KindImport completes a module path after "import".
	KindImport
)

func (k ContextKind) String() string {
	switch k {
	case KindScope:
		return "scope"
	case KindMember:
		return "member"
	case KindNamespace:
		return "namespace"
	case KindTypeOnly:
		return "type"
	case KindNewName:
		return "new-name"
	case KindSpecifier:
		return "specifier"
	case KindImport:
		return "import"
	default:
		return "none"
	}
}

// Context is what the resolver reconstructed around a cursor. Type
// pointers stay valid until the next workspace update.
type Context struct {
	Module source.ModuleID
	Offset uint32
	Kind   ContextKind
	// Scope is the innermost scope containing the cursor.
	Scope scope.ID
	// Prefix is the identifier text between PrefixStart and the cursor.
	Prefix      string
	PrefixStart uint32
	// StatementStart is where the statement holding the cursor begins.
	StatementStart uint32
	// Candidate is the text that parsed, Node its syntax tree.
	Candidate string
	Node      ast.Node

	// Prior is the expression in front of '.' for member completion and
	// PriorType its resolved type.
	Prior     ast.Expr
	PriorType *typedb.Type
	// Target is the namespace or type in front of "::".
	Target *typedb.Type

	// Expected is the canonical typename the position expects.
	Expected string
	// NewNameType is the declared type of a name being declared.
	NewNameType string
	// Macro and MacroArgs describe a specifier argument list.
	Macro     string
	MacroArgs []string

	// Using is the enclosing type name, empty outside types.
	Using        string
	Construction bool
	InFunction   bool
	InLoop       bool
	InSwitch     bool
	// Namespace is the qualified enclosing namespace ("A::B").
	Namespace string
}

// Access returns the visibility context of the cursor.
func (c *Context) Access() typedb.AccessContext {
	return typedb.AccessContext{Using: c.Using, Construction: c.Construction}
}

// resolution carries the state of one request. It lives inside a
// workspace read callback.
type resolution struct {
	v    workspace.View
	db   *typedb.DB
	mod  *workspace.Module
	tree *scope.Tree
	text string
	off  uint32
	ctx  *Context
	opts *Options
	// inferring counts nested "auto" deductions.
	inferring int
}

func (r *resolution) scopeAt() *scope.Scope {
	return r.tree.Get(r.ctx.Scope)
}

// fillEnclosing records the enclosing type, function, loops and
// namespace of the cursor scope.
func (r *resolution) fillEnclosing() {
	c := r.ctx
	var ns []string
	for _, sid := range r.tree.Chain(c.Scope) {
		s := r.tree.Get(sid)
		switch {
		case s.Kind.IsType():
			if c.Using == "" {
				c.Using = s.Name
			}
		case s.Kind.IsFunction():
			c.InFunction = true
			if s.Kind == scope.KindConstructor {
				c.Construction = true
			}
		case s.Kind == scope.KindNamespace && s.Name != "":
			ns = append(ns, s.Name)
		case s.Kind == scope.KindOther:
			switch s.Control {
			case token.KwFor, token.KwWhile, token.KwDo:
				c.InLoop = true
			case token.KwSwitch:
				c.InSwitch = true
			}
		}
	}
	for i := len(ns) - 1; i >= 0; i-- {
		if c.Namespace != "" {
			c.Namespace += "::"
		}
		c.Namespace += ns[i]
	}
}

// usingType is the database entry of the enclosing type.
func (r *resolution) usingType() *typedb.Type {
	if r.ctx.Using == "" {
		return nil
	}
	return r.db.GetType(r.ctx.Using)
}

// namespaceChain returns the enclosing namespaces innermost first, ending
// with the root.
func (r *resolution) namespaceChain() []*typedb.Type {
	var out []*typedb.Type
	name := r.ctx.Namespace
	for name != "" {
		if ns := r.db.GetNamespace(name); ns != nil {
			out = append(out, ns)
		}
		i := lastSep(name)
		if i < 0 {
			break
		}
		name = name[:i]
	}
	if root := r.db.Root(); root != nil {
		out = append(out, root)
	}
	return out
}

func lastSep(name string) int {
	for i := len(name) - 2; i >= 0; i-- {
		if name[i] == ':' && name[i+1] == ':' {
			return i
		}
	}
	return -1
}
