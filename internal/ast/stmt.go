package ast

import (
	"asls/internal/token"
)

// Access is a member access level.
type Access uint8

const (
	AccessPublic Access = iota
	AccessPrivate
	AccessProtected
)

func (a Access) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	default:
		return "public"
	}
}

type ExprStmt struct {
	Pos
	X Expr
}

type Return struct {
	Pos
	X Expr
}

// Case is "case X:" or, with Default set, "default:".
type Case struct {
	Pos
	X       Expr
	Default bool
}

// DefaultStmt is a "default Property = Value;" statement in a class body.
type DefaultStmt struct {
	Pos
	X Expr
}

type Declarator struct {
	Name    string
	NamePos uint32
	Init    Expr
	// HasInit is set when '=' was seen, even if no initializer follows yet.
	HasInit bool
}

type VarDecl struct {
	Pos
	Type       *TypeRef
	Vars       []Declarator
	Access     Access
	Specifiers []Specifier
}

type Param struct {
	Pos
	Type    *TypeRef
	Name    string
	NamePos uint32
	Default Expr
	// DefaultText is the default value as written.
	DefaultText string
}

// FuncFlags are trailing and leading function qualifiers.
type FuncFlags uint16

const (
	FuncConst FuncFlags = 1 << iota
	FuncOverride
	FuncProperty
	FuncFinal
	FuncStatic
	FuncMixin
)

// FuncDecl is a function or constructor header. Return is nil for
// constructors.
type FuncDecl struct {
	Pos
	Return     *TypeRef
	Name       string
	NamePos    uint32
	Params     []Param
	Flags      FuncFlags
	Access     Access
	Specifiers []Specifier
	Closed     bool
	// Lparen is the offset of the opening parenthesis of the parameter list.
	Lparen uint32
}

// IsConstructor reports whether the header has no return type.
func (f *FuncDecl) IsConstructor() bool { return f.Return == nil }

// ClassKind distinguishes the aggregate headers.
type ClassKind uint8

const (
	ClassClass ClassKind = iota
	ClassStruct
	ClassNamespace
)

type ClassDecl struct {
	Pos
	Kind       ClassKind
	Name       string
	NamePos    uint32
	Super      string
	SuperPos   uint32
	Specifiers []Specifier
	// ExpectSuper is set after a ':' with no supertype written yet.
	ExpectSuper bool
}

type EnumDecl struct {
	Pos
	Name       string
	NamePos    uint32
	Specifiers []Specifier
}

// ForEach is the header "for (T x : Range)".
type ForEach struct {
	Pos
	Type    *TypeRef
	Name    string
	NamePos uint32
	Range   Expr
}

// Control is a control-flow header such as "if (Cond)" or "switch (X)".
type Control struct {
	Pos
	Keyword token.Kind
	Cond    Expr
	Init    Stmt
	// Body is the single statement of a brace-less block.
	Body Stmt
}

type Import struct {
	Pos
	Path    string
	PathPos uint32
}

// DelegateDecl is "delegate R Name(...)" or "event R Name(...)".
type DelegateDecl struct {
	Pos
	Event bool
	Sig   *FuncDecl
}

func (*ExprStmt) stmtNode()     {}
func (*Return) stmtNode()       {}
func (*Case) stmtNode()         {}
func (*DefaultStmt) stmtNode()  {}
func (*VarDecl) stmtNode()      {}
func (*FuncDecl) stmtNode()     {}
func (*ClassDecl) stmtNode()    {}
func (*EnumDecl) stmtNode()     {}
func (*ForEach) stmtNode()      {}
func (*Control) stmtNode()      {}
func (*Import) stmtNode()       {}
func (*DelegateDecl) stmtNode() {}
