package ast

import (
	"asls/internal/token"
)

type Ident struct {
	Pos
	Name string
}

type Literal struct {
	Pos
	Kind  token.Kind
	Value string
}

type This struct{ Pos }

type Super struct{ Pos }

// TypeName is a generic type used as a value, e.g. the callee in TArray<int>().
type TypeName struct {
	Pos
	Type *TypeRef
}

// Member is Left.Name. Name is empty when nothing follows the dot yet.
type Member struct {
	Pos
	Left    Expr
	Name    string
	NamePos uint32
}

// NamespaceAccess is Left::Name. Left is nil for a leading "::".
type NamespaceAccess struct {
	Pos
	Left    Expr
	Name    string
	NamePos uint32
}

// Arg is a call argument; Name is set for named arguments.
type Arg struct {
	Pos
	Name  string
	Value Expr
}

type Call struct {
	Pos
	Fn     Expr
	Args   []Arg
	Closed bool
	// Lparen is the offset of the opening parenthesis.
	Lparen uint32
}

type Index struct {
	Pos
	Left   Expr
	Index  Expr
	Closed bool
}

type Unary struct {
	Pos
	Op token.Kind
	X  Expr
}

type Postfix struct {
	Pos
	Op token.Kind
	X  Expr
}

// Binary covers arithmetic, comparison and logical operators. Op token.Gt
// followed by another Gt is reported as Shr.
type Binary struct {
	Pos
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type Assign struct {
	Pos
	Op    token.Kind
	Left  Expr
	Right Expr
}

type Ternary struct {
	Pos
	Cond Expr
	Then Expr
	Else Expr
}

// Cast is Cast<T>(X).
type Cast struct {
	Pos
	Type   *TypeRef
	X      Expr
	Closed bool
}

type Paren struct {
	Pos
	X      Expr
	Closed bool
}

// InitList is a braced initializer such as {1, 2, 3}.
type InitList struct {
	Pos
	Elems  []Expr
	Closed bool
}

func (*Ident) exprNode()           {}
func (*Literal) exprNode()         {}
func (*This) exprNode()            {}
func (*Super) exprNode()           {}
func (*TypeName) exprNode()        {}
func (*Member) exprNode()          {}
func (*NamespaceAccess) exprNode() {}
func (*Call) exprNode()            {}
func (*Index) exprNode()           {}
func (*Unary) exprNode()           {}
func (*Postfix) exprNode()         {}
func (*Binary) exprNode()          {}
func (*Assign) exprNode()          {}
func (*Ternary) exprNode()         {}
func (*Cast) exprNode()            {}
func (*Paren) exprNode()           {}
func (*InitList) exprNode()        {}
