package ast

// Pos is the absolute byte range of a node.
type Pos struct {
	Start uint32
	End   uint32
}

func (p Pos) Span() Pos { return p }

// Node is implemented by every syntax node.
type Node interface {
	Span() Pos
}

// Expr is a sealed set of expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a sealed set of statement nodes.
type Stmt interface {
	Node
	stmtNode()
}
