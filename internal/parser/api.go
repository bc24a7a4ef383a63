package parser

import (
	"asls/internal/ast"
	"asls/internal/token"
)

// ParseExpression parses src as a single expression. ok is true when the
// expression consumed every token.
func ParseExpression(src string, base uint32) (ast.Expr, bool) {
	p := newParser(src, base)
	x := p.parseExpr()
	return x, x != nil && p.atEOF()
}

// ParseStatement parses src as one statement with an optional trailing ';'.
// ok is true when the statement consumed every token.
func ParseStatement(src string, base uint32) (ast.Stmt, bool) {
	p := newParser(src, base)
	st := p.parseStatement()
	if st == nil {
		return nil, false
	}
	p.eat(token.Semicolon)
	return st, p.atEOF()
}

// ParseType parses src as a type reference.
func ParseType(src string, base uint32) (*ast.TypeRef, bool) {
	p := newParser(src, base)
	t := p.parseType()
	return t, t != nil && p.atEOF()
}

// ParseTypename parses a canonical type spelling such as "TMap<FName,int>".
func ParseTypename(name string) (*ast.TypeRef, bool) {
	return ParseType(name, 0)
}

// ParseHeader classifies the cleaned declaration text in front of a '{'.
// Candidates are tried in a fixed order: class/struct/namespace header,
// function header, constructor of enclosing, enum header. Control-flow
// headers are recognized by their leading keyword. nil means no match.
func ParseHeader(src string, base uint32, enclosing string) ast.Stmt {
	p := newParser(src, base)
	p.enclosing = enclosing
	return p.parseHeader()
}
