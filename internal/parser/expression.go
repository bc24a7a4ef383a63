package parser

import (
	"asls/internal/ast"
	"asls/internal/token"
)

var binaryPrec = map[ast.BinaryOp]int{
	ast.OpOr:     1,
	ast.OpAnd:    2,
	ast.OpBitOr:  3,
	ast.OpBitXor: 4,
	ast.OpBitAnd: 5,
	ast.OpEq:     6,
	ast.OpNe:     6,
	ast.OpLt:     7,
	ast.OpLe:     7,
	ast.OpGt:     7,
	ast.OpGe:     7,
	ast.OpShl:    8,
	ast.OpShr:    8,
	ast.OpAdd:    9,
	ast.OpSub:    9,
	ast.OpMul:    10,
	ast.OpDiv:    10,
	ast.OpMod:    10,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

func (p *Parser) parseAssign() ast.Expr {
	start := p.peek().Start
	left := p.parseTernary()
	if left == nil || !p.peek().Kind.IsAssign() {
		return left
	}
	op := p.next().Kind
	right := p.parseAssign()
	return &ast.Assign{
		Pos:   ast.Pos{Start: start, End: p.lastEnd()},
		Op:    op,
		Left:  left,
		Right: right,
	}
}

func (p *Parser) parseTernary() ast.Expr {
	start := p.peek().Start
	cond := p.parseBinary(1)
	if cond == nil {
		return nil
	}
	if _, ok := p.eat(token.Question); !ok {
		return cond
	}
	t := &ast.Ternary{Cond: cond}
	t.Then = p.parseAssign()
	if _, ok := p.eat(token.Colon); ok {
		t.Else = p.parseAssign()
	}
	t.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return t
}

// binaryOp reports the operator at the cursor and how many tokens it spans.
func (p *Parser) binaryOp() (ast.BinaryOp, int) {
	tok := p.peek()
	if tok.Kind == token.Gt {
		if nx := p.peekN(1); nx.Kind == token.Gt && adjacent(tok, nx) {
			return ast.OpShr, 2
		}
	}
	return ast.BinaryOpFromToken(tok.Kind), 1
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.peek().Start
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		op, width := p.binaryOp()
		prec, ok := binaryPrec[op]
		if !ok || prec < minPrec {
			return left
		}
		for i := 0; i < width; i++ {
			p.next()
		}
		right := p.parseBinary(prec + 1)
		left = &ast.Binary{
			Pos:   ast.Pos{Start: start, End: p.lastEnd()},
			Op:    op,
			Left:  left,
			Right: right,
		}
		if right == nil {
			return left
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Minus, token.Plus, token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus, token.Amp, token.At:
		p.next()
		x := p.parseUnary()
		return &ast.Unary{
			Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()},
			Op:  tok.Kind,
			X:   x,
		}
	}
	x := p.parsePrimary()
	if x == nil {
		return nil
	}
	return p.parsePostfix(x)
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	pos := ast.Pos{Start: tok.Start, End: tok.End}
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse, token.KwNullptr:
		p.next()
		return &ast.Literal{Pos: pos, Kind: tok.Kind, Value: tok.Text}
	case token.KwThis:
		p.next()
		return &ast.This{Pos: pos}
	case token.KwSuper:
		p.next()
		return &ast.Super{Pos: pos}
	case token.LParen:
		p.next()
		x := p.parseExpr()
		_, closed := p.eat(token.RParen)
		return &ast.Paren{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, X: x, Closed: closed}
	case token.ColonColon:
		return p.parseNamespaceAccess(nil, tok.Start)
	case token.LBrace:
		return p.parseInitList()
	}
	if !tok.IsName() {
		return nil
	}
	if tok.Text == "Cast" && p.peekN(1).Kind == token.Lt {
		if c := p.tryCast(); c != nil {
			return c
		}
	}
	if p.peekN(1).Kind == token.Lt {
		if tn := p.tryGenericValue(); tn != nil {
			return tn
		}
	}
	p.next()
	return &ast.Ident{Pos: pos, Name: tok.Text}
}

func (p *Parser) parseInitList() ast.Expr {
	start := p.next().Start
	list := &ast.InitList{}
	for !p.atEOF() && !p.at(token.RBrace) {
		x := p.parseExpr()
		if x == nil {
			break
		}
		list.Elems = append(list.Elems, x)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, list.Closed = p.eat(token.RBrace)
	list.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return list
}

// tryGenericValue accepts Name<Args> when followed by '(' or '::'.
func (p *Parser) tryGenericValue() ast.Expr {
	m := p.mark()
	t := p.parseType()
	if t == nil || t.Open || len(t.Args) == 0 {
		p.reset(m)
		return nil
	}
	switch p.peek().Kind {
	case token.LParen, token.ColonColon:
		return &ast.TypeName{Pos: t.Pos, Type: t}
	}
	p.reset(m)
	return nil
}

func (p *Parser) tryCast() ast.Expr {
	m := p.mark()
	start := p.next().Start
	p.next() // <
	t := p.parseType()
	if t == nil {
		p.reset(m)
		return nil
	}
	if _, ok := p.eat(token.Gt); !ok {
		if p.atEOF() {
			return &ast.Cast{Pos: ast.Pos{Start: start, End: p.lastEnd()}, Type: t}
		}
		p.reset(m)
		return nil
	}
	c := &ast.Cast{Type: t}
	if _, ok := p.eat(token.LParen); ok {
		c.X = p.parseExpr()
		_, c.Closed = p.eat(token.RParen)
	}
	c.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return c
}

func (p *Parser) parseNamespaceAccess(left ast.Expr, start uint32) ast.Expr {
	sep := p.next() // ::
	na := &ast.NamespaceAccess{Left: left, NamePos: sep.End}
	if tok := p.peek(); tok.IsName() {
		p.next()
		na.Name = tok.Text
		na.NamePos = tok.Start
	}
	na.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return na
}

func (p *Parser) parsePostfix(x ast.Expr) ast.Expr {
	start := x.Span().Start
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			p.next()
			m := &ast.Member{Left: x, NamePos: tok.End}
			if name := p.peek(); name.IsName() {
				p.next()
				m.Name = name.Text
				m.NamePos = name.Start
			}
			m.Pos = ast.Pos{Start: start, End: p.lastEnd()}
			x = m
			if m.Name == "" {
				return x
			}
		case token.ColonColon:
			x = p.parseNamespaceAccess(x, start)
			if x.(*ast.NamespaceAccess).Name == "" {
				return x
			}
		case token.LParen:
			x = p.parseCall(x, start)
			if !x.(*ast.Call).Closed {
				return x
			}
		case token.LBracket:
			p.next()
			ix := &ast.Index{Left: x}
			ix.Index = p.parseExpr()
			_, ix.Closed = p.eat(token.RBracket)
			ix.Pos = ast.Pos{Start: start, End: p.lastEnd()}
			x = ix
			if !ix.Closed {
				return x
			}
		case token.PlusPlus, token.MinusMinus:
			p.next()
			x = &ast.Postfix{Pos: ast.Pos{Start: start, End: tok.End}, Op: tok.Kind, X: x}
		default:
			return x
		}
	}
}

func (p *Parser) parseCall(fn ast.Expr, start uint32) ast.Expr {
	lp := p.next()
	call := &ast.Call{Fn: fn, Lparen: lp.Start}
	for {
		if _, ok := p.eat(token.RParen); ok {
			call.Closed = true
			break
		}
		if p.atEOF() {
			break
		}
		argStart := p.peek().Start
		arg := ast.Arg{}
		if name := p.peek(); name.IsName() && p.peekN(1).Kind == token.Assign {
			p.next()
			p.next()
			arg.Name = name.Text
		}
		before := p.mark()
		arg.Value = p.parseAssign()
		arg.Pos = ast.Pos{Start: argStart, End: p.lastEnd()}
		if arg.Value == nil && arg.Name == "" && p.mark() == before && !p.at(token.Comma) {
			// not an argument; leave the token for the caller
			break
		}
		call.Args = append(call.Args, arg)
		if _, ok := p.eat(token.Comma); ok {
			if p.atEOF() {
				call.Args = append(call.Args, ast.Arg{Pos: ast.Pos{Start: p.lastEnd(), End: p.lastEnd()}})
			}
			continue
		}
		if !p.at(token.RParen) {
			break
		}
	}
	call.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return call
}
