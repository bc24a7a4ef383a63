package parser

import (
	"asls/internal/lexer"
	"asls/internal/token"
)

// Parser is a recursive-descent parser over a pre-lexed token slice. It never
// reports errors: callers inspect whether the returned node is non-nil and
// whether every token was consumed.
type Parser struct {
	toks []token.Token
	pos  int
	src  string
	base uint32
	// enclosing is the typename of the surrounding class, used to tell
	// constructors from calls.
	enclosing string
}

func newParser(src string, base uint32) *Parser {
	return &Parser{
		toks: lexer.Tokenize(src, base),
		src:  src,
		base: base,
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n tokens ahead; past the end it yields EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atEOF() bool {
	return p.at(token.EOF)
}

func (p *Parser) next() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return token.Token{}, false
}

func (p *Parser) mark() int { return p.pos }

func (p *Parser) reset(m int) { p.pos = m }

// lastEnd is the end offset of the most recently consumed token.
func (p *Parser) lastEnd() uint32 {
	if p.pos == 0 {
		return p.toks[0].Start
	}
	return p.toks[p.pos-1].End
}

func (p *Parser) text(start, end uint32) string {
	if start < p.base || end < start {
		return ""
	}
	s, e := int(start-p.base), int(end-p.base)
	if e > len(p.src) {
		e = len(p.src)
	}
	if s > e {
		return ""
	}
	return p.src[s:e]
}

// adjacent reports whether two tokens touch with no trivia between them.
func adjacent(a, b token.Token) bool {
	return a.End == b.Start
}
