package parser

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/token"
)

// parseType reads [const] Name[::Name]*[<Args>][?][&[in|out|inout]].
// It returns nil without consuming anything when no type starts here.
func (p *Parser) parseType() *ast.TypeRef {
	m := p.mark()
	start := p.peek().Start
	t := &ast.TypeRef{}
	if _, ok := p.eat(token.KwConst); ok {
		t.Const = true
	}
	name := p.peek()
	if !name.IsName() && name.Kind != token.KwAuto {
		p.reset(m)
		return nil
	}
	p.next()
	parts := []string{name.Text}
	for p.at(token.ColonColon) && p.peekN(1).IsName() {
		p.next()
		parts = append(parts, p.next().Text)
	}
	t.Name = strings.Join(parts, "::")

	if _, ok := p.eat(token.Lt); ok {
		for {
			if p.atEOF() {
				t.Open = true
				break
			}
			arg := p.parseType()
			if arg == nil {
				p.reset(m)
				return nil
			}
			t.Args = append(t.Args, arg)
			if arg.Open {
				t.Open = true
				break
			}
			if _, ok := p.eat(token.Comma); ok {
				continue
			}
			if _, ok := p.eat(token.Gt); ok {
				break
			}
			if p.atEOF() {
				t.Open = true
				break
			}
			p.reset(m)
			return nil
		}
	}
	if t.Open {
		t.Pos = ast.Pos{Start: start, End: p.lastEnd()}
		return t
	}

	if q := p.peek(); q.Kind == token.Question && adjacent(p.toks[p.pos-1], q) {
		p.next()
		t.Handle = true
	}
	if amp, ok := p.eat(token.Amp); ok {
		t.Ref = ast.RefPlain
		if nx := p.peek(); adjacent(amp, nx) {
			switch nx.Kind {
			case token.KwIn:
				t.Ref = ast.RefIn
				p.next()
			case token.KwOut:
				t.Ref = ast.RefOut
				p.next()
			case token.KwInOut:
				t.Ref = ast.RefInOut
				p.next()
			}
		}
	}
	t.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return t
}

// CleanTypename strips qualifiers from a type as written: "const FVector&in"
// becomes "FVector" and generic arguments are normalized without spaces.
func CleanTypename(written string) string {
	written = strings.TrimSpace(written)
	if written == "" {
		return ""
	}
	if t, ok := ParseTypename(written); ok {
		return t.TypeName()
	}
	s := strings.TrimPrefix(written, "const ")
	s = strings.TrimSuffix(s, "&in")
	s = strings.TrimSuffix(s, "&out")
	s = strings.TrimSuffix(s, "&inout")
	s = strings.TrimSuffix(s, "&")
	s = strings.TrimSuffix(s, "?")
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
