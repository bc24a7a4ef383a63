package parser

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/token"
)

var specifierMacros = map[string]bool{
	"UCLASS":     true,
	"USTRUCT":    true,
	"UFUNCTION":  true,
	"UPROPERTY":  true,
	"UENUM":      true,
	"UMETA":      true,
	"UINTERFACE": true,
}

// IsSpecifierMacro reports whether name is a recognized macro annotation.
func IsSpecifierMacro(name string) bool {
	return specifierMacros[name]
}

// parseSpecifiers consumes any number of leading macro annotations.
func (p *Parser) parseSpecifiers() []ast.Specifier {
	var out []ast.Specifier
	for {
		tok := p.peek()
		if tok.Kind != token.Ident || !specifierMacros[tok.Text] || p.peekN(1).Kind != token.LParen {
			return out
		}
		out = append(out, p.parseSpecifier())
	}
}

func (p *Parser) parseSpecifier() ast.Specifier {
	macro := p.next()
	p.next() // (
	spec := ast.Specifier{Macro: macro.Text}
	for !p.atEOF() {
		if _, ok := p.eat(token.RParen); ok {
			spec.Closed = true
			break
		}
		if _, ok := p.eat(token.Comma); ok {
			continue
		}
		nameTok := p.next()
		arg := ast.SpecifierArg{Name: nameTok.Text}
		if _, ok := p.eat(token.Assign); ok {
			valStart := p.peek().Start
			depth := 0
			for !p.atEOF() {
				k := p.peek().Kind
				if depth == 0 && (k == token.Comma || k == token.RParen) {
					break
				}
				switch k {
				case token.LParen:
					depth++
				case token.RParen:
					depth--
				}
				p.next()
			}
			arg.Value = strings.TrimSpace(p.text(valStart, p.lastEnd()))
		}
		spec.Args = append(spec.Args, arg)
	}
	spec.Pos = ast.Pos{Start: macro.Start, End: p.lastEnd()}
	return spec
}

// StripSpecifiers removes macro annotations from declaration text, keeping
// every other byte in place so offsets stay valid.
func StripSpecifiers(src string, base uint32) (string, []ast.Specifier) {
	p := newParser(src, base)
	var specs []ast.Specifier
	buf := []byte(src)
	for !p.atEOF() {
		tok := p.peek()
		if tok.Kind == token.Ident && specifierMacros[tok.Text] && p.peekN(1).Kind == token.LParen {
			spec := p.parseSpecifier()
			specs = append(specs, spec)
			for off := spec.Start; off < spec.End; off++ {
				if i := int(off - base); i < len(buf) && buf[i] != '\n' {
					buf[i] = ' '
				}
			}
			continue
		}
		p.next()
	}
	return string(buf), specs
}
