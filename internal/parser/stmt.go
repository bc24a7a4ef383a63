package parser

import (
	"strings"

	"asls/internal/ast"
	"asls/internal/token"
)

var funcQualifierIdents = map[string]bool{
	"no_discard":            true,
	"allow_discard":         true,
	"accept_temporary_this": true,
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF:
		return nil
	case token.KwReturn:
		p.next()
		x := p.parseExpr()
		return &ast.Return{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, X: x}
	case token.KwCase:
		p.next()
		x := p.parseExpr()
		p.eat(token.Colon)
		return &ast.Case{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, X: x}
	case token.KwDefault:
		p.next()
		if _, ok := p.eat(token.Colon); ok {
			return &ast.Case{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, Default: true}
		}
		x := p.parseExpr()
		return &ast.DefaultStmt{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, X: x}
	case token.KwImport:
		return p.parseImport()
	case token.KwDelegate, token.KwEvent:
		return p.parseDelegate()
	case token.KwClass, token.KwStruct, token.KwNamespace:
		return p.parseClassHeader(nil)
	case token.KwEnum:
		return p.parseEnumHeader(nil)
	case token.KwIf, token.KwWhile, token.KwSwitch, token.KwFor, token.KwElse, token.KwDo:
		return p.parseControlStatement()
	case token.KwBreak, token.KwContinue, token.KwFallthrough:
		p.next()
		return &ast.ExprStmt{Pos: ast.Pos{Start: tok.Start, End: tok.End}}
	}

	specs := p.parseSpecifiers()
	access, flags := p.parseModifiers()
	switch p.peek().Kind {
	case token.KwClass, token.KwStruct:
		return p.parseClassHeader(specs)
	case token.KwEnum:
		return p.parseEnumHeader(specs)
	}
	if d := p.tryDeclaration(tok.Start, specs, access, flags); d != nil {
		return d
	}
	x := p.parseExpr()
	if x == nil {
		return nil
	}
	return &ast.ExprStmt{Pos: ast.Pos{Start: tok.Start, End: p.lastEnd()}, X: x}
}

// parseModifiers reads access keywords and leading function qualifiers.
func (p *Parser) parseModifiers() (ast.Access, ast.FuncFlags) {
	access := ast.AccessPublic
	var flags ast.FuncFlags
	for {
		switch p.peek().Kind {
		case token.KwPrivate:
			access = ast.AccessPrivate
		case token.KwProtected:
			access = ast.AccessProtected
		case token.KwPublic:
			access = ast.AccessPublic
		case token.KwStatic:
			flags |= ast.FuncStatic
		case token.KwMixin:
			flags |= ast.FuncMixin
		default:
			return access, flags
		}
		p.next()
		p.eat(token.Colon)
	}
}

// tryDeclaration parses "Type Name ..." as a variable or function
// declaration, restoring the cursor when the text is not one.
func (p *Parser) tryDeclaration(start uint32, specs []ast.Specifier, access ast.Access, flags ast.FuncFlags) ast.Stmt {
	m := p.mark()
	t := p.parseType()
	if t == nil || t.Open {
		p.reset(m)
		return nil
	}
	name := p.peek()
	if !name.IsName() {
		p.reset(m)
		return nil
	}
	p.next()
	if p.at(token.LParen) {
		fm := p.mark()
		fn := &ast.FuncDecl{
			Return:     t,
			Name:       name.Text,
			NamePos:    name.Start,
			Access:     access,
			Flags:      flags,
			Specifiers: specs,
		}
		if p.parseParams(fn) {
			p.parseFuncQualifiers(fn)
			fn.Pos = ast.Pos{Start: start, End: p.lastEnd()}
			return fn
		}
		// "FVector V(1, 2, 3)" constructs a local
		p.reset(fm)
		call := p.parseCall(&ast.Ident{Pos: t.Pos, Name: t.TypeName()}, t.Start)
		return &ast.VarDecl{
			Pos:        ast.Pos{Start: start, End: p.lastEnd()},
			Type:       t,
			Vars:       []ast.Declarator{{Name: name.Text, NamePos: name.Start, Init: call, HasInit: true}},
			Access:     access,
			Specifiers: specs,
		}
	}

	decl := &ast.VarDecl{Type: t, Access: access, Specifiers: specs}
	d := ast.Declarator{Name: name.Text, NamePos: name.Start}
	for {
		if _, ok := p.eat(token.Assign); ok {
			d.HasInit = true
			d.Init = p.parseTernary()
		}
		decl.Vars = append(decl.Vars, d)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		nx := p.peek()
		if !nx.IsName() {
			break
		}
		p.next()
		d = ast.Declarator{Name: nx.Text, NamePos: nx.Start}
	}
	decl.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return decl
}

// parseParams reads a parenthesized parameter list into fn. It returns false
// when an entry is not a parameter declaration.
func (p *Parser) parseParams(fn *ast.FuncDecl) bool {
	lp := p.next()
	fn.Lparen = lp.Start
	for {
		if _, ok := p.eat(token.RParen); ok {
			fn.Closed = true
			return true
		}
		if p.atEOF() {
			return true
		}
		pstart := p.peek().Start
		t := p.parseType()
		if t == nil {
			return false
		}
		prm := ast.Param{Type: t}
		if t.Open {
			prm.Pos = ast.Pos{Start: pstart, End: p.lastEnd()}
			fn.Params = append(fn.Params, prm)
			return true
		}
		if name := p.peek(); name.IsName() {
			p.next()
			prm.Name = name.Text
			prm.NamePos = name.Start
		}
		if _, ok := p.eat(token.Assign); ok {
			dstart := p.peek().Start
			prm.Default = p.parseTernary()
			prm.DefaultText = strings.TrimSpace(p.text(dstart, p.lastEnd()))
		}
		prm.Pos = ast.Pos{Start: pstart, End: p.lastEnd()}
		fn.Params = append(fn.Params, prm)
		if _, ok := p.eat(token.Comma); ok {
			continue
		}
		if !p.at(token.RParen) && !p.atEOF() {
			return false
		}
	}
}

func (p *Parser) parseFuncQualifiers(fn *ast.FuncDecl) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.KwConst:
			fn.Flags |= ast.FuncConst
		case tok.Kind == token.KwOverride:
			fn.Flags |= ast.FuncOverride
		case tok.Kind == token.KwProperty:
			fn.Flags |= ast.FuncProperty
		case tok.Kind == token.KwFinal:
			fn.Flags |= ast.FuncFinal
		case tok.Kind == token.Ident && funcQualifierIdents[tok.Text]:
		default:
			return
		}
		p.next()
	}
}

func (p *Parser) parseImport() ast.Stmt {
	kw := p.next()
	imp := &ast.Import{}
	var parts []string
	for {
		tok := p.peek()
		if !tok.IsName() {
			break
		}
		if imp.PathPos == 0 {
			imp.PathPos = tok.Start
		}
		p.next()
		parts = append(parts, tok.Text)
		if _, ok := p.eat(token.Dot); !ok {
			break
		}
		if !p.peek().IsName() {
			parts = append(parts, "")
		}
	}
	imp.Path = strings.Join(parts, ".")
	if imp.PathPos == 0 {
		imp.PathPos = kw.End
	}
	imp.Pos = ast.Pos{Start: kw.Start, End: p.lastEnd()}
	return imp
}

func (p *Parser) parseDelegate() ast.Stmt {
	kw := p.next()
	d := &ast.DelegateDecl{Event: kw.Kind == token.KwEvent}
	ret := p.parseType()
	if ret != nil {
		fn := &ast.FuncDecl{Return: ret}
		if name := p.peek(); name.IsName() {
			p.next()
			fn.Name = name.Text
			fn.NamePos = name.Start
			if p.at(token.LParen) && !p.parseParams(fn) {
				return nil
			}
		}
		fn.Pos = ast.Pos{Start: ret.Start, End: p.lastEnd()}
		d.Sig = fn
	}
	d.Pos = ast.Pos{Start: kw.Start, End: p.lastEnd()}
	return d
}

// parseControlStatement reads a control header followed by an optional
// brace-less body such as "if (x) return;".
func (p *Parser) parseControlStatement() ast.Stmt {
	st := p.parseControl()
	if p.atEOF() || p.at(token.LBrace) || p.at(token.Semicolon) {
		return st
	}
	body := p.parseStatement()
	if body == nil {
		return st
	}
	switch st := st.(type) {
	case *ast.Control:
		st.Body = body
		st.End = p.lastEnd()
	case *ast.ForEach:
		return &ast.Control{
			Pos:     ast.Pos{Start: st.Start, End: p.lastEnd()},
			Keyword: token.KwFor,
			Init:    st,
			Body:    body,
		}
	}
	return st
}
