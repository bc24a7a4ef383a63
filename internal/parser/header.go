package parser

import (
	"asls/internal/ast"
	"asls/internal/token"
)

func (p *Parser) parseHeader() ast.Stmt {
	start := p.peek().Start
	switch p.peek().Kind {
	case token.KwIf, token.KwWhile, token.KwSwitch, token.KwFor, token.KwElse, token.KwDo:
		return p.parseControl()
	case token.KwNamespace:
		return p.parseClassHeader(nil)
	}

	specs := p.parseSpecifiers()
	access, flags := p.parseModifiers()
	switch p.peek().Kind {
	case token.KwClass, token.KwStruct:
		return p.parseClassHeader(specs)
	}

	if fn := p.tryFunctionHeader(start, specs, access, flags); fn != nil {
		return fn
	}
	if ctor := p.tryConstructorHeader(start, specs, access); ctor != nil {
		return ctor
	}
	if p.at(token.KwEnum) {
		return p.parseEnumHeader(specs)
	}
	return nil
}

func (p *Parser) tryFunctionHeader(start uint32, specs []ast.Specifier, access ast.Access, flags ast.FuncFlags) ast.Stmt {
	m := p.mark()
	ret := p.parseType()
	name := p.peek()
	if ret == nil || ret.Open || !name.IsName() || p.peekN(1).Kind != token.LParen {
		p.reset(m)
		return nil
	}
	p.next()
	fn := &ast.FuncDecl{
		Return:     ret,
		Name:       name.Text,
		NamePos:    name.Start,
		Access:     access,
		Flags:      flags,
		Specifiers: specs,
	}
	if !p.parseParams(fn) {
		p.reset(m)
		return nil
	}
	p.parseFuncQualifiers(fn)
	fn.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return fn
}

func (p *Parser) tryConstructorHeader(start uint32, specs []ast.Specifier, access ast.Access) ast.Stmt {
	m := p.mark()
	p.eat(token.Tilde)
	name := p.peek()
	if p.enclosing == "" || name.Kind != token.Ident || name.Text != p.enclosing || p.peekN(1).Kind != token.LParen {
		p.reset(m)
		return nil
	}
	p.next()
	fn := &ast.FuncDecl{Name: name.Text, NamePos: name.Start, Access: access, Specifiers: specs}
	if !p.parseParams(fn) {
		p.reset(m)
		return nil
	}
	p.parseFuncQualifiers(fn)
	fn.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return fn
}

func (p *Parser) parseClassHeader(specs []ast.Specifier) ast.Stmt {
	kw := p.next()
	cd := &ast.ClassDecl{Specifiers: specs}
	switch kw.Kind {
	case token.KwStruct:
		cd.Kind = ast.ClassStruct
	case token.KwNamespace:
		cd.Kind = ast.ClassNamespace
	}
	if name := p.peek(); name.IsName() {
		p.next()
		cd.Name = name.Text
		cd.NamePos = name.Start
		for cd.Kind == ast.ClassNamespace && p.at(token.ColonColon) && p.peekN(1).IsName() {
			p.next()
			nx := p.next()
			cd.Name += "::" + nx.Text
		}
	}
	// trailing modifiers such as "final" or "abstract"
	for p.at(token.KwFinal) || (p.at(token.Ident) && p.peek().Text == "abstract") {
		p.next()
	}
	if colon, ok := p.eat(token.Colon); ok {
		p.eat(token.KwPublic)
		if t := p.parseType(); t != nil {
			cd.Super = t.TypeName()
			cd.SuperPos = t.Start
		} else {
			cd.ExpectSuper = true
			cd.SuperPos = colon.End
		}
	}
	cd.Pos = ast.Pos{Start: kw.Start, End: p.lastEnd()}
	if len(specs) > 0 {
		cd.Start = specs[0].Start
	}
	return cd
}

func (p *Parser) parseEnumHeader(specs []ast.Specifier) ast.Stmt {
	kw := p.next()
	ed := &ast.EnumDecl{Specifiers: specs}
	p.eat(token.KwClass)
	if name := p.peek(); name.IsName() {
		p.next()
		ed.Name = name.Text
		ed.NamePos = name.Start
	}
	if _, ok := p.eat(token.Colon); ok {
		p.parseType()
	}
	ed.Pos = ast.Pos{Start: kw.Start, End: p.lastEnd()}
	if len(specs) > 0 {
		ed.Start = specs[0].Start
	}
	return ed
}

// parseControl reads if/while/switch/for/else/do headers. A for-each header
// yields *ast.ForEach.
func (p *Parser) parseControl() ast.Stmt {
	kw := p.next()
	ctl := &ast.Control{Keyword: kw.Kind}
	switch kw.Kind {
	case token.KwDo:
	case token.KwElse:
		if p.at(token.KwIf) {
			ctl.Init = p.parseControl()
		}
	case token.KwFor:
		if _, ok := p.eat(token.LParen); !ok {
			break
		}
		if fe := p.tryForEach(kw.Start); fe != nil {
			return fe
		}
		ctl.Init = p.parseStatement()
		p.eat(token.Semicolon)
		ctl.Cond = p.parseExpr()
		p.eat(token.Semicolon)
		p.parseExpr()
		p.eat(token.RParen)
	default:
		if _, ok := p.eat(token.LParen); ok {
			ctl.Cond = p.parseExpr()
			p.eat(token.RParen)
		}
	}
	ctl.Pos = ast.Pos{Start: kw.Start, End: p.lastEnd()}
	return ctl
}

func (p *Parser) tryForEach(start uint32) ast.Stmt {
	m := p.mark()
	t := p.parseType()
	name := p.peek()
	if t == nil || t.Open || !name.IsName() || p.peekN(1).Kind != token.Colon {
		p.reset(m)
		return nil
	}
	p.next()
	p.next()
	fe := &ast.ForEach{Type: t, Name: name.Text, NamePos: name.Start}
	fe.Range = p.parseExpr()
	p.eat(token.RParen)
	fe.Pos = ast.Pos{Start: start, End: p.lastEnd()}
	return fe
}
