package lexer

import (
	"asls/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		lx.report("UnknownChar", start, lx.cursor.Off, "unexpected character")
		return lx.emit(token.Invalid, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < 0x80 {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Off++
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	tok := lx.emit(token.Ident, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}
