package lexer

import (
	"asls/internal/token"
)

// scanString handles "..." with an optional n/f prefix and """...""" blocks.
// An unterminated single-line string stops at the end of the line.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	if b := lx.cursor.Peek(); b == 'n' || b == 'f' {
		lx.cursor.Off++
	}
	if lx.cursor.HasPrefix(`"""`) {
		lx.cursor.Off += 3
		for !lx.cursor.EOF() {
			if lx.cursor.HasPrefix(`"""`) {
				lx.cursor.Off += 3
				return lx.emit(token.StringLit, start)
			}
			lx.cursor.Off++
		}
		lx.report("UnterminatedString", start, lx.cursor.Off, "unterminated string block")
		return lx.emit(token.StringLit, start)
	}
	lx.cursor.Off++
	if !lx.scanQuoted('"') {
		lx.report("UnterminatedString", start, lx.cursor.Off, "unterminated string literal")
	}
	return lx.emit(token.StringLit, start)
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Off
	lx.cursor.Off++
	if !lx.scanQuoted('\'') {
		lx.report("UnterminatedChar", start, lx.cursor.Off, "unterminated character literal")
	}
	return lx.emit(token.CharLit, start)
}

// scanQuoted consumes up to and including the closing quote.
func (lx *Lexer) scanQuoted(quote byte) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\\':
			lx.cursor.Off++
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Off++
			}
		case '\n':
			return false
		case quote:
			lx.cursor.Off++
			return true
		default:
			lx.cursor.Off++
		}
	}
	return false
}
