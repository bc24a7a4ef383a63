package lexer

import (
	"asls/internal/token"
)

// scanNumber accepts decimal, hex and binary integers and floats with an
// optional exponent and trailing f suffix.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Off += 2
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '\'' {
				lx.cursor.Off++
			}
			return lx.emit(kind, start)
		case 'b', 'B':
			lx.cursor.Off += 2
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '\''; b = lx.cursor.Peek() {
				lx.cursor.Off++
			}
			return lx.emit(kind, start)
		}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Off++
	}
	if lx.cursor.Peek() == '.' && lx.fractionFollows() {
		kind = token.FloatLit
		lx.cursor.Off++
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Off++
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Off += 2
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Off++
			}
		}
	}
	if b := lx.cursor.Peek(); b == 'f' || b == 'F' {
		kind = token.FloatLit
		lx.cursor.Off++
	}
	return lx.emit(kind, start)
}

// fractionFollows reports whether the '.' at the cursor belongs to the number:
// "1.5" and "5.f" do, "Value.Length" does not.
func (lx *Lexer) fractionFollows() bool {
	next := lx.cursor.PeekAt(1)
	if !isIdentStartByte(next) {
		return true
	}
	return (next == 'f' || next == 'F') && !isIdentContinueByte(lx.cursor.PeekAt(2))
}
