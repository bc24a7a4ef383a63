package lexer

import (
	"asls/internal/token"
)

// skipTrivia consumes whitespace, comments and preprocessor lines.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		if !lx.skipSpace() && !lx.skipComment() && !lx.skipPreprocessor() {
			return
		}
	}
}

// skipTriviaKeepComment behaves like skipTrivia but stops on a comment and
// returns it as a token.
func (lx *Lexer) skipTriviaKeepComment() (token.Token, bool) {
	for !lx.cursor.EOF() {
		start := lx.cursor.Off
		if lx.skipComment() {
			tok := lx.emit(token.Invalid, start)
			tok.NewlineBefore = lx.takeNewline()
			return tok, true
		}
		if !lx.skipSpace() && !lx.skipPreprocessor() {
			break
		}
	}
	return token.Token{}, false
}

func (lx *Lexer) skipSpace() bool {
	moved := false
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			lx.newline = true
		case ' ', '\t', '\r', '\f', '\v':
		default:
			return moved
		}
		lx.cursor.Off++
		moved = true
	}
	return moved
}

func (lx *Lexer) skipComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Off++
		}
		return true
	case '*':
		start := lx.cursor.Off
		lx.cursor.Off += 2
		for !lx.cursor.EOF() {
			if lx.cursor.HasPrefix("*/") {
				lx.cursor.Off += 2
				return true
			}
			if lx.cursor.Peek() == '\n' {
				lx.newline = true
			}
			lx.cursor.Off++
		}
		lx.report("UnterminatedComment", start, lx.cursor.Off, "unterminated block comment")
		return true
	}
	return false
}

// skipPreprocessor consumes a line whose first non-blank byte is '#'.
func (lx *Lexer) skipPreprocessor() bool {
	if lx.cursor.Peek() != '#' || !atLineStart(lx.cursor.Src, lx.cursor.Off) {
		return false
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Off++
	}
	return true
}

func atLineStart(src string, off int) bool {
	for i := off - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}
