package lexer

import (
	"asls/internal/token"
)

// Lexer produces significant tokens from a piece of module text. It never
// fails: unknown bytes become token.Invalid and unterminated literals end at
// the line or input end.
type Lexer struct {
	cursor  Cursor
	opts    Options
	look    *token.Token
	newline bool
}

// New creates a lexer over src.
func New(src string, opts Options) *Lexer {
	return &Lexer{
		cursor: Cursor{Src: src},
		opts:   opts,
	}
}

// Next returns the next significant token. After the input is exhausted it
// always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.opts.KeepComments {
		if tok, ok := lx.skipTriviaKeepComment(); ok {
			return tok
		}
	} else {
		lx.skipTrivia()
	}

	if lx.cursor.EOF() {
		off := lx.abs(lx.cursor.Off)
		return token.Token{Kind: token.EOF, Start: off, End: off, NewlineBefore: lx.takeNewline()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case (ch == 'n' || ch == 'f') && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanString()
	case isIdentStartByte(ch) || ch >= 0x80:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.NewlineBefore = lx.takeNewline()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	tok := lx.Next()
	lx.look = &tok
	return tok
}

func (lx *Lexer) takeNewline() bool {
	nl := lx.newline
	lx.newline = false
	return nl
}

func (lx *Lexer) emit(kind token.Kind, start int) token.Token {
	return token.Token{
		Kind:  kind,
		Start: lx.abs(start),
		End:   lx.abs(lx.cursor.Off),
		Text:  lx.cursor.Src[start:lx.cursor.Off],
	}
}

// Tokenize lexes the whole text and returns every significant token followed
// by a single EOF token. Offsets are shifted by base.
func Tokenize(src string, base uint32) []token.Token {
	lx := New(src, Options{Base: base})
	out := make([]token.Token, 0, len(src)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
