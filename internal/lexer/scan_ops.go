package lexer

import (
	"asls/internal/token"
)

// Longest match first. ">>" is never produced: two adjacent Gt tokens are
// joined by the parser when a shift is meant.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off

	switch {
	case lx.try3('<', '<', '='):
		return lx.emit(token.ShlAssign, start)
	case lx.try3('>', '>', '='):
		return lx.emit(token.ShrAssign, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.emit(token.Shl, start)
	case lx.try2('+', '+'):
		return lx.emit(token.PlusPlus, start)
	case lx.try2('-', '-'):
		return lx.emit(token.MinusMinus, start)
	case lx.try2('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.emit(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.emit(token.SlashAssign, start)
	case lx.try2('%', '='):
		return lx.emit(token.PercentAssign, start)
	case lx.try2('&', '='):
		return lx.emit(token.AmpAssign, start)
	case lx.try2('|', '='):
		return lx.emit(token.PipeAssign, start)
	case lx.try2('^', '='):
		return lx.emit(token.CaretAssign, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '%':
		return lx.emit(token.Percent, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '!':
		return lx.emit(token.Bang, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '&':
		return lx.emit(token.Amp, start)
	case '|':
		return lx.emit(token.Pipe, start)
	case '^':
		return lx.emit(token.Caret, start)
	case '~':
		return lx.emit(token.Tilde, start)
	case '?':
		return lx.emit(token.Question, start)
	case ':':
		return lx.emit(token.Colon, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case '@':
		return lx.emit(token.At, start)
	default:
		lx.report("UnknownChar", start, lx.cursor.Off, "unknown character")
		return lx.emit(token.Invalid, start)
	}
}
