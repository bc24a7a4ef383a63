package token

// Token represents a single source token with its absolute location.
type Token struct {
	Kind  Kind
	Start uint32
	End   uint32
	Text  string
	// NewlineBefore is set when a line break separates this token from the
	// previous significant one.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, boolean, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse, KwNullptr:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsName reports whether the token can be used where a name is expected.
// Contextual keywords such as "property" or "access" double as identifiers.
func (t Token) IsName() bool {
	switch t.Kind {
	case Ident, KwProperty, KwAccess, KwMixin, KwFinal, KwOverride, KwIn, KwOut, KwInOut, KwEvent:
		return true
	default:
		return false
	}
}
