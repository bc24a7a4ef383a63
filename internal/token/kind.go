package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the lexed input.
	EOF

	Ident
	IntLit
	FloatLit
	StringLit // "text", n"Name", f"format"
	CharLit   // 'c'

	// keywords
	KwClass
	KwStruct
	KwEnum
	KwNamespace
	KwDelegate
	KwEvent
	KwImport
	KwReturn
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwConst
	KwPrivate
	KwProtected
	KwPublic
	KwThis
	KwSuper
	KwNullptr
	KwTrue
	KwFalse
	KwOverride
	KwProperty
	KwFinal
	KwMixin
	KwAuto
	KwStatic
	KwAccess
	KwFallthrough
	KwIn
	KwOut
	KwInOut

	// punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Dot
	Question
	At

	// operators
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	Plus
	Minus
	Star
	Slash
	Percent
	PlusPlus
	MinusMinus
	EqEq
	BangEq
	Lt
	LtEq
	Gt // ">>" is lexed as two Gt tokens so nested generics close cleanly
	GtEq
	Shl
	Amp
	Pipe
	Caret
	Tilde
	Bang
	AndAnd
	OrOr
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "eof",
	Ident:         "ident",
	IntLit:        "int",
	FloatLit:      "float",
	StringLit:     "string",
	CharLit:       "char",
	KwClass:       "class",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwNamespace:   "namespace",
	KwDelegate:    "delegate",
	KwEvent:       "event",
	KwImport:      "import",
	KwReturn:      "return",
	KwIf:          "if",
	KwElse:        "else",
	KwFor:         "for",
	KwWhile:       "while",
	KwDo:          "do",
	KwSwitch:      "switch",
	KwCase:        "case",
	KwDefault:     "default",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwConst:       "const",
	KwPrivate:     "private",
	KwProtected:   "protected",
	KwPublic:      "public",
	KwThis:        "this",
	KwSuper:       "Super",
	KwNullptr:     "nullptr",
	KwTrue:        "true",
	KwFalse:       "false",
	KwOverride:    "override",
	KwProperty:    "property",
	KwFinal:       "final",
	KwMixin:       "mixin",
	KwAuto:        "auto",
	KwStatic:      "static",
	KwAccess:      "access",
	KwFallthrough: "fallthrough",
	KwIn:          "in",
	KwOut:         "out",
	KwInOut:       "inout",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semicolon:     ";",
	Colon:         ":",
	ColonColon:    "::",
	Dot:           ".",
	Question:      "?",
	At:            "@",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	PlusPlus:      "++",
	MinusMinus:    "--",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Bang:          "!",
	AndAnd:        "&&",
	OrOr:          "||",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwClass && k <= KwInOut
}

// IsAssign reports whether k is "=" or a compound assignment.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= ShrAssign
}

// IsComparison reports whether k compares two operands.
func (k Kind) IsComparison() bool {
	switch k {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsBinaryOp reports whether k can join two expressions.
func (k Kind) IsBinaryOp() bool {
	switch k {
	case Plus, Minus, Star, Slash, Percent, EqEq, BangEq, Lt, LtEq, Gt, GtEq,
		Shl, Amp, Pipe, Caret, AndAnd, OrOr:
		return true
	default:
		return false
	}
}
