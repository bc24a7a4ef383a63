package token

var keywords = map[string]Kind{
	"class":       KwClass,
	"struct":      KwStruct,
	"enum":        KwEnum,
	"namespace":   KwNamespace,
	"delegate":    KwDelegate,
	"event":       KwEvent,
	"import":      KwImport,
	"return":      KwReturn,
	"if":          KwIf,
	"else":        KwElse,
	"for":         KwFor,
	"while":       KwWhile,
	"do":          KwDo,
	"switch":      KwSwitch,
	"case":        KwCase,
	"default":     KwDefault,
	"break":       KwBreak,
	"continue":    KwContinue,
	"const":       KwConst,
	"private":     KwPrivate,
	"protected":   KwProtected,
	"public":      KwPublic,
	"this":        KwThis,
	"Super":       KwSuper,
	"nullptr":     KwNullptr,
	"true":        KwTrue,
	"false":       KwFalse,
	"override":    KwOverride,
	"property":    KwProperty,
	"final":       KwFinal,
	"mixin":       KwMixin,
	"auto":        KwAuto,
	"static":      KwStatic,
	"access":      KwAccess,
	"fallthrough": KwFallthrough,
	"in":          KwIn,
	"out":         KwOut,
	"inout":       KwInOut,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every reserved word.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}
