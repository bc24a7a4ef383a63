package complete

// Keywords offered by scope completion, by the innermost context that
// allows them.
var (
	globalKeywords = []string{
		"class", "struct", "enum", "namespace", "delegate", "event", "import",
		"const", "mixin", "auto", "void", "UCLASS", "USTRUCT", "UENUM",
	}
	typeKeywords = []string{
		"private", "protected", "public", "access", "override", "property",
		"final", "static", "default", "const", "auto", "void", "delegate",
		"event", "UPROPERTY", "UFUNCTION",
	}
	functionKeywords = []string{
		"return", "if", "else", "for", "while", "do", "switch", "const",
		"auto", "nullptr", "true", "false", "Cast",
	}
	memberKeywords = []string{"this", "Super"}
	loopKeywords   = []string{"break", "continue"}
	switchKeywords = []string{"case", "default", "break", "fallthrough"}
)

func (c *collector) keywords() {
	ctx := c.r.ctx
	var sets [][]string
	switch {
	case ctx.InFunction:
		sets = append(sets, functionKeywords)
		if ctx.Using != "" {
			sets = append(sets, memberKeywords)
		}
		if ctx.InLoop {
			sets = append(sets, loopKeywords)
		}
		if ctx.InSwitch {
			sets = append(sets, switchKeywords)
		}
	case ctx.Using != "":
		sets = append(sets, typeKeywords)
	default:
		sets = append(sets, globalKeywords)
	}
	for _, set := range sets {
		for _, kw := range set {
			c.keyword(kw)
		}
	}
}
