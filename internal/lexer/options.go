package lexer

import (
	"asls/internal/source"
)

// Reporter receives lexical problems. The lexer never stops on them.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Options configures a Lexer.
type Options struct {
	// Module is stamped on reported spans.
	Module source.ModuleID
	// Base is added to every offset so tokens carry module-absolute positions
	// when only a slice of the module is lexed.
	Base uint32
	// Reporter may be nil.
	Reporter Reporter
	// KeepComments makes Next return comment tokens as token.Invalid with
	// the comment text; used by documentation extraction.
	KeepComments bool
}

func (lx *Lexer) report(kind string, start, end int, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(kind, source.Span{
		Module: lx.opts.Module,
		Start:  lx.abs(start),
		End:    lx.abs(end),
	}, msg)
}
