package diag

import "asls/internal/source"

// Reporter receives diagnostics from producers.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// LexerAdapter lets the lexer report into a diag.Reporter.
type LexerAdapter struct {
	Next Reporter
}

func (a LexerAdapter) Report(kind string, span source.Span, msg string) {
	if a.Next == nil {
		return
	}
	a.Next.Report(New(SevWarning, LexCode(kind), span, msg))
}
