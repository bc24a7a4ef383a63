package diag

import "asls/internal/source"

type dedupKey struct {
	code   Code
	sev    Severity
	module source.ModuleID
	start  uint32
	end    uint32
	msg    string
}

// DedupReporter suppresses diagnostics repeating code, severity, span and
// message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKey{
		code:   d.Code,
		sev:    d.Severity,
		module: d.Primary.Module,
		start:  d.Primary.Start,
		end:    d.Primary.End,
		msg:    d.Message,
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
