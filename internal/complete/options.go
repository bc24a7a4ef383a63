package complete

import (
	"strings"

	"asls/internal/trace"
	"asls/internal/typedb"
)

// DocFormatter turns raw documentation into display text. m is the
// documented method, nil for other symbols.
type DocFormatter func(doc string, m *typedb.Method) string

// TrimDoc is the default DocFormatter.
func TrimDoc(doc string, _ *typedb.Method) string {
	return strings.TrimSpace(doc)
}

// Options tune the resolver.
type Options struct {
	// MaxItems caps completion lists; 0 keeps every item.
	MaxItems int
	// Preselect marks the uniquely best item.
	Preselect bool
	// UnifiedCallSyntax offers free functions as members of the type of
	// their first parameter. Mixin functions are offered regardless.
	UnifiedCallSyntax bool
	// Keywords adds context keywords to scope completions.
	Keywords bool
	Docs     DocFormatter
	Tracer   trace.Tracer
}

// DefaultOptions enables every completion source.
func DefaultOptions() Options {
	return Options{
		Preselect:         true,
		UnifiedCallSyntax: true,
		Keywords:          true,
		Docs:              TrimDoc,
		Tracer:            trace.Nop,
	}
}

func (o Options) withDefaults() Options {
	if o.Docs == nil {
		o.Docs = TrimDoc
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}
