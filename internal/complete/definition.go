package complete

import (
	"fmt"

	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// Definition returns the declarations of the identifier touching offset.
// Overloads yield one span each, the best match first. Host symbols have
// no declaration and are skipped.
func (r *Resolver) Definition(module source.ModuleID, offset uint32) []source.Span {
	span := r.span("definition", module, offset)
	var out []source.Span
	r.ws.Read(func(v workspace.View) {
		_, t := r.targetAt(v, module, offset)
		if t == nil {
			return
		}
		add := func(s source.Span) {
			if s.Module != source.NoModule && !s.Empty() {
				out = append(out, s)
			}
		}
		if len(t.syms) == 0 {
			add(t.decl())
			return
		}
		for _, sym := range t.syms {
			switch s := sym.(type) {
			case *typedb.Method:
				add(s.Decl)
			case *typedb.Property:
				add(s.Decl)
			}
		}
	})
	span.End(fmt.Sprintf("%d declarations", len(out)))
	return out
}
