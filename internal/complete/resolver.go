package complete

import (
	"strings"

	"asls/internal/parser"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/trace"
	"asls/internal/workspace"
)

// Resolver serves editor requests for one workspace.
type Resolver struct {
	ws   *workspace.Workspace
	opts Options
}

// New creates a resolver over ws.
func New(ws *workspace.Workspace, opts Options) *Resolver {
	return &Resolver{ws: ws, opts: opts.withDefaults()}
}

// Resolve reconstructs the context at offset in module. It returns nil for
// an unknown module or an offset past its end.
func (r *Resolver) Resolve(module source.ModuleID, offset uint32) *Context {
	var out *Context
	r.ws.Read(func(v workspace.View) {
		if res := r.resolve(v, module, offset); res != nil {
			out = res.ctx
		}
	})
	return out
}

func (r *Resolver) span(name string, module source.ModuleID, offset uint32) *trace.Span {
	span := trace.Begin(r.opts.Tracer, trace.ScopeRequest, name, 0).At(offset)
	if f := r.ws.Files().Get(module); f != nil {
		span.Module(f.Name, f.Generation)
	}
	return span
}

func (r *Resolver) resolve(v workspace.View, module source.ModuleID, off uint32) *resolution {
	mod := v.Module(module)
	if mod == nil || mod.Tree == nil || int(off) > len(mod.Text) {
		return nil
	}
	res := &resolution{
		v:    v,
		db:   v.DB(),
		mod:  mod,
		tree: mod.Tree,
		text: mod.Text,
		off:  off,
		opts: &r.opts,
	}
	res.ctx = &Context{Module: module, Offset: off, Scope: mod.Tree.ScopeAt(off)}
	res.fillEnclosing()
	res.run()
	return res
}

func (r *resolution) run() {
	c := r.ctx
	if r.tree.Ignore.CursorInside(r.off) {
		return
	}
	c.PrefixStart = wordStart(r.text, r.off)
	c.Prefix = r.text[c.PrefixStart:r.off]

	s := r.scopeAt()
	lower := s.Start
	if s.Kind == scope.KindGlobal {
		lower = 0
	}
	stmt := statementStart(r.text, r.tree.Ignore, lower, c.PrefixStart)
	c.StatementStart = stmt
	if r.specifier(stmt) {
		return
	}
	if strings.TrimSpace(r.text[stmt:r.off]) == "" {
		c.Kind = KindScope
		return
	}
	for _, sp := range splitPoints(r.text, r.tree.Ignore, stmt, c.PrefixStart) {
		cand := r.text[sp:r.off]
		if strings.TrimSpace(cand) == "" {
			continue
		}
		if st, ok := parser.ParseStatement(cand, sp); ok {
			c.Candidate, c.Node = cand, st
			r.statement(st)
			return
		}
		if x, ok := parser.ParseExpression(cand, sp); ok {
			c.Candidate, c.Node = cand, x
			r.expr(x)
			return
		}
	}
}

// specifier detects a cursor inside a macro argument list such as
// "UPROPERTY(EditAnywhere, ".
func (r *resolution) specifier(stmt uint32) bool {
	c := r.ctx
	lp, ok := openParen(r.text, r.tree.Ignore, stmt, c.PrefixStart)
	if !ok {
		return false
	}
	macro, _ := identBefore(r.text, lp)
	if _, known := specifiers[macro]; !known {
		return false
	}
	args := r.text[lp+1 : c.PrefixStart]
	if strings.ContainsAny(args, "()") {
		// nested Meta(...) lists and values are not completed
		return true
	}
	parts := strings.Split(args, ",")
	if strings.Contains(parts[len(parts)-1], "=") {
		return true
	}
	c.Kind = KindSpecifier
	c.Macro = macro
	for _, p := range parts[:len(parts)-1] {
		name, _, _ := strings.Cut(p, "=")
		if name = strings.TrimSpace(name); name != "" {
			c.MacroArgs = append(c.MacroArgs, name)
		}
	}
	return true
}
