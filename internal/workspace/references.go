package workspace

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"asls/internal/lexer"
	"asls/internal/source"
	"asls/internal/token"
	"asls/internal/trace"
)

// Occurrence is one identifier that refers to the searched symbol.
type Occurrence struct {
	Span source.Span
	// Declaration marks the declaring occurrence.
	Declaration bool
}

// Matcher decides whether the identifier at off in mod refers to the
// searched symbol. It runs under the read lock.
type Matcher func(v View, mod *Module, off uint32) (match, declaration bool)

// ReferenceTask scans the workspace one module per Step. Edits to the
// origin module make the task stale; edits to a module that was already
// scanned re-queue it and drop its earlier results.
type ReferenceTask struct {
	w         *Workspace
	name      string
	origin    source.ModuleID
	originGen uint64
	match     Matcher

	queue   []source.ModuleID
	scanned map[source.ModuleID]uint64
	results map[source.ModuleID][]Occurrence
	stale   bool
}

// FindReferences starts a task looking for identifiers spelled name that
// match accepts. origin is the module the request was made in.
func (w *Workspace) FindReferences(origin source.ModuleID, name string, match Matcher) (*ReferenceTask, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	mod := w.modules[origin]
	if mod == nil {
		return nil, fmt.Errorf("find references: %w", ErrUnknownModule)
	}
	t := &ReferenceTask{
		w:         w,
		name:      name,
		origin:    origin,
		originGen: mod.Generation,
		match:     match,
		scanned:   make(map[source.ModuleID]uint64),
		results:   make(map[source.ModuleID][]Occurrence),
	}
	// the origin first, then the rest in id order
	t.queue = append(t.queue, origin)
	for _, m := range (View{w: w}).Modules() {
		if m.ID != origin {
			t.queue = append(t.queue, m.ID)
		}
	}
	return t, nil
}

// Done reports whether every module was scanned or the task went stale.
// Modules installed or edited since they were scanned count as unscanned.
func (t *ReferenceTask) Done() bool {
	if t.stale {
		return true
	}
	t.w.mu.RLock()
	defer t.w.mu.RUnlock()
	t.refresh(View{w: t.w})
	return len(t.queue) == 0
}

// Stale reports whether the origin module changed since the task started.
func (t *ReferenceTask) Stale() bool {
	return t.stale
}

// Remaining reports how many modules are still queued.
func (t *ReferenceTask) Remaining() int {
	return len(t.queue)
}

// Step scans the next queued module. It returns ErrStaleRequest once the
// origin module changed.
func (t *ReferenceTask) Step() error {
	if t.stale {
		return ErrStaleRequest
	}
	t.w.mu.RLock()
	defer t.w.mu.RUnlock()
	v := View{w: t.w}

	origin := v.Module(t.origin)
	if origin == nil || origin.Generation != t.originGen {
		t.stale = true
		t.results = nil
		return ErrStaleRequest
	}
	t.refresh(v)
	if len(t.queue) == 0 {
		return nil
	}

	id := t.queue[0]
	t.queue = t.queue[1:]
	mod := v.Module(id)
	if mod == nil {
		return nil
	}
	span := trace.Begin(t.w.tracer, trace.ScopeModule, "references.step", 0).
		Module(mod.Name, mod.Generation).
		Count("queued", len(t.queue))
	var found []Occurrence
	for _, tok := range lexer.Tokenize(mod.Text, 0) {
		if tok.Kind != token.Ident || tok.Text != t.name {
			continue
		}
		ok, decl := t.match(v, mod, tok.Start)
		if !ok {
			continue
		}
		found = append(found, Occurrence{
			Span:        source.Span{Module: id, Start: tok.Start, End: tok.End},
			Declaration: decl,
		})
	}
	t.results[id] = found
	t.scanned[id] = mod.Generation
	span.End(fmt.Sprintf("%d found", len(found)))
	return nil
}

// refresh re-queues scanned modules that changed or left and queues
// modules installed after the task started.
func (t *ReferenceTask) refresh(v View) {
	for id, gen := range t.scanned {
		mod := v.Module(id)
		if mod == nil {
			delete(t.scanned, id)
			delete(t.results, id)
			continue
		}
		if mod.Generation != gen {
			delete(t.scanned, id)
			delete(t.results, id)
			t.queue = append(t.queue, id)
		}
	}
	for _, m := range v.Modules() {
		if _, done := t.scanned[m.ID]; done || slices.Contains(t.queue, m.ID) {
			continue
		}
		t.queue = append(t.queue, m.ID)
	}
}

// Run steps until the task is done or ctx is canceled.
func (t *ReferenceTask) Run(ctx context.Context) ([]Occurrence, error) {
	for !t.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := t.Step(); err != nil {
			return nil, err
		}
	}
	return t.Results()
}

// Results returns the occurrences found so far ordered by module and
// offset, or ErrStaleRequest.
func (t *ReferenceTask) Results() ([]Occurrence, error) {
	if t.stale {
		return nil, ErrStaleRequest
	}
	var out []Occurrence
	for _, occ := range t.results {
		out = append(out, occ...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Span.Module != out[j].Span.Module {
			return out[i].Span.Module < out[j].Span.Module
		}
		return out[i].Span.Start < out[j].Span.Start
	})
	return out, nil
}

// Edit replaces Span with NewText.
type Edit struct {
	Span    source.Span
	NewText string
}

// RenameTask is a reference task whose occurrences become edits.
type RenameTask struct {
	*ReferenceTask
	NewName string
}

// Rename starts a reference search whose results rename the symbol to
// newName.
func (w *Workspace) Rename(origin source.ModuleID, name, newName string, match Matcher) (*RenameTask, error) {
	if !lexer.IsIdentifier(newName) {
		return nil, fmt.Errorf("rename to %q: %w", newName, ErrInvalidName)
	}
	if _, kw := token.LookupKeyword(newName); kw {
		return nil, fmt.Errorf("rename to keyword %q: %w", newName, ErrInvalidName)
	}
	task, err := w.FindReferences(origin, name, match)
	if err != nil {
		return nil, err
	}
	return &RenameTask{ReferenceTask: task, NewName: newName}, nil
}

// Edits converts the results into text edits.
func (t *RenameTask) Edits() ([]Edit, error) {
	occ, err := t.Results()
	if err != nil {
		return nil, err
	}
	edits := make([]Edit, 0, len(occ))
	for _, o := range occ {
		edits = append(edits, Edit{Span: o.Span, NewText: t.NewName})
	}
	return edits, nil
}
