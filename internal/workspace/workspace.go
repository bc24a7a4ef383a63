package workspace

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"sync"

	"asls/internal/diag"
	"asls/internal/observ"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/trace"
	"asls/internal/typedb"
)

// Workspace holds the installed modules and the type database. Queries run
// under the read lock; installing a module takes the write lock for the
// removal of its old contribution and the registration of the new one.
type Workspace struct {
	mu      sync.RWMutex
	files   *source.FileSet
	db      *typedb.DB
	modules map[source.ModuleID]*Module

	tracer   trace.Tracer
	timer    *observ.Timer
	jobs     int
	progress func(Progress)
}

// Progress reports LoadFiles advancement.
type Progress struct {
	Phase string // "parse" or "register"
	Done  int
	Total int
	Path  string
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithTracer emits spans for loads, updates and reference tasks.
func WithTracer(t trace.Tracer) Option {
	return func(w *Workspace) { w.tracer = t }
}

// WithTimer records LoadFiles phases.
func WithTimer(t *observ.Timer) Option {
	return func(w *Workspace) { w.timer = t }
}

// WithJobs bounds parallel parsing; values <= 0 use GOMAXPROCS.
func WithJobs(n int) Option {
	return func(w *Workspace) { w.jobs = n }
}

// WithProgress receives LoadFiles progress from the calling goroutine and
// from parse workers.
func WithProgress(fn func(Progress)) Option {
	return func(w *Workspace) { w.progress = fn }
}

// New creates a workspace over files registering into db.
func New(files *source.FileSet, db *typedb.DB, opts ...Option) *Workspace {
	w := &Workspace{
		files:   files,
		db:      db,
		modules: make(map[source.ModuleID]*Module),
		tracer:  trace.Nop,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.jobs <= 0 {
		w.jobs = runtime.GOMAXPROCS(0)
	}
	return w
}

// Read runs fn under the read lock.
func (w *Workspace) Read(fn func(v View)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(View{w: w})
}

func (w *Workspace) Files() *source.FileSet { return w.files }

// Module returns the installed module for id or nil.
func (w *Workspace) Module(id source.ModuleID) *Module {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.modules[id]
}

// UpdateModule stores text for path, parses it outside the lock and then
// replaces the module's contribution atomically. A parse that finishes
// after a newer one for the same module is dropped.
func (w *Workspace) UpdateModule(path, text string) *Module {
	id := w.files.SetVirtual(path, text)
	return w.Reparse(id)
}

// Reparse parses the current FileSet text of id and installs it. It
// returns nil when id is unknown.
func (w *Workspace) Reparse(id source.ModuleID) *Module {
	f := w.files.Get(id)
	if f == nil {
		return nil
	}
	span := trace.Begin(w.tracer, trace.ScopeModule, "update", 0).Module(f.Name, f.Generation)
	mod := parseFile(f)

	w.mu.Lock()
	defer w.mu.Unlock()
	installed := w.install(mod)
	span.End(strconv.FormatBool(installed))
	return w.modules[id]
}

// RemoveModule forgets a module and its contribution.
func (w *Workspace) RemoveModule(id source.ModuleID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.modules[id]; !ok {
		return fmt.Errorf("remove module %d: %w", id, ErrUnknownModule)
	}
	w.db.ForgetModule(id)
	delete(w.modules, id)
	w.files.Remove(id)
	return nil
}

func parseFile(f *source.File) *Module {
	return &Module{
		ID:         f.ID,
		Name:       f.Name,
		Path:       f.Path,
		Text:       f.Text(),
		Generation: f.Generation,
		Tree:       scope.ParseModuleWith(f.Text(), scope.Options{Module: f.ID}),
	}
}

// install swaps in mod unless a newer generation is installed. Callers
// hold the write lock.
func (w *Workspace) install(mod *Module) bool {
	if cur, ok := w.modules[mod.ID]; ok && cur.Generation > mod.Generation {
		return false
	}
	w.db.RemoveTypesInModule(mod.ID)
	mod.RegNotes = Register(w.db, mod)
	w.modules[mod.ID] = mod
	return true
}

// Diagnostics returns the parse and registration notes of a module plus
// the checks that depend on other modules: unresolved imports, import
// cycles, name clashes and unknown supertypes.
func (w *Workspace) Diagnostics(id source.ModuleID) ([]diag.Diagnostic, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	mod := w.modules[id]
	if mod == nil {
		return nil, fmt.Errorf("diagnostics for module %d: %w", id, ErrUnknownModule)
	}
	bag := diag.NewBag(0)
	bag.Merge(mod.Tree.Diags)
	bag.Merge(mod.RegNotes)
	v := View{w: w}
	for _, imp := range mod.Tree.Imports {
		if v.ModuleByName(imp.Module) == nil {
			bag.Add(diag.New(diag.SevWarning, diag.RegUnresolvedImport,
				source.Span{Module: id, Start: imp.PathPos, End: imp.End},
				fmt.Sprintf("no module named %q", imp.Module)))
		}
	}
	if len(mod.Tree.Imports) > 0 {
		idx, topo := v.ImportOrder()
		if topo.Cyclic && slices.Contains(idx.Names(topo.Cycles), mod.Name) {
			imp := mod.Tree.Imports[0]
			bag.Add(diag.New(diag.SevWarning, diag.RegImportCycle,
				source.Span{Module: id, Start: imp.PathPos, End: imp.End},
				fmt.Sprintf("module %q is part of or depends on an import cycle", mod.Name)))
		}
	}
	for _, t := range w.db.ShadowedInModule(id) {
		bag.Add(diag.New(diag.SevWarning, diag.RegDuplicateType, t.Decl,
			fmt.Sprintf("%s %s is already declared", declKind(t), t.Name)))
	}
	for _, t := range w.db.TypesInModule(id) {
		if t.Super == "" || t.Module != id {
			continue
		}
		if w.db.GetType(t.Super) == nil {
			bag.Add(diag.New(diag.SevWarning, diag.RegUnknownSuper, t.Decl,
				fmt.Sprintf("%s derives from unknown type %s", t.Name, t.Super)))
		}
	}
	bag.Sort()
	return bag.Items(), nil
}

func declKind(t *typedb.Type) string {
	switch {
	case t.Flags.Has(typedb.TypeEnum):
		return "enum"
	case t.Flags.Has(typedb.TypeDelegate), t.Flags.Has(typedb.TypeEvent):
		return "delegate"
	case t.Flags.Has(typedb.TypeStruct):
		return "struct"
	}
	return "class"
}
