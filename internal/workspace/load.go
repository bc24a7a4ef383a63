package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"asls/internal/source"
	"asls/internal/trace"
)

// LoadResult summarizes LoadFiles.
type LoadResult struct {
	Modules []*Module
	// Errors holds per-file read failures; the other files still load.
	Errors []error
	Notes  int
}

// ListModules returns the files under roots with one of exts, sorted.
// Directories named in exclude are skipped.
func ListModules(roots, exts, exclude []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && slices.Contains(exclude, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list modules under %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return slices.Compact(files), nil
}

// LoadFiles reads and parses paths in parallel, then registers the modules
// serially under the write lock in path order.
func (w *Workspace) LoadFiles(ctx context.Context, paths []string) (*LoadResult, error) {
	load := trace.Begin(w.tracer, trace.ScopeWorkspace, "load", trace.ParentFrom(ctx)).Count("files", len(paths))
	res := &LoadResult{}
	defer func() { load.End(fmt.Sprintf("%d modules", len(res.Modules))) }()

	ids := make([]source.ModuleID, 0, len(paths))
	for _, p := range paths {
		id, err := w.files.Load(p)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		ids = append(ids, id)
	}

	parsed := make([]*Module, len(ids))
	if err := w.parseAll(ctx, load.ID(), ids, parsed); err != nil {
		return res, err
	}

	phase := w.timer.Begin("register")
	reg := trace.Begin(w.tracer, trace.ScopePhase, "register", load.ID())
	w.mu.Lock()
	for i, mod := range parsed {
		if w.install(mod) {
			res.Modules = append(res.Modules, mod)
			res.Notes += mod.Tree.Diags.Len() + mod.RegNotes.Len()
		}
		w.report(Progress{Phase: "register", Done: i + 1, Total: len(parsed), Path: mod.Path})
	}
	w.mu.Unlock()
	reg.End("")
	w.timer.End(phase, fmt.Sprintf("%d modules", len(res.Modules)))
	return res, nil
}

func (w *Workspace) parseAll(ctx context.Context, parent uint64, ids []source.ModuleID, out []*Module) error {
	phase := w.timer.Begin("parse")
	span := trace.Begin(w.tracer, trace.ScopePhase, "parse", parent)
	defer func() {
		span.End("")
		w.timer.End(phase, fmt.Sprintf("%d files", len(ids)))
	}()
	if len(ids) == 0 {
		return nil
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(w.jobs, len(ids)))
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := w.files.Get(id)
			if f == nil {
				return fmt.Errorf("parse module %d: %w", id, ErrUnknownModule)
			}
			out[i] = parseFile(f)
			trace.Mark(w.tracer, trace.ScopeModule, "parsed", f.Name, span.ID())
			w.report(Progress{Phase: "parse", Done: int(done.Add(1)), Total: len(ids), Path: f.Path})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("load canceled: %w", err)
		}
		return err
	}
	return nil
}

func (w *Workspace) report(p Progress) {
	if w.progress != nil {
		w.progress(p)
	}
}
