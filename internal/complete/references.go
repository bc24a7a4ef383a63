package complete

import (
	"fmt"

	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// References starts a workspace search for the symbol touching offset.
// The task is driven by the caller; see workspace.ReferenceTask.
func (r *Resolver) References(module source.ModuleID, offset uint32) (*workspace.ReferenceTask, error) {
	q, err := r.query(module, offset)
	if err != nil {
		return nil, err
	}
	return r.ws.FindReferences(module, q.name, q.match)
}

// Rename starts a search whose results rename the symbol touching offset
// to newName.
func (r *Resolver) Rename(module source.ModuleID, offset uint32, newName string) (*workspace.RenameTask, error) {
	q, err := r.query(module, offset)
	if err != nil {
		return nil, err
	}
	if q.readOnly {
		return nil, fmt.Errorf("rename %s: %w", q.name, ErrReadOnlySymbol)
	}
	return r.ws.Rename(module, q.name, newName, q.match)
}

type query struct {
	name     string
	readOnly bool
	match    workspace.Matcher
}

func (r *Resolver) query(module source.ModuleID, offset uint32) (query, error) {
	var (
		q   query
		key string
	)
	r.ws.Read(func(v workspace.View) {
		_, t := r.targetAt(v, module, offset)
		if t == nil {
			return
		}
		key = t.key(v.DB())
		q.name = t.name
		q.readOnly = readOnly(v.DB(), t)
	})
	if key == "" {
		return q, fmt.Errorf("module %d offset %d: %w", module, offset, ErrNoSymbol)
	}
	q.match = func(v workspace.View, mod *workspace.Module, off uint32) (bool, bool) {
		_, t := r.targetAt(v, mod.ID, off)
		if t == nil || t.key(v.DB()) != key {
			return false, false
		}
		d := t.decl()
		return true, d.Module == mod.ID && d.Start == off
	}
	return q, nil
}

func readOnly(db *typedb.DB, t *target) bool {
	switch {
	case t.local != nil:
		return false
	case len(t.syms) > 0:
		sym := t.syms[0]
		if sym.SymbolName() != t.name {
			return true
		}
		if sym.SymbolModule() == source.NoModule {
			return true
		}
		owner := db.Lookup(sym.SymbolOwner())
		return owner != nil && owner.Flags.Has(typedb.TypeHost) && !owner.IsNamespace()
	case t.typ != nil:
		return t.typ.Flags.Has(typedb.TypeHost) || t.typ.Flags.Has(typedb.TypePrimitive)
	}
	return true
}
