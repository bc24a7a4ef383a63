package workspace

import (
	"sort"

	"asls/internal/diag"
	"asls/internal/scope"
	"asls/internal/source"
	"asls/internal/typedb"
)

// Module is one parsed script module. It is immutable once installed; an
// update installs a new Module under the same ID.
type Module struct {
	ID         source.ModuleID
	Name       string
	Path       string
	Text       string
	Generation uint64
	Tree       *scope.Tree
	// RegNotes are diagnostics produced while registering the module.
	RegNotes *diag.Bag
}

// ImportChecker answers whether a module is visible to another one through
// an import statement.
type ImportChecker interface {
	IsImported(module, by source.ModuleID) bool
}

// View is the read-only state handed to Workspace.Read callbacks. It must
// not escape the callback.
type View struct {
	w *Workspace
}

func (v View) DB() *typedb.DB { return v.w.db }

func (v View) Files() *source.FileSet { return v.w.files }

// Module returns the installed module or nil.
func (v View) Module(id source.ModuleID) *Module {
	return v.w.modules[id]
}

// ModuleByName finds a module by its dotted import name.
func (v View) ModuleByName(name string) *Module {
	for _, m := range v.w.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Modules returns all installed modules ordered by ID.
func (v View) Modules() []*Module {
	out := make([]*Module, 0, len(v.w.modules))
	for _, m := range v.w.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsImported reports whether by imports module directly. A module always
// sees itself.
func (v View) IsImported(module, by source.ModuleID) bool {
	if module == by {
		return true
	}
	target, user := v.w.modules[module], v.w.modules[by]
	if target == nil || user == nil {
		return false
	}
	for _, imp := range user.Tree.Imports {
		if imp.Module == target.Name {
			return true
		}
	}
	return false
}

var _ ImportChecker = View{}
