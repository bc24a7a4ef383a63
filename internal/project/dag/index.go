package dag

import (
	"sort"
)

type ModuleID uint32

// Node is one module with the names it imports.
type Node struct {
	Name    string
	Imports []string
}

type ModuleIndex struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex collects module and import names, sorts them and numbers them
// in order.
func BuildIndex(nodes []Node) ModuleIndex {
	uniq := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Name != "" {
			uniq[n.Name] = struct{}{}
		}
		for _, dep := range n.Imports {
			if dep != "" {
				uniq[dep] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]ModuleID, len(names))
	for i, name := range names {
		nameToID[name] = ModuleID(i)
	}
	return ModuleIndex{NameToID: nameToID, IDToName: names}
}

func (idx ModuleIndex) Names(ids []ModuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
