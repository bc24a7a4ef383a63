package dag

import (
	"slices"
)

type Graph struct {
	Edges   [][]ModuleID // Edges[from] = []to
	Indeg   []int        // counts only edges between present modules
	Present []bool       // module exists, not only imported
	// Missing lists imported names with no module, per importer.
	Missing map[ModuleID][]string
}

// BuildGraph links every present module to the modules it imports. The
// edge runs from the imported module to its importer so that a topological
// order lists dependencies first. Duplicate names keep the first node.
func BuildGraph(idx ModuleIndex, nodes []Node) Graph {
	count := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, count),
		Indeg:   make([]int, count),
		Present: make([]bool, count),
		Missing: make(map[ModuleID][]string),
	}
	imports := make([][]string, count)
	for _, n := range nodes {
		id, ok := idx.NameToID[n.Name]
		if !ok || g.Present[id] {
			continue
		}
		g.Present[id] = true
		imports[id] = n.Imports
	}

	for from := range count {
		if !g.Present[from] {
			continue
		}
		user := ModuleID(from)
		for _, dep := range imports[from] {
			to, ok := idx.NameToID[dep]
			if !ok || to == user {
				continue
			}
			if !g.Present[to] {
				g.Missing[user] = append(g.Missing[user], dep)
				continue
			}
			if slices.Contains(g.Edges[to], user) {
				continue
			}
			g.Edges[to] = append(g.Edges[to], user)
			g.Indeg[user]++
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g
}
