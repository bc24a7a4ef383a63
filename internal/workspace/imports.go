package workspace

import (
	"asls/internal/project/dag"
)

// ImportOrder sorts the installed modules so that imported modules come
// before their importers. Modules caught in a cycle are reported in
// Topo.Cycles and left out of the order.
func (v View) ImportOrder() (dag.ModuleIndex, *dag.Topo) {
	mods := v.Modules()
	nodes := make([]dag.Node, 0, len(mods))
	for _, m := range mods {
		n := dag.Node{Name: m.Name}
		for _, imp := range m.Tree.Imports {
			n.Imports = append(n.Imports, imp.Module)
		}
		nodes = append(nodes, n)
	}
	idx := dag.BuildIndex(nodes)
	return idx, dag.ToposortKahn(dag.BuildGraph(idx, nodes))
}
