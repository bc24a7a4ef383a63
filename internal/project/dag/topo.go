package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []ModuleID   // linear order of present modules
	Batches [][]ModuleID // waves of independent modules
	Cyclic  bool
	Cycles  []ModuleID // modules left inside or behind a cycle
}

func ToposortKahn(g Graph) *Topo {
	count := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]ModuleID, 0, count),
		Batches: make([][]ModuleID, 0),
	}

	active := 0
	current := make([]ModuleID, 0, count)
	for i := range count {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, moduleID(i))
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ModuleID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		for i := range count {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, moduleID(i))
			}
		}
	}
	return topo
}

func moduleID(i int) ModuleID {
	id, err := safecast.Conv[ModuleID](i)
	if err != nil {
		panic(fmt.Errorf("module id overflow: %w", err))
	}
	return id
}
