package synth

import "github.com/flowsmith/flowsmith/pkg/domain"

const (
	columnWidth = 280
	rowHeight   = 140
	originX     = 80
	originY     = 282
)

// layout assigns canvas positions on a simple horizontal grid: one column
// per dependency depth, siblings stacked vertically within a column.
func layout(g *domain.WorkflowGraph) {
	depths := map[string]int{}

	var depthOf func(id string, trail map[string]bool) int
	depthOf = func(id string, trail map[string]bool) int {
		if d, ok := depths[id]; ok {
			return d
		}
		if trail[id] {
			return 0 // cycle guard; synthesized graphs are acyclic
		}
		trail[id] = true
		n := g.Node(id)
		if n == nil || len(n.DependsOn) == 0 {
			depths[id] = 0
			return 0
		}
		max := 0
		for _, dep := range n.DependsOn {
			if d := depthOf(dep.NodeID, trail) + 1; d > max {
				max = d
			}
		}
		depths[id] = max
		return max
	}

	rows := map[int]int{}
	for i := range g.Nodes {
		d := depthOf(g.Nodes[i].ID, map[string]bool{})
		g.Nodes[i].Position = domain.Position{
			X: float64(originX + d*columnWidth),
			Y: float64(originY + rows[d]*rowHeight),
		}
		rows[d]++
	}
}
