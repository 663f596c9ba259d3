package world

import (
	"slices"

	"github.com/zyedidia/generic/stack"
)

type dfsFrame struct {
	key       Key
	parent    Key
	hasParent bool
	next      uint8
}

// Bridges returns every edge whose removal would disconnect the graph, in
// canonical order. It runs Tarjan's lowlink pass with an explicit stack, O(V+E).
func (g *Graph) Bridges() []Edge {
	disc := make(map[Key]int, len(g.nodes))
	low := make(map[Key]int, len(g.nodes))
	var bridges []Edge
	timer := 0

	for _, root := range g.sortedKeys() {
		if _, seen := disc[root]; seen {
			continue
		}
		timer++
		disc[root], low[root] = timer, timer

		st := stack.New[*dfsFrame]()
		st.Push(&dfsFrame{key: root})
		for st.Size() > 0 {
			f := st.Peek()
			n := g.nodes[f.key]
			if f.next < n.deg {
				nb := n.nbrs[f.next]
				f.next++
				// Simple graph: the only edge back to the parent is the tree edge.
				if f.hasParent && nb == f.parent {
					continue
				}
				if d, seen := disc[nb]; seen {
					low[f.key] = min(low[f.key], d)
					continue
				}
				timer++
				disc[nb], low[nb] = timer, timer
				st.Push(&dfsFrame{key: nb, parent: f.key, hasParent: true})
				continue
			}
			st.Pop()
			if !f.hasParent {
				continue
			}
			low[f.parent] = min(low[f.parent], low[f.key])
			if low[f.key] > disc[f.parent] {
				bridges = append(bridges, NewEdge(f.parent.Coord(), f.key.Coord()))
			}
		}
	}

	slices.SortFunc(bridges, func(x, y Edge) int {
		if c := compareCoord(x.A, y.A); c != 0 {
			return c
		}
		return compareCoord(x.B, y.B)
	})
	return bridges
}
