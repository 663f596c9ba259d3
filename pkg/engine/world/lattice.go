package world

import "fmt"

// AddLattice inserts a rows x cols 4-connected grid relabelled into area.
// The area must not already hold cells.
func (g *Graph) AddLattice(area int, s Shape) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := C(area, 0, 0).Validate(); err != nil {
		return err
	}
	if len(g.AreaNodes(area)) > 0 {
		return fmt.Errorf("%w: area %d already has cells", ErrOverwrite, area)
	}

	g.ForEachLatticeCell(area, s, func(c Coord) {
		g.nodes[c.Key()] = node{}
	})
	g.ForEachLatticeCell(area, s, func(c Coord) {
		g.buildCellConnections(c, s)
	})
	return nil
}

// buildCellConnections links c to its south and east lattice neighbours; the
// other two are linked from their own side.
func (g *Graph) buildCellConnections(c Coord, s Shape) {
	for _, dir := range []Direction{South, East} {
		adj := c.Add(dir)
		if !s.Contains(adj.X, adj.Y) {
			continue
		}
		ka, kb := c.Key(), adj.Key()
		na, nb := g.nodes[ka], g.nodes[kb]
		na.link(kb)
		nb.link(ka)
		g.nodes[ka], g.nodes[kb] = na, nb
		g.edges++
	}
}

// RemoveLattice deletes every cell of area inside s together with its edges.
func (g *Graph) RemoveLattice(area int, s Shape) {
	g.ForEachLatticeCell(area, s, func(c Coord) {
		g.RemoveNode(c)
	})
}

// ForEachLatticeCell calls fn for every (x, y) of s in row-major order.
func (g *Graph) ForEachLatticeCell(area int, s Shape, fn func(c Coord)) {
	for x := 0; x < s.Rows; x++ {
		for y := 0; y < s.Cols; y++ {
			fn(C(area, x, y))
		}
	}
}

// NewLattice returns a graph holding a single area lattice.
func NewLattice(area int, s Shape) (*Graph, error) {
	g := NewGraph()
	if err := g.AddLattice(area, s); err != nil {
		return nil, err
	}
	return g, nil
}
