package world

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// MaxDegree is the connection budget of a cell: the four cardinal directions,
// shared by lattice edges and doorway edges.
const MaxDegree = 4

type node struct {
	altitude float64
	nbrs     [MaxDegree]Key
	deg      uint8
}

func (n *node) has(k Key) bool {
	for i := uint8(0); i < n.deg; i++ {
		if n.nbrs[i] == k {
			return true
		}
	}
	return false
}

func (n *node) link(k Key) {
	n.nbrs[n.deg] = k
	n.deg++
}

// unlink removes k keeping the order of the remaining neighbours.
func (n *node) unlink(k Key) {
	for i := uint8(0); i < n.deg; i++ {
		if n.nbrs[i] != k {
			continue
		}
		copy(n.nbrs[i:n.deg], n.nbrs[i+1:n.deg])
		n.deg--
		n.nbrs[n.deg] = 0
		return
	}
}

// Edge is an undirected edge with A ordered before B.
type Edge struct {
	A Coord
	B Coord
}

// NewEdge returns the edge between a and b in canonical order.
func NewEdge(a, b Coord) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (e Edge) String() string {
	return fmt.Sprintf("%v-%v", e.A, e.B)
}

// Graph is an undirected graph of cells keyed by packed coordinates.
// The zero value is not usable; call NewGraph.
type Graph struct {
	nodes map[Key]node
	edges int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[Key]node)}
}

// NumNodes returns the number of cells.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return g.edges
}

// AddNode inserts c with altitude 0. Adding an existing node is a no-op.
func (g *Graph) AddNode(c Coord) error {
	if err := c.Validate(); err != nil {
		return err
	}
	k := c.Key()
	if _, ok := g.nodes[k]; !ok {
		g.nodes[k] = node{}
	}
	return nil
}

// RemoveNode deletes c and its incident edges. It reports whether c existed.
func (g *Graph) RemoveNode(c Coord) bool {
	k := c.Key()
	n, ok := g.nodes[k]
	if !ok {
		return false
	}
	for i := uint8(0); i < n.deg; i++ {
		nb := g.nodes[n.nbrs[i]]
		nb.unlink(k)
		g.nodes[n.nbrs[i]] = nb
	}
	g.edges -= int(n.deg)
	delete(g.nodes, k)
	return true
}

// HasNode reports whether c is a real cell.
func (g *Graph) HasNode(c Coord) bool {
	if c.Validate() != nil {
		return false
	}
	_, ok := g.nodes[c.Key()]
	return ok
}

// Degree returns the number of edges at c, or 0 if c is not a node.
func (g *Graph) Degree(c Coord) int {
	if !g.HasNode(c) {
		return 0
	}
	return int(g.nodes[c.Key()].deg)
}

// Neighbors returns the cells adjacent to c in insertion order.
func (g *Graph) Neighbors(c Coord) []Coord {
	if !g.HasNode(c) {
		return nil
	}
	n := g.nodes[c.Key()]
	out := make([]Coord, 0, n.deg)
	for i := uint8(0); i < n.deg; i++ {
		out = append(out, n.nbrs[i].Coord())
	}
	return out
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b Coord) bool {
	if !g.HasNode(a) || !g.HasNode(b) {
		return false
	}
	n := g.nodes[a.Key()]
	return n.has(b.Key())
}

// AddEdge connects a and b. Both must exist with degree below MaxDegree.
func (g *Graph) AddEdge(a, b Coord) error {
	if a == b {
		return fmt.Errorf("%w: self-loop at %v", ErrValidation, a)
	}
	for _, c := range []Coord{a, b} {
		if !g.HasNode(c) {
			return fmt.Errorf("%w: coordinate %v out of world", ErrNotFound, c)
		}
	}
	ka, kb := a.Key(), b.Key()
	na, nb := g.nodes[ka], g.nodes[kb]
	if na.has(kb) {
		return fmt.Errorf("%w: edge already exists between %v and %v", ErrOverwrite, a, b)
	}
	if na.deg >= MaxDegree {
		return fmt.Errorf("%w: maximum number of connections (%d) for %v reached", ErrConnectivity, MaxDegree, a)
	}
	if nb.deg >= MaxDegree {
		return fmt.Errorf("%w: maximum number of connections (%d) for %v reached", ErrConnectivity, MaxDegree, b)
	}
	na.link(kb)
	nb.link(ka)
	g.nodes[ka], g.nodes[kb] = na, nb
	g.edges++
	return nil
}

// RemoveEdge disconnects a and b. It refuses to remove a bridge.
func (g *Graph) RemoveEdge(a, b Coord) error {
	if !g.HasEdge(a, b) {
		return fmt.Errorf("%w: no edge between %v and %v", ErrNotFound, a, b)
	}
	if g.IsBridge(a, b) {
		return fmt.Errorf("%w: removing %v would disconnect the world", ErrConnectivity, NewEdge(a, b))
	}
	g.detach(a.Key(), b.Key())
	return nil
}

func (g *Graph) detach(ka, kb Key) {
	na, nb := g.nodes[ka], g.nodes[kb]
	na.unlink(kb)
	nb.unlink(ka)
	g.nodes[ka], g.nodes[kb] = na, nb
	g.edges--
}

// Altitude returns the altitude of c and whether c exists.
func (g *Graph) Altitude(c Coord) (float64, bool) {
	if !g.HasNode(c) {
		return 0, false
	}
	return g.nodes[c.Key()].altitude, true
}

// SetAltitude sets the altitude of an existing cell.
func (g *Graph) SetAltitude(c Coord, v float64) error {
	if !g.HasNode(c) {
		return fmt.Errorf("%w: coordinate %v out of world", ErrNotFound, c)
	}
	k := c.Key()
	n := g.nodes[k]
	n.altitude = v
	g.nodes[k] = n
	return nil
}

// Nodes returns every cell sorted by area, x, y.
func (g *Graph) Nodes() []Coord {
	keys := g.sortedKeys()
	out := make([]Coord, len(keys))
	for i, k := range keys {
		out[i] = k.Coord()
	}
	return out
}

// AreaNodes returns the cells of one area sorted by x, y.
func (g *Graph) AreaNodes(area int) []Coord {
	var out []Coord
	for k := range g.nodes {
		if k.Area() == area {
			out = append(out, k.Coord())
		}
	}
	slices.SortFunc(out, compareCoord)
	return out
}

// Edges returns every edge in canonical order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for k, n := range g.nodes {
		for i := uint8(0); i < n.deg; i++ {
			if k < n.nbrs[i] {
				out = append(out, NewEdge(k.Coord(), n.nbrs[i].Coord()))
			}
		}
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if c := compareCoord(x.A, y.A); c != 0 {
			return c
		}
		return compareCoord(x.B, y.B)
	})
	return out
}

// IsConnected reports whether every cell is reachable from every other.
// An empty graph is connected.
func (g *Graph) IsConnected() bool {
	if len(g.nodes) == 0 {
		return true
	}
	var start Key
	for k := range g.nodes {
		start = k
		break
	}
	return g.reach(start, 0, 0, false) == len(g.nodes)
}

// IsBridge reports whether a-b is an edge whose removal disconnects a from b.
func (g *Graph) IsBridge(a, b Coord) bool {
	if !g.HasEdge(a, b) {
		return false
	}
	ka, kb := a.Key(), b.Key()
	visited := g.visit(ka, ka, kb, true, kb)
	return !visited.Has(kb)
}

// Distances returns the hop count from start to every cell reachable from it.
func (g *Graph) Distances(start Coord) map[Coord]int {
	if !g.HasNode(start) {
		return nil
	}
	dist := map[Key]int{start.Key(): 0}
	q := queue.New[Key]()
	q.Enqueue(start.Key())
	for !q.Empty() {
		current := q.Dequeue()
		n := g.nodes[current]
		for i := uint8(0); i < n.deg; i++ {
			next := n.nbrs[i]
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			q.Enqueue(next)
		}
	}
	out := make(map[Coord]int, len(dist))
	for k, d := range dist {
		out[k.Coord()] = d
	}
	return out
}

// reach counts the cells reachable from start, optionally ignoring the edge skipA-skipB.
func (g *Graph) reach(start, skipA, skipB Key, skip bool) int {
	return g.visit(start, skipA, skipB, skip, start).Size()
}

// visit runs a BFS from start and returns the visited set. The walk stops
// early once stop is reached (stop == start never stops it).
func (g *Graph) visit(start, skipA, skipB Key, skip bool, stop Key) mapset.Set[Key] {
	visited := mapset.New[Key]()
	q := queue.New[Key]()
	visited.Put(start)
	q.Enqueue(start)
	for !q.Empty() {
		current := q.Dequeue()
		n := g.nodes[current]
		for i := uint8(0); i < n.deg; i++ {
			next := n.nbrs[i]
			if skip && (current == skipA && next == skipB || current == skipB && next == skipA) {
				continue
			}
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			if next == stop && stop != start {
				return visited
			}
			q.Enqueue(next)
		}
	}
	return visited
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	return &Graph{nodes: maps.Clone(g.nodes), edges: g.edges}
}

// Equal reports whether g and o hold the same cells, altitudes and edges.
func (g *Graph) Equal(o *Graph) bool {
	if g.edges != o.edges || len(g.nodes) != len(o.nodes) {
		return false
	}
	for k, n := range g.nodes {
		m, ok := o.nodes[k]
		if !ok || n.altitude != m.altitude || n.deg != m.deg {
			return false
		}
		for i := uint8(0); i < n.deg; i++ {
			if !m.has(n.nbrs[i]) {
				return false
			}
		}
	}
	return true
}

// WithoutArea returns a copy of g with every cell of area removed and every
// higher area relabelled down by one. g itself is not modified.
func (g *Graph) WithoutArea(area int) *Graph {
	relabel := func(k Key) Key {
		c := k.Coord()
		if c.Area > area {
			c.Area--
		}
		return c.Key()
	}
	out := &Graph{nodes: make(map[Key]node, len(g.nodes))}
	for k, n := range g.nodes {
		if k.Area() == area {
			continue
		}
		var kept node
		kept.altitude = n.altitude
		for i := uint8(0); i < n.deg; i++ {
			if n.nbrs[i].Area() == area {
				continue
			}
			kept.link(relabel(n.nbrs[i]))
		}
		out.nodes[relabel(k)] = kept
		out.edges += int(kept.deg)
	}
	out.edges /= 2
	return out
}

func (g *Graph) sortedKeys() []Key {
	keys := make([]Key, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func compareCoord(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
