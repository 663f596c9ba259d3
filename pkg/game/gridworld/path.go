package gridworld

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/world"
)

// AddPath installs a doorway between cells of two different areas. via pins
// the direction taken from `from`; world.AutoDirection picks the first free
// direction in world.DoorwayOrder.
func (w *World) AddPath(from, to world.Coord, via world.Direction) error {
	if from.Area == to.Area {
		return fmt.Errorf("%w: not allowed to add path within an area", world.ErrPermission)
	}
	if via != world.AutoDirection && !via.IsValid() {
		return fmt.Errorf("%w: illegal direction %d", world.ErrValidation, via)
	}
	for _, c := range []world.Coord{from, to} {
		if err := c.Validate(); err != nil {
			return err
		}
		if !w.graph.HasNode(c) {
			return fmt.Errorf("%w: %w: coordinate %v out of world", world.ErrConnectivity, world.ErrNotFound, c)
		}
		if w.graph.Degree(c) >= world.MaxDegree {
			return fmt.Errorf("%w: maximum number of connections (%d) for %v reached",
				world.ErrConnectivity, world.MaxDegree, c)
		}
	}
	if w.graph.HasEdge(from, to) {
		return fmt.Errorf("%w: path already exists between %v and %v", world.ErrOverwrite, from, to)
	}

	free := w.freeDirections(from, to)
	if len(free) == 0 {
		return fmt.Errorf("%w: unable to connect %v to %v, all directions allocated", world.ErrConnectivity, from, to)
	}
	if via == world.AutoDirection {
		via = free[0]
	} else if !slices.Contains(free, via) {
		return fmt.Errorf("%w: unable to register direction %v from %v, already allocated", world.ErrConnectivity, via, from)
	}

	if err := w.graph.AddEdge(from, to); err != nil {
		return err
	}
	w.alias[from.Add(via).Key()] = to.Key()
	w.alias[to.Add(via.Opposite()).Key()] = from.Key()
	return nil
}

// freeDirections lists, in doorway order, the directions d for which neither
// the virtual neighbour of from in d nor that of to in the opposite of d is
// already a cell or an alias.
func (w *World) freeDirections(from, to world.Coord) []world.Direction {
	var free []world.Direction
	for _, d := range world.DoorwayOrder() {
		out, in := from.Add(d), to.Add(d.Opposite())
		if w.occupied(out) || w.occupied(in) {
			continue
		}
		free = append(free, d)
	}
	return free
}

func (w *World) occupied(c world.Coord) bool {
	if w.graph.HasNode(c) {
		return true
	}
	_, ok := w.alias[c.Key()]
	return ok
}

// RemovePath removes the doorway between from and to. Removing a doorway that
// is the only link between two parts of the world fails. A pair with no
// doorway yields a *world.Warning and changes nothing.
func (w *World) RemovePath(from, to world.Coord) error {
	if from.Area == to.Area {
		return fmt.Errorf("%w: not allowed to remove path within an area", world.ErrPermission)
	}
	for _, c := range []world.Coord{from, to} {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if w.graph.IsBridge(from, to) {
		return fmt.Errorf("%w: not allowed to remove path (%v, %v), world would be no longer connected",
			world.ErrConnectivity, from, to)
	}

	out, in, ok := w.findDoorway(from, to)
	if !ok {
		return w.warn(world.Warnf(world.ErrPathNotFound, "between %v and %v, nothing to do", from, to),
			logrus.Fields{"from": from.String(), "to": to.String()})
	}

	if err := w.graph.RemoveEdge(from, to); err != nil {
		return err
	}
	delete(w.alias, out)
	delete(w.alias, in)
	return nil
}

// findDoorway returns the alias pair that realises the edge from-to.
func (w *World) findDoorway(from, to world.Coord) (out, in world.Key, ok bool) {
	fk, tk := from.Key(), to.Key()
	for _, d := range world.DoorwayOrder() {
		out, in = from.Add(d).Key(), to.Add(d.Opposite()).Key()
		vo, okOut := w.alias[out]
		vi, okIn := w.alias[in]
		if okOut && okIn && vo == tk && vi == fk {
			return out, in, true
		}
	}
	return 0, 0, false
}

// Aliases returns a copy of the alias table, virtual cell to real cell.
func (w *World) Aliases() map[world.Coord]world.Coord {
	out := make(map[world.Coord]world.Coord, len(w.alias))
	for k, v := range w.alias {
		out[k.Coord()] = v.Coord()
	}
	return out
}

// Resolve returns the real cell a virtual cell aliases to.
func (w *World) Resolve(c world.Coord) (world.Coord, bool) {
	if c.Validate() != nil {
		return world.Coord{}, false
	}
	v, ok := w.alias[c.Key()]
	if !ok {
		return world.Coord{}, false
	}
	return v.Coord(), true
}

// Doorways returns every cell that is an endpoint of a doorway, sorted.
func (w *World) Doorways() []world.Coord {
	out := make([]world.Coord, 0, len(w.alias))
	for _, v := range w.alias {
		out = append(out, v.Coord())
	}
	slices.SortFunc(out, func(a, b world.Coord) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return slices.Compact(out)
}
