package gridworld

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"neugym/pkg/engine/world"
)

type areaConfig struct {
	from     world.Coord
	toX, toY int
	via      world.Direction
	altitude mat.Matrix
}

// AreaOption configures AddArea.
type AreaOption func(*areaConfig)

// AccessFrom sets the existing cell the new area is entered from. Default (0, 0, 0).
func AccessFrom(c world.Coord) AreaOption {
	return func(cfg *areaConfig) {
		cfg.from = c
	}
}

// AccessTo sets the cell of the new area, in its own (x, y), that the doorway
// leads to. Default (0, 0).
func AccessTo(x, y int) AreaOption {
	return func(cfg *areaConfig) {
		cfg.toX, cfg.toY = x, y
	}
}

// Via pins the doorway direction as seen from the access cell.
// Default world.AutoDirection.
func Via(d world.Direction) AreaOption {
	return func(cfg *areaConfig) {
		cfg.via = d
	}
}

// WithAltitude sets the altitude of the new area. Default all zeros.
func WithAltitude(m mat.Matrix) AreaOption {
	return func(cfg *areaConfig) {
		cfg.altitude = m
	}
}

// AddArea appends a rows x cols area and connects it to the world with one
// doorway. It returns the new area id. On failure the world is unchanged.
func (w *World) AddArea(shape world.Shape, opts ...AreaOption) (int, error) {
	cfg := areaConfig{from: world.Origin, via: world.AutoDirection}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := w.NumArea() + 1
	if id > world.MaxArea {
		return 0, fmt.Errorf("%w: area limit %d reached", world.ErrValidation, world.MaxArea)
	}
	if err := shape.Validate(); err != nil {
		return 0, err
	}
	if err := checkAltitudeShape(id, shape, cfg.altitude); err != nil {
		return 0, err
	}
	if !w.graph.HasNode(cfg.from) {
		return 0, fmt.Errorf("%w: access_from coordinate %v out of world", world.ErrNotFound, cfg.from)
	}
	if w.graph.Degree(cfg.from) >= world.MaxDegree {
		return 0, fmt.Errorf("%w: maximum number of connections (%d) for %v reached, not allowed to access from it",
			world.ErrConnectivity, world.MaxDegree, cfg.from)
	}
	if !shape.Contains(cfg.toX, cfg.toY) {
		return 0, fmt.Errorf("%w: access_to (%d, %d) outside area shape %v", world.ErrValidation, cfg.toX, cfg.toY, shape)
	}

	if err := w.graph.AddLattice(id, shape); err != nil {
		return 0, err
	}
	w.areas = append(w.areas, shape)

	if err := w.AddPath(cfg.from, world.C(id, cfg.toX, cfg.toY), cfg.via); err != nil {
		w.undoArea(id, shape)
		return 0, err
	}
	w.applyAltitude(id, cfg.altitude)

	w.log.WithFields(logrus.Fields{
		"area":  id,
		"shape": shape.String(),
		"from":  cfg.from.String(),
	}).Debug("area added")
	return id, nil
}

// undoArea reverts the edits of a failed AddArea for the last area.
func (w *World) undoArea(id int, shape world.Shape) {
	w.graph.RemoveLattice(id, shape)
	for k, v := range w.alias {
		if k.Area() == id || v.Area() == id {
			delete(w.alias, k)
		}
	}
	w.areas = w.areas[:id]
}

// RemoveArea deletes an area and renumbers every higher area down by one,
// together with its aliases and objects. The origin cannot be removed, and an
// area whose removal would split the world is refused.
func (w *World) RemoveArea(area int) error {
	if area == 0 {
		return fmt.Errorf("%w: not allowed to remove origin area", world.ErrPermission)
	}
	if err := w.checkArea(area); err != nil {
		return err
	}

	next := w.graph.WithoutArea(area)
	if !next.IsConnected() {
		return fmt.Errorf("%w: not allowed to remove area %d, world would be no longer connected",
			world.ErrConnectivity, area)
	}

	w.graph = next
	w.areas = append(w.areas[:area], w.areas[area+1:]...)

	alias := make(map[world.Key]world.Key, len(w.alias))
	for k, v := range w.alias {
		kc, vc := k.Coord(), v.Coord()
		if kc.Area == area || vc.Area == area {
			continue
		}
		alias[relabel(kc, area).Key()] = relabel(vc, area).Key()
	}
	w.alias = alias

	objects := w.objects[:0]
	for _, o := range w.objects {
		if o.At.Area == area {
			continue
		}
		o.At = relabel(o.At, area)
		objects = append(objects, o)
	}
	w.objects = objects
	w.reindexObjects()

	if w.agent != nil {
		if w.agent.Current.Area == area || w.agent.Init.Area == area {
			w.log.WithField("area", area).Warn("agent was inside the removed area, agent cleared")
			w.agent = nil
		} else {
			w.agent.Current = relabel(w.agent.Current, area)
			w.agent.Init = relabel(w.agent.Init, area)
		}
	}

	w.log.WithField("area", area).Debug("area removed")
	return nil
}

// relabel moves c down one area id when it lies above the removed area.
func relabel(c world.Coord, removed int) world.Coord {
	if c.Area > removed {
		c.Area--
	}
	return c
}

// AreaShape returns the (rows, cols) of an area.
func (w *World) AreaShape(area int) (world.Shape, error) {
	if err := w.checkArea(area); err != nil {
		return world.Shape{}, err
	}
	return w.areas[area], nil
}

// AreaAltitude returns the altitude of every cell of an area as a rows x cols matrix.
func (w *World) AreaAltitude(area int) (*mat.Dense, error) {
	if err := w.checkArea(area); err != nil {
		return nil, err
	}
	s := w.areas[area]
	m := mat.NewDense(s.Rows, s.Cols, nil)
	w.graph.ForEachLatticeCell(area, s, func(c world.Coord) {
		alt, _ := w.graph.Altitude(c)
		m.Set(c.X, c.Y, alt)
	})
	return m, nil
}

// SetAltitude replaces the altitude of an area. m must match the area shape.
func (w *World) SetAltitude(area int, m mat.Matrix) error {
	if err := w.checkArea(area); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: nil altitude matrix", world.ErrValidation)
	}
	if err := checkAltitudeShape(area, w.areas[area], m); err != nil {
		return err
	}
	w.applyAltitude(area, m)
	return nil
}

func checkAltitudeShape(area int, s world.Shape, m mat.Matrix) error {
	if m == nil {
		return nil
	}
	if r, c := m.Dims(); r != s.Rows || c != s.Cols {
		return fmt.Errorf("%w: mismatch shape between area(%d) %v and altitude matrix (%d, %d)",
			world.ErrValidation, area, s, r, c)
	}
	return nil
}

// applyAltitude writes m into the cells of area. A nil m zero-fills.
func (w *World) applyAltitude(area int, m mat.Matrix) {
	w.graph.ForEachLatticeCell(area, w.areas[area], func(c world.Coord) {
		v := 0.0
		if m != nil {
			v = m.At(c.X, c.Y)
		}
		_ = w.graph.SetAltitude(c, v)
	})
}
