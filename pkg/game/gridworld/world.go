// Package gridworld composes rectangular areas into one connected grid world
// and steps a single agent over it.
//
// Areas are joined by doorways: a direct edge between two boundary cells of
// different areas plus a pair of aliases that map the virtual cell just
// outside each endpoint onto the other endpoint. A World is not safe for
// concurrent use.
package gridworld

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/reward"
	"neugym/pkg/logger"
)

// World is the mutable environment state: topology, area shapes, aliases,
// objects, agent and time.
type World struct {
	graph   *world.Graph
	areas   []world.Shape // indexed by area id, len == NumArea()+1
	alias   map[world.Key]world.Key
	objects []Object
	objAt   map[world.Key]int

	agent *Agent
	time  int

	checkpoint *Snapshot

	log     logrus.FieldLogger
	sampler reward.Sampler
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for warnings and lifecycle events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *World) {
		w.log = l
	}
}

// WithSampler sets the sampler that decides object payouts.
func WithSampler(s reward.Sampler) Option {
	return func(w *World) {
		w.sampler = s
	}
}

// New builds a world holding only the origin area. A nil altitude means all zeros.
func New(origin world.Shape, altitude mat.Matrix, opts ...Option) (*World, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if err := checkAltitudeShape(0, origin, altitude); err != nil {
		return nil, err
	}

	w := &World{
		graph:   world.NewGraph(),
		areas:   []world.Shape{origin},
		alias:   make(map[world.Key]world.Key),
		objAt:   make(map[world.Key]int),
		log:     logger.Log,
		sampler: reward.NewRandom(1),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.graph.AddLattice(0, origin); err != nil {
		return nil, err
	}
	w.applyAltitude(0, altitude)
	return w, nil
}

// NumArea returns the id of the last area. The origin alone gives 0.
func (w *World) NumArea() int {
	return len(w.areas) - 1
}

// Time returns the number of steps taken.
func (w *World) Time() int {
	return w.time
}

// HasNode reports whether c is a real cell.
func (w *World) HasNode(c world.Coord) bool {
	return w.graph.HasNode(c)
}

// HasEdge reports whether a and b are directly connected.
func (w *World) HasEdge(a, b world.Coord) bool {
	return w.graph.HasEdge(a, b)
}

// Degree returns the number of connections at c.
func (w *World) Degree(c world.Coord) int {
	return w.graph.Degree(c)
}

// NumNodes returns the number of cells across all areas.
func (w *World) NumNodes() int {
	return w.graph.NumNodes()
}

// NumEdges returns the number of lattice and doorway edges.
func (w *World) NumEdges() int {
	return w.graph.NumEdges()
}

// Altitude returns the altitude of c and whether c exists.
func (w *World) Altitude(c world.Coord) (float64, bool) {
	return w.graph.Altitude(c)
}

// Topology returns a copy of the cell graph.
func (w *World) Topology() *world.Graph {
	return w.graph.Clone()
}

func (w *World) checkArea(area int) error {
	if area < 0 || area > w.NumArea() {
		return fmt.Errorf("%w: area %d", world.ErrNotFound, area)
	}
	return nil
}

// warn logs a warning with fields and returns it.
func (w *World) warn(wr *world.Warning, fields logrus.Fields) *world.Warning {
	w.log.WithFields(fields).Warn(wr.Err.Error())
	return wr
}
