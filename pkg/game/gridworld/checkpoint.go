package gridworld

import (
	"fmt"
	"maps"
	"slices"

	"neugym/pkg/engine/world"
)

// Snapshot is a deep copy of a world's mutable state. It does not hold the
// reset checkpoint.
type Snapshot struct {
	graph   *world.Graph
	time    int
	areas   []world.Shape
	alias   map[world.Key]world.Key
	objects []Object
	agent   *Agent
}

func (s *Snapshot) clone() *Snapshot {
	out := &Snapshot{
		graph:   s.graph.Clone(),
		time:    s.time,
		areas:   slices.Clone(s.areas),
		alias:   maps.Clone(s.alias),
		objects: slices.Clone(s.objects),
	}
	if s.agent != nil {
		a := *s.agent
		out.agent = &a
	}
	return out
}

// Time returns the step counter held by the snapshot.
func (s *Snapshot) Time() int {
	return s.time
}

// Equal reports whether two snapshots hold the same state.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s.time != o.time || !slices.Equal(s.areas, o.areas) || !maps.Equal(s.alias, o.alias) ||
		!slices.Equal(s.objects, o.objects) || !s.graph.Equal(o.graph) {
		return false
	}
	if s.agent == nil || o.agent == nil {
		return s.agent == o.agent
	}
	return *s.agent == *o.agent
}

// Snapshot captures the current state. Later mutations do not affect it.
func (w *World) Snapshot() *Snapshot {
	live := &Snapshot{
		graph:   w.graph,
		time:    w.time,
		areas:   w.areas,
		alias:   w.alias,
		objects: w.objects,
		agent:   w.agent,
	}
	return live.clone()
}

// Restore replaces the current state with a copy of s. s stays reusable.
func (w *World) Restore(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", world.ErrValidation)
	}
	cp := s.clone()
	w.graph = cp.graph
	w.time = cp.time
	w.areas = cp.areas
	w.alias = cp.alias
	w.objects = cp.objects
	w.agent = cp.agent
	w.reindexObjects()
	return nil
}

// SetResetCheckpoint records the state Reset returns to. An existing
// checkpoint is only replaced when overwrite is set.
func (w *World) SetResetCheckpoint(overwrite bool) error {
	if w.checkpoint != nil && !overwrite {
		return fmt.Errorf("%w: reset state already exists, set overwrite to replace it", world.ErrOverwrite)
	}
	w.checkpoint = w.Snapshot()
	w.log.WithField("time", w.time).Debug("reset checkpoint set")
	return nil
}

// HasResetCheckpoint reports whether a checkpoint is set.
func (w *World) HasResetCheckpoint() bool {
	return w.checkpoint != nil
}

// Reset restores the checkpointed state.
func (w *World) Reset() error {
	if w.checkpoint == nil {
		return fmt.Errorf("%w: reset state not found, set a reset checkpoint first", world.ErrCheckpoint)
	}
	return w.Restore(w.checkpoint)
}
