package gridworld

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/world"
)

// Object is a payout source. Reaching it pays Reward with probability Prob,
// otherwise Punish, and ends the episode.
type Object struct {
	At     world.Coord
	Reward float64
	Punish float64
	Prob   float64
}

func (o Object) String() string {
	return fmt.Sprintf("Object(coord=%v, reward=%g, punish=%g, prob=%g)", o.At, o.Reward, o.Punish, o.Prob)
}

// Field names an updatable Object field.
type Field string

// Updatable object fields.
const (
	FieldReward Field = "reward"
	FieldPunish Field = "punish"
	FieldProb   Field = "prob"
)

// ObjectUpdate sets one field of an object.
type ObjectUpdate struct {
	Field Field
	Value float64
}

// Set is shorthand for ObjectUpdate{Field: f, Value: v}.
func Set(f Field, v float64) ObjectUpdate {
	return ObjectUpdate{Field: f, Value: v}
}

func checkProb(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: probability %g outside [0, 1]", world.ErrValidation, p)
	}
	return nil
}

// AddObject places an object on an existing cell. A cell holds at most one object.
func (w *World) AddObject(at world.Coord, reward, prob, punish float64) error {
	if !w.graph.HasNode(at) {
		return fmt.Errorf("%w: coordinate %v out of world", world.ErrValidation, at)
	}
	if err := checkProb(prob); err != nil {
		return err
	}
	if _, ok := w.objAt[at.Key()]; ok {
		return fmt.Errorf("%w: object already exists at %v", world.ErrOverwrite, at)
	}
	w.objects = append(w.objects, Object{At: at, Reward: reward, Punish: punish, Prob: prob})
	w.objAt[at.Key()] = len(w.objects) - 1
	return nil
}

// RemoveObject deletes the object at a cell.
func (w *World) RemoveObject(at world.Coord) error {
	i, ok := w.objectIndex(at)
	if !ok {
		return fmt.Errorf("%w: no object found at %v", world.ErrNotFound, at)
	}
	w.objects = append(w.objects[:i], w.objects[i+1:]...)
	w.reindexObjects()
	return nil
}

// UpdateObject applies updates to the object at a cell. Updates naming an
// unknown field are skipped and reported in a *world.Warning; the others are
// still applied.
func (w *World) UpdateObject(at world.Coord, updates ...ObjectUpdate) error {
	i, ok := w.objectIndex(at)
	if !ok {
		return fmt.Errorf("%w: no object found at %v", world.ErrNotFound, at)
	}

	o := w.objects[i]
	var unknown []string
	for _, u := range updates {
		switch u.Field {
		case FieldReward:
			o.Reward = u.Value
		case FieldPunish:
			o.Punish = u.Value
		case FieldProb:
			if err := checkProb(u.Value); err != nil {
				return err
			}
			o.Prob = u.Value
		default:
			unknown = append(unknown, string(u.Field))
		}
	}
	w.objects[i] = o

	if len(unknown) > 0 {
		return w.warn(world.Warnf(world.ErrUnknownField, "object has no field %s, ignored", strings.Join(unknown, ", ")),
			logrus.Fields{"at": at.String(), "field": unknown})
	}
	return nil
}

// Objects returns the objects in insertion order.
func (w *World) Objects() []Object {
	out := make([]Object, len(w.objects))
	copy(out, w.objects)
	return out
}

// ObjectAt returns the object at a cell.
func (w *World) ObjectAt(at world.Coord) (Object, bool) {
	i, ok := w.objectIndex(at)
	if !ok {
		return Object{}, false
	}
	return w.objects[i], true
}

func (w *World) objectIndex(at world.Coord) (int, bool) {
	if at.Validate() != nil {
		return 0, false
	}
	i, ok := w.objAt[at.Key()]
	return i, ok
}

func (w *World) reindexObjects() {
	w.objAt = make(map[world.Key]int, len(w.objects))
	for i, o := range w.objects {
		w.objAt[o.At.Key()] = i
	}
}
