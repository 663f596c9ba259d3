// Package generator builds random world layouts whose size and difficulty
// grow with a level number.
package generator

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/layout"
)

// LayoutGenerator is an interface for layout generation algorithms
type LayoutGenerator interface {
	Generate(level int, rng *rand.Rand) (*layout.Layout, error)
	Name() string
}

// Available generators
var (
	Tree  = &TreeGenerator{}
	Chain = &ChainGenerator{}
)

// DefaultGenerator is the default layout generator
var DefaultGenerator LayoutGenerator = Tree

// ByName returns the generator registered under name.
func ByName(name string) (LayoutGenerator, error) {
	switch name {
	case "", "tree":
		return Tree, nil
	case "chain":
		return Chain, nil
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", world.ErrValidation, name)
	}
}

// Constants for layout generation
const (
	maxAreas    = 12
	maxSide     = 8
	maxAttempts = 16
	goalReward  = 10
	goalPunish  = -1
	minGoalProb = 0.5
	decoyReward = 1
	decoyProb   = 0.3
)

// parentFunc picks the area a new area hangs off.
type parentFunc func(w *gridworld.World, rng *rand.Rand) int

// builder grows a scratch world alongside the layout so every step it
// records is known to build.
type builder struct {
	level int
	rng   *rand.Rand
	w     *gridworld.World
	l     *layout.Layout
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// side scales an area edge with level, capped at maxSide.
func side(level int, rng *rand.Rand) int {
	return min(2+rng.Intn(1+level/2), maxSide)
}

func generate(level int, rng *rand.Rand, parent parentFunc) (*layout.Layout, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: level must be at least 1, got %d", world.ErrValidation, level)
	}
	origin := world.Shape{Rows: side(level, rng), Cols: side(level, rng)}
	w, err := gridworld.New(origin, nil, gridworld.WithLogger(quietLogger()))
	if err != nil {
		return nil, err
	}
	b := &builder{
		level: level,
		rng:   rng,
		w:     w,
		l:     &layout.Layout{Origin: layout.Origin{Shape: []int{origin.Rows, origin.Cols}}},
	}

	for i := 0; i < min(level+1, maxAreas); i++ {
		b.addArea(parent)
	}
	for i := 0; i < level/2; i++ {
		b.addLoop()
	}
	b.placeAgentAndObjects()
	b.l.Checkpoint = true

	// Replaying the recorded steps must give the same world.
	if _, err := b.l.Build(gridworld.WithLogger(quietLogger())); err != nil {
		return nil, fmt.Errorf("generated layout does not build: %w", err)
	}
	return b.l, nil
}

func (b *builder) randomCell(area int) world.Coord {
	s, _ := b.w.AreaShape(area)
	return world.C(area, b.rng.Intn(s.Rows), b.rng.Intn(s.Cols))
}

func (b *builder) addArea(parent parentFunc) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		from := b.randomCell(parent(b.w, b.rng))
		shape := world.Shape{Rows: side(b.level, b.rng), Cols: side(b.level, b.rng)}
		toX, toY := b.rng.Intn(shape.Rows), b.rng.Intn(shape.Cols)
		_, err := b.w.AddArea(shape, gridworld.AccessFrom(from), gridworld.AccessTo(toX, toY))
		if err != nil {
			continue
		}
		b.l.Areas = append(b.l.Areas, layout.Area{
			Shape:      []int{shape.Rows, shape.Cols},
			AccessFrom: from.Ints(),
			AccessTo:   []int{toX, toY},
		})
		return
	}
}

// addLoop joins two random cells of different areas, giving the world a cycle.
func (b *builder) addLoop() {
	if b.w.NumArea() == 0 {
		return
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		a1 := b.rng.Intn(b.w.NumArea() + 1)
		a2 := b.rng.Intn(b.w.NumArea() + 1)
		if a1 == a2 {
			continue
		}
		from, to := b.randomCell(a1), b.randomCell(a2)
		if err := b.w.AddPath(from, to, world.AutoDirection); err != nil {
			continue
		}
		b.l.Paths = append(b.l.Paths, layout.Path{From: from.Ints(), To: to.Ints()})
		return
	}
}

// placeAgentAndObjects starts the agent in the origin and puts the goal on
// the cell furthest from it. Decoys go on random free cells.
func (b *builder) placeAgentAndObjects() {
	start := b.randomCell(0)
	b.l.Agent = &layout.Agent{Init: start.Ints()}

	dist := b.w.Topology().Distances(start)
	cells := make([]world.Coord, 0, len(dist))
	for c := range dist {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })

	goal := start
	for _, c := range cells {
		if dist[c] > dist[goal] {
			goal = c
		}
	}
	if goal == start {
		// Single-cell world, nothing to reach.
		return
	}
	taken := map[world.Coord]bool{start: true, goal: true}
	b.l.Objects = append(b.l.Objects, layout.Object{
		At:     goal.Ints(),
		Reward: goalReward,
		Punish: goalPunish,
		Prob:   max(minGoalProb, 1-0.05*float64(b.level-1)),
	})

	for i := 0; i < b.level/2; i++ {
		c := cells[b.rng.Intn(len(cells))]
		if taken[c] {
			continue
		}
		taken[c] = true
		b.l.Objects = append(b.l.Objects, layout.Object{At: c.Ints(), Reward: decoyReward, Prob: decoyProb})
	}
}
