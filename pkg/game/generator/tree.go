package generator

import (
	"math/rand"

	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/layout"
)

// TreeGenerator hangs every new area off a random existing one, giving a
// branching world.
type TreeGenerator struct{}

// Name returns the name of this generator
func (g *TreeGenerator) Name() string {
	return "Random Tree"
}

// Generate creates a new layout for the given level
func (g *TreeGenerator) Generate(level int, rng *rand.Rand) (*layout.Layout, error) {
	return generate(level, rng, func(w *gridworld.World, rng *rand.Rand) int {
		return rng.Intn(w.NumArea() + 1)
	})
}
