package generator

import (
	"math/rand"

	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/layout"
)

// ChainGenerator walks a line of areas: each new area hangs off the last one.
type ChainGenerator struct{}

// Name returns the name of this generator
func (g *ChainGenerator) Name() string {
	return "Chain"
}

// Generate creates a new layout for the given level
func (g *ChainGenerator) Generate(level int, rng *rand.Rand) (*layout.Layout, error) {
	return generate(level, rng, func(w *gridworld.World, _ *rand.Rand) int {
		return w.NumArea()
	})
}
