package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/layout"
)

func build(t *testing.T, l *layout.Layout) *gridworld.World {
	t.Helper()
	w, err := l.Build(gridworld.WithLogger(quietLogger()))
	require.NoError(t, err)
	return w
}

func TestGenerate_BuildsConnectedWorlds(t *testing.T) {
	for _, g := range []LayoutGenerator{Tree, Chain} {
		for level := 1; level <= 8; level++ {
			l, err := g.Generate(level, rand.New(rand.NewSource(int64(level))))
			require.NoError(t, err, "%s level %d", g.Name(), level)

			w := build(t, l)
			assert.True(t, w.Topology().IsConnected(), "%s level %d", g.Name(), level)
			assert.True(t, w.HasResetCheckpoint())

			a, ok := w.Agent()
			require.True(t, ok)
			assert.Equal(t, 0, a.Init.Area)
			assert.LessOrEqual(t, len(l.Areas), min(level+1, maxAreas))
			if w.NumNodes() > 1 {
				require.NotEmpty(t, l.Objects)
				goal, err := world.ParseCoord(l.Objects[0].At)
				require.NoError(t, err)
				assert.NotEqual(t, a.Init, goal)
			}
		}
	}
}

func TestGenerate_GoalIsFurthestCell(t *testing.T) {
	l, err := Tree.Generate(4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	w := build(t, l)

	a, _ := w.Agent()
	dist := w.Topology().Distances(a.Init)
	goal, err := world.ParseCoord(l.Objects[0].At)
	require.NoError(t, err)
	for c, d := range dist {
		assert.LessOrEqual(t, d, dist[goal], "cell %v", c)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Tree.Generate(5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Tree.Generate(5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerate_RoundTripsThroughYAML(t *testing.T) {
	l, err := Chain.Generate(3, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	parsed, err := layout.Parse([]byte(l.String()))
	require.NoError(t, err)
	assert.Equal(t, build(t, l).String(), build(t, parsed).String())
}

func TestChain_EachAreaHangsOffThePrevious(t *testing.T) {
	l, err := Chain.Generate(6, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	for i, a := range l.Areas {
		assert.Equal(t, i, a.AccessFrom[0], "area %d", i+1)
	}
}

func TestGenerate_RejectsLevelZero(t *testing.T) {
	_, err := Tree.Generate(0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, world.ErrValidation)
}

func TestByName(t *testing.T) {
	g, err := ByName("chain")
	require.NoError(t, err)
	assert.Equal(t, "Chain", g.Name())
	g, err = ByName("")
	require.NoError(t, err)
	assert.Same(t, DefaultGenerator, g)
	_, err = ByName("bsp")
	assert.ErrorIs(t, err, world.ErrValidation)
}
