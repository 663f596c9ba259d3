package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_RoundTripIncludingVirtualCoords(t *testing.T) {
	for _, c := range []Coord{
		C(0, 0, 0),
		C(1, -1, 0),
		C(3, 5, -1),
		C(MaxArea, MaxAxis, MinAxis),
	} {
		require.NoError(t, c.Validate())
		assert.Equal(t, c, c.Key().Coord(), "round trip of %v", c)
		assert.Equal(t, c.Area, c.Key().Area())
	}
}

func TestKey_OrdersLikeCoord(t *testing.T) {
	a, b := C(1, -1, 3), C(1, 0, 0)
	assert.True(t, a.Less(b))
	assert.Less(t, uint64(a.Key()), uint64(b.Key()))
	assert.Less(t, uint64(C(0, 9, 9).Key()), uint64(C(1, -1, -1).Key()))
}

func TestParseCoord_Arity(t *testing.T) {
	_, err := ParseCoord([]int{0, 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseCoord([]int{-1, 0, 0})
	assert.ErrorIs(t, err, ErrValidation)

	c, err := ParseCoord([]int{2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, C(2, 1, 0), c)
}

func TestAddLattice_CountsNodesAndEdges(t *testing.T) {
	cases := []struct {
		shape        Shape
		nodes, edges int
	}{
		{Shape{1, 1}, 1, 0},
		{Shape{2, 2}, 4, 4},
		{Shape{3, 3}, 9, 12},
		{Shape{5, 5}, 25, 40},
		{Shape{2, 4}, 8, 10},
	}
	for _, tc := range cases {
		t.Run(tc.shape.String(), func(t *testing.T) {
			g, err := NewLattice(0, tc.shape)
			require.NoError(t, err)
			assert.Equal(t, tc.nodes, g.NumNodes())
			assert.Equal(t, tc.edges, g.NumEdges())
			assert.Len(t, g.Edges(), tc.edges)
			assert.True(t, g.IsConnected())
		})
	}
}

func TestAddLattice_RejectsOccupiedArea(t *testing.T) {
	g, err := NewLattice(1, Shape{2, 2})
	require.NoError(t, err)
	assert.ErrorIs(t, g.AddLattice(1, Shape{1, 1}), ErrOverwrite)
	assert.ErrorIs(t, g.AddLattice(2, Shape{0, 3}), ErrValidation)
}

func TestAddEdge_DegreeBudget(t *testing.T) {
	g, err := NewLattice(0, Shape{3, 3})
	require.NoError(t, err)
	require.NoError(t, g.AddLattice(1, Shape{1, 1}))

	center := C(0, 1, 1)
	assert.Equal(t, 4, g.Degree(center))
	err = g.AddEdge(center, C(1, 0, 0))
	assert.ErrorIs(t, err, ErrConnectivity)

	corner := C(0, 0, 0)
	require.NoError(t, g.AddEdge(corner, C(1, 0, 0)))
	assert.Equal(t, 3, g.Degree(corner))
	assert.True(t, g.HasEdge(C(1, 0, 0), corner))

	assert.ErrorIs(t, g.AddEdge(corner, C(1, 0, 0)), ErrOverwrite)
	assert.ErrorIs(t, g.AddEdge(corner, corner), ErrValidation)
	assert.ErrorIs(t, g.AddEdge(corner, C(7, 0, 0)), ErrNotFound)
}

func TestBridges_PathAndCycle(t *testing.T) {
	// 1x3 path: both edges are bridges.
	g, err := NewLattice(0, Shape{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		NewEdge(C(0, 0, 0), C(0, 0, 1)),
		NewEdge(C(0, 0, 1), C(0, 0, 2)),
	}, g.Bridges())

	// 2x2 cycle: no bridges.
	g, err = NewLattice(0, Shape{2, 2})
	require.NoError(t, err)
	assert.Empty(t, g.Bridges())

	// Cycle plus a pendant area: only the pendant edge is a bridge.
	require.NoError(t, g.AddLattice(1, Shape{1, 1}))
	require.NoError(t, g.AddEdge(C(0, 1, 1), C(1, 0, 0)))
	assert.Equal(t, []Edge{NewEdge(C(0, 1, 1), C(1, 0, 0))}, g.Bridges())
	assert.True(t, g.IsBridge(C(1, 0, 0), C(0, 1, 1)))
	assert.False(t, g.IsBridge(C(0, 0, 0), C(0, 0, 1)))
	assert.False(t, g.IsBridge(C(0, 0, 0), C(1, 0, 0)), "not an edge")
}

func TestBridges_AgreeWithIsBridge(t *testing.T) {
	g, err := NewLattice(0, Shape{3, 4})
	require.NoError(t, err)
	require.NoError(t, g.AddLattice(1, Shape{2, 2}))
	require.NoError(t, g.AddLattice(2, Shape{1, 3}))
	require.NoError(t, g.AddEdge(C(0, 2, 3), C(1, 0, 0)))
	require.NoError(t, g.AddEdge(C(1, 1, 1), C(2, 0, 0)))
	require.NoError(t, g.AddEdge(C(2, 0, 2), C(0, 0, 0)))

	bridges := make(map[Edge]bool)
	for _, e := range g.Bridges() {
		bridges[e] = true
	}
	for _, e := range g.Edges() {
		assert.Equal(t, bridges[e], g.IsBridge(e.A, e.B), "edge %v", e)
	}
}

func TestRemoveEdge_RefusesBridge(t *testing.T) {
	g, err := NewLattice(0, Shape{1, 2})
	require.NoError(t, err)
	before := g.Clone()

	err = g.RemoveEdge(C(0, 0, 0), C(0, 0, 1))
	assert.True(t, errors.Is(err, ErrConnectivity))
	assert.True(t, g.Equal(before))

	assert.ErrorIs(t, g.RemoveEdge(C(0, 0, 0), C(0, 0, 5)), ErrNotFound)
}

func TestRemoveEdge_OnCycle(t *testing.T) {
	g, err := NewLattice(0, Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, g.RemoveEdge(C(0, 0, 0), C(0, 0, 1)))
	assert.Equal(t, 3, g.NumEdges())
	assert.True(t, g.IsConnected())
	assert.Len(t, g.Bridges(), 3)
}

func TestRemoveNode_DropsIncidentEdges(t *testing.T) {
	g, err := NewLattice(0, Shape{3, 3})
	require.NoError(t, err)
	assert.True(t, g.RemoveNode(C(0, 1, 1)))
	assert.False(t, g.RemoveNode(C(0, 1, 1)))
	assert.Equal(t, 8, g.NumNodes())
	assert.Equal(t, 8, g.NumEdges())
	assert.Equal(t, 2, g.Degree(C(0, 0, 1)))
}

func TestWithoutArea_RelabelsAndLeavesReceiver(t *testing.T) {
	g, err := NewLattice(0, Shape{1, 1})
	require.NoError(t, err)
	require.NoError(t, g.AddLattice(1, Shape{2, 2}))
	require.NoError(t, g.AddLattice(2, Shape{3, 3}))
	require.NoError(t, g.AddEdge(C(0, 0, 0), C(1, 0, 0)))
	require.NoError(t, g.AddEdge(C(0, 0, 0), C(2, 0, 0)))
	require.NoError(t, g.SetAltitude(C(2, 2, 2), 7))
	before := g.Clone()

	out := g.WithoutArea(1)
	assert.True(t, g.Equal(before), "receiver must not change")
	assert.Equal(t, 10, out.NumNodes())
	assert.Equal(t, 13, out.NumEdges())
	assert.True(t, out.HasEdge(C(0, 0, 0), C(1, 0, 0)))
	alt, ok := out.Altitude(C(1, 2, 2))
	require.True(t, ok)
	assert.Equal(t, 7.0, alt)
	assert.False(t, out.HasNode(C(2, 0, 0)))
	assert.True(t, out.IsConnected())

	assert.False(t, g.WithoutArea(0).IsConnected())
}

func TestCloneIsDeep(t *testing.T) {
	g, err := NewLattice(0, Shape{2, 2})
	require.NoError(t, err)
	cp := g.Clone()
	require.NoError(t, g.SetAltitude(C(0, 0, 0), 3))
	require.NoError(t, g.RemoveEdge(C(0, 0, 0), C(0, 1, 0)))

	alt, _ := cp.Altitude(C(0, 0, 0))
	assert.Equal(t, 0.0, alt)
	assert.True(t, cp.HasEdge(C(0, 0, 0), C(0, 1, 0)))
	assert.False(t, g.Equal(cp))
}

func TestIsConnected_Disjoint(t *testing.T) {
	g := NewGraph()
	assert.True(t, g.IsConnected())
	require.NoError(t, g.AddNode(C(0, 0, 0)))
	require.NoError(t, g.AddNode(C(1, 0, 0)))
	assert.False(t, g.IsConnected())
	require.NoError(t, g.AddEdge(C(0, 0, 0), C(1, 0, 0)))
	assert.True(t, g.IsConnected())
}

func TestDistances_FollowsDoorways(t *testing.T) {
	g, err := NewLattice(0, Shape{1, 3})
	require.NoError(t, err)
	require.NoError(t, g.AddLattice(1, Shape{2, 1}))
	require.NoError(t, g.AddEdge(C(0, 0, 2), C(1, 0, 0)))

	d := g.Distances(C(0, 0, 0))
	assert.Len(t, d, 5)
	assert.Equal(t, 0, d[C(0, 0, 0)])
	assert.Equal(t, 3, d[C(1, 0, 0)])
	assert.Equal(t, 4, d[C(1, 1, 0)])
	assert.Nil(t, g.Distances(C(4, 0, 0)))
}
