package layout

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
)

func quiet() gridworld.Option {
	log, _ := test.NewNullLogger()
	return gridworld.WithLogger(log)
}

func TestLoad_TwoRooms(t *testing.T) {
	l, err := Load("testdata/two_rooms.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, l.Origin.Shape)
	require.Len(t, l.Areas, 2)
	assert.Equal(t, "east", l.Areas[0].Via)
	require.NotNil(t, l.Agent)

	w, err := l.Build(quiet())
	require.NoError(t, err)
	assert.Equal(t, 2, w.NumArea())
	assert.Equal(t, 9+8+9, w.NumNodes())
	assert.Equal(t, 12+10+12+3, w.NumEdges())

	aliases := w.Aliases()
	assert.Len(t, aliases, 6)
	assert.Equal(t, world.C(1, 0, 0), aliases[world.C(0, 2, 3)])
	assert.Equal(t, world.C(2, 0, 0), aliases[world.C(1, 2, 3)])
	assert.Equal(t, world.C(2, 2, 2), aliases[world.C(0, -1, 0)])

	o, ok := w.ObjectAt(world.C(2, 2, 1))
	require.True(t, ok)
	assert.Equal(t, gridworld.Object{At: world.C(2, 2, 1), Reward: 10, Punish: -1, Prob: 0.8}, o)

	a, ok := w.Agent()
	require.True(t, ok)
	assert.Equal(t, world.C(0, 1, 1), a.Init)
	assert.True(t, w.HasResetCheckpoint())

	alt, ok := w.Altitude(world.C(2, 2, 2))
	require.True(t, ok)
	assert.Equal(t, -0.4, alt)
}

func TestLoad_SampleLayoutMatchesTestdata(t *testing.T) {
	sample, err := Load("../../../layouts/two_rooms.yaml")
	require.NoError(t, err)
	fixture, err := Load("testdata/two_rooms.yaml")
	require.NoError(t, err)
	assert.Equal(t, fixture, sample)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParse_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"coordinate arity": "origin: {shape: [2, 2]}\nagent: {init: [0, 0]}\n",
		"shape arity":      "origin: {shape: [2, 2, 2]}\n",
		"zero shape":       "origin: {shape: [0, 2]}\n",
		"unknown key":      "origin: {shape: [1, 1]}\nportals: []\n",
		"missing origin":   "areas: []\n",
		"bad via":          "origin: {shape: [1, 1]}\nareas: [{shape: [1, 1], via: up}]\n",
		"prob range":       "origin: {shape: [1, 1]}\nobjects: [{at: [0, 0, 0], reward: 1, prob: 2}]\n",
		"empty document":   "",
		"not yaml":         "origin: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, world.ErrValidation)
		})
	}

	_, err := Load("testdata/bad_arity.yaml")
	assert.ErrorIs(t, err, world.ErrValidation)
	assert.Contains(t, err.Error(), "bad_arity.yaml")
}

func TestBuild_NamesFailingEntry(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		kind error
		at   string
	}{
		{
			name: "access_to outside area",
			doc:  "origin: {shape: [1, 1]}\nareas: [{shape: [2, 2], access_to: [5, 5]}]\n",
			kind: world.ErrValidation,
			at:   "areas[0]",
		},
		{
			name: "ragged altitude",
			doc:  "origin: {shape: [2, 2], altitude: [[0, 1], [2]]}\n",
			kind: world.ErrValidation,
			at:   "origin",
		},
		{
			name: "same area path",
			doc:  "origin: {shape: [2, 2]}\npaths: [{from: [0, 0, 0], to: [0, 1, 1]}]\n",
			kind: world.ErrPermission,
			at:   "paths[0]",
		},
		{
			name: "object off world",
			doc:  "origin: {shape: [1, 1]}\nobjects: [{at: [3, 0, 0], reward: 1, prob: 1}]\n",
			kind: world.ErrValidation,
			at:   "objects[0]",
		},
		{
			name: "agent off world",
			doc:  "origin: {shape: [1, 1]}\nagent: {init: [0, 4, 4]}\n",
			kind: world.ErrValidation,
			at:   "agent",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Parse([]byte(tc.doc))
			require.NoError(t, err)
			_, err = l.Build(quiet())
			assert.ErrorIs(t, err, tc.kind)
			assert.Contains(t, err.Error(), tc.at)
		})
	}
}

func TestLayout_StringRoundTrip(t *testing.T) {
	l, err := Load("testdata/two_rooms.yaml")
	require.NoError(t, err)
	again, err := Parse([]byte(l.String()))
	require.NoError(t, err)
	assert.Equal(t, l, again)
}
