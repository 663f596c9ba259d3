package renderer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
)

func sampleWorld(t *testing.T) *gridworld.World {
	t.Helper()
	log, _ := test.NewNullLogger()
	w, err := gridworld.New(world.Shape{Rows: 1, Cols: 2}, nil, gridworld.WithLogger(log))
	require.NoError(t, err)
	_, err = w.AddArea(world.Shape{Rows: 2, Cols: 3})
	require.NoError(t, err)
	require.NoError(t, w.AddObject(world.C(1, 1, 2), 1, 1, 0))
	require.NoError(t, w.InitAgent(world.C(0, 0, 1), false))
	return w
}

func TestRender_Plain(t *testing.T) {
	out := Render(sampleWorld(t), Options{NoColor: true, Width: 10})
	want := strings.Join([]string{
		"Origin (1, 2)",
		"+@",
		"──────────",
		"Area 1 (2, 3)",
		"+..",
		"..$",
		"──────────",
		"time 0  areas 2  objects 1  agent (0, 0, 1)",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRender_ColorStripsToPlain(t *testing.T) {
	w := sampleWorld(t)
	plain := Render(w, Options{NoColor: true, Width: 12})
	colored := Render(w, Options{Width: 12})
	assert.Equal(t, plain, color.ClearCode(colored))
}

func TestRender_NoAgentAndNarrowRule(t *testing.T) {
	log, _ := test.NewNullLogger()
	w, err := gridworld.New(world.Shape{Rows: 1, Cols: 1}, nil, gridworld.WithLogger(log))
	require.NoError(t, err)
	out := Render(w, Options{NoColor: true, Width: 1})
	assert.Contains(t, out, strings.Repeat("─", minRuleWidth)+"\n")
	assert.Contains(t, out, "agent none")
}

func TestLegend(t *testing.T) {
	assert.Equal(t, "@ agent  $ object  + doorway  . floor", Legend(true))
	assert.Equal(t, VisibleWidth(Legend(true)), VisibleWidth(Legend(false)))
}

func TestDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dumps", "map.txt")
	require.NoError(t, DumpFile(path, sampleWorld(t)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Area 1 (2, 3)")
	assert.Contains(t, string(b), "GridWorld(")
	assert.NotContains(t, string(b), "\x1b[")
}
