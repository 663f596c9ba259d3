package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/layout"
	"neugym/pkg/game/recorder"
)

type scriptedReader struct {
	codes []string
}

func (r *scriptedReader) ReadCode() (string, error) {
	if len(r.codes) == 0 {
		return "", io.EOF
	}
	c := r.codes[0]
	r.codes = r.codes[1:]
	return c, nil
}

func testOptions() options {
	o, _ := parseFlags(nil)
	o.noColor = true
	return o
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-mode", "rollout", "-episodes", "3", "-store", "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "rollout", o.mode)
	assert.Equal(t, 3, o.episodes)
	assert.Equal(t, "sqlite", o.store)
	assert.Equal(t, "layouts/two_rooms.yaml", o.layout)

	_, err = parseFlags([]string{"-bogus"})
	assert.Error(t, err)
}

func TestPlay_StepCheckpointReset(t *testing.T) {
	log, _ := test.NewNullLogger()
	w, err := buildWorld(testOptions(), log)
	require.NoError(t, err)

	var out bytes.Buffer
	in := &scriptedReader{codes: []string{"s", "c", "arrow_up", "r", "?", "dance", "q", "s"}}
	require.NoError(t, play(w, in, &out, true, false))

	assert.Contains(t, out.String(), "South: reward 0.5 at (0, 2, 1)")
	assert.Contains(t, out.String(), "checkpoint saved at time 1")
	assert.Contains(t, out.String(), "Move North")
	assert.Contains(t, out.String(), "unknown command")
	assert.Len(t, in.codes, 1, "input after quit is not read")

	a, ok := w.Agent()
	require.True(t, ok)
	assert.Equal(t, world.C(0, 2, 1), a.Current)
	assert.Equal(t, 1, w.Time())
}

func TestPlay_EndOfInput(t *testing.T) {
	log, _ := test.NewNullLogger()
	w, err := buildWorld(testOptions(), log)
	require.NoError(t, err)
	require.NoError(t, play(w, &scriptedReader{}, io.Discard, true, false))
}

func TestRun_Dump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testOptions(), &out))
	assert.Contains(t, out.String(), "Origin (3, 3)")
	assert.Contains(t, out.String(), "Area 2 (3, 3)")
}

func TestRun_RolloutExport(t *testing.T) {
	o := testOptions()
	o.mode = "rollout"
	o.episodes = 3
	o.maxSteps = 20
	o.export = filepath.Join(t.TempDir(), "run.jsonl.zst")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, &out))
	assert.Contains(t, out.String(), "episode 2:")
	assert.Contains(t, out.String(), "mean return")

	ts, err := recorder.ImportFile(o.export)
	require.NoError(t, err)
	require.NotEmpty(t, ts)
	assert.Equal(t, 1, ts[0].Time)
}

func TestRun_UnknownMode(t *testing.T) {
	o := testOptions()
	o.mode = "fly"
	assert.Error(t, run(context.Background(), o, io.Discard))
}

func TestRun_Generate(t *testing.T) {
	o := testOptions()
	o.mode = "generate"
	o.level = 3
	o.gen = "chain"

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, &out))
	assert.Contains(t, out.String(), "# Chain, level 3, seed 1")

	l, err := layout.Parse(out.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, l.Areas)
	assert.True(t, l.Checkpoint)
}
