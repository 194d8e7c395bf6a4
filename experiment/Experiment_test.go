package experiment

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samuelfneumann/racetrack/agent/tabular/table"
	"github.com/samuelfneumann/racetrack/experiment/tracker"
	"github.com/samuelfneumann/racetrack/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallTrack = []string{
	"WWWW+",
	"Wooo+",
	"Wooo+",
	"W---W",
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o644))
	return filename
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfig(t, `
agent:
  episodes: 25
  max_steps: 40
environment:
  noise: 0.2
  seed: 9
  track:
    - "WWWW+"
    - "Wooo+"
    - "W---W"
checkpoint_every: 5
`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.Equal(t, 25, c.Agent.Episodes)
	assert.Equal(t, 40, c.Agent.MaxSteps)
	assert.Equal(t, 1.0, c.Agent.Discount, "missing fields keep defaults")
	assert.Equal(t, 0.2, c.Environment.Noise)
	assert.Equal(t, uint64(9), c.Environment.Seed)
	assert.Len(t, c.Environment.Rows, 3)
	assert.Equal(t, 5, c.CheckpointEvery)
	assert.Equal(t, "q", c.CheckpointPrefix)
	assert.Equal(t, 10, c.EvalEpisodes)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "agent: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "agent:\n  discount: 1.5\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "checkpoint_every: 1\n"+
		"checkpoint_prefix: \"\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestCreateEnvUsesAgentDiscount(t *testing.T) {
	c := DefaultConfig()
	c.Agent.Discount = 0.9
	c.Environment.Rows = smallTrack

	e, err := c.CreateEnv()
	require.NoError(t, err)
	assert.Equal(t, 0.9, e.CurrentTimeStep().Discount)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	c := DefaultConfig()
	c.Agent.Episodes = 20
	c.Agent.MaxSteps = 30
	c.Agent.Seed = 4
	c.Environment.Rows = smallTrack
	c.Environment.Seed = 2
	c.CheckpointEvery = 10
	c.CheckpointPrefix = filepath.Join(dir, "q")
	c.ReturnsFile = filepath.Join(dir, "returns.bin")
	c.LengthsFile = filepath.Join(dir, "lengths.bin")

	m := metrics.NewTraining(prometheus.NewRegistry())
	exp, err := c.CreateExp(WithMetrics(m), WithLogger(discard()))
	require.NoError(t, err)

	require.NoError(t, exp.Run())
	require.NoError(t, exp.Save())
	assert.True(t, exp.Done())
	assert.Equal(t, 20, exp.Episodes())

	returns, err := tracker.LoadData(c.ReturnsFile)
	require.NoError(t, err)
	lengths, err := tracker.LoadLengths(c.LengthsFile)
	require.NoError(t, err)

	require.Len(t, returns, 20)
	require.Len(t, lengths, 20)
	for i := range returns {
		// Every step is rewarded with -1
		assert.Equal(t, -float64(lengths[i]), returns[i])
		assert.LessOrEqual(t, lengths[i], 30)
		assert.GreaterOrEqual(t, lengths[i], 1)
	}

	for _, name := range []string{"q-1.gob", "q-2.gob"} {
		q, err := table.Load(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, 9, q.NumActions())
	}
	assert.NoFileExists(t, filepath.Join(dir, "q-3.gob"))

	episodes := testutil.ToFloat64(m.EpisodesTotal.WithLabelValues(
		metrics.EndTerminal)) + testutil.ToFloat64(
		m.EpisodesTotal.WithLabelValues(metrics.EndTimeout))
	assert.Equal(t, 20.0, episodes)
	assert.Equal(t, float64(exp.Agent().Q().Len()),
		testutil.ToFloat64(m.TableStates))
}

func TestRunEpisode(t *testing.T) {
	c := DefaultConfig()
	c.Agent.Episodes = 3
	c.Agent.MaxSteps = 10
	c.Environment.Rows = smallTrack

	exp, err := c.CreateExp(WithLogger(discard()), WithLogEvery(0))
	require.NoError(t, err)

	lengths := tracker.NewEpisodeLength(filepath.Join(t.TempDir(), "l.bin"))
	exp.Register(lengths)

	for i := 0; i < 3; i++ {
		assert.False(t, exp.Done())
		require.NoError(t, exp.RunEpisode())
	}
	assert.True(t, exp.Done())
	assert.Len(t, lengths.Data(), 3)
	assert.Greater(t, exp.Agent().Q().Len(), 0)
}

func TestEvaluate(t *testing.T) {
	c := DefaultConfig()
	c.Agent.Episodes = 50
	c.Agent.MaxSteps = 25
	c.Environment.Rows = smallTrack

	exp, err := c.CreateExp(WithLogger(discard()))
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	q := exp.Agent().Q()
	states := q.Len()

	returns, err := Evaluate(exp, exp.Agent().Target(), 5, 25)
	require.NoError(t, err)

	require.Len(t, returns, 5)
	for _, r := range returns {
		assert.LessOrEqual(t, r, -1.0)
		assert.GreaterOrEqual(t, r, -25.0)
	}
	assert.Equal(t, states, q.Len(), "evaluation should not grow Q")
}
