package tracker

import (
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/racetrack/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the TimeSteps of an episode with the argument rewards
func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, ts.State{}, 0)}
	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		steps = append(steps, ts.New(stepType, r, 1, ts.State{}, i+1))
	}
	return steps
}

func track(tr Tracker, episodes ...[]ts.TimeStep) {
	for _, e := range episodes {
		for _, step := range e {
			tr.Track(step)
		}
	}
}

var _ Tracker = &Return{}
var _ Tracker = &EpisodeLength{}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	r := NewReturn(filename)

	track(r, episode(-1, -1, -1), episode(2, 0.5))
	assert.Equal(t, []float64{-3, 2.5}, r.Data())

	require.NoError(t, r.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 2.5}, data)
}

func TestReturnPanicsOnNonSequentialSteps(t *testing.T) {
	r := NewReturn("unused")
	r.Track(ts.New(ts.First, 0, 1, ts.State{}, 0))

	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, 0, 1, ts.State{}, 2))
	})
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	e := NewEpisodeLength(filename)

	track(e, episode(-1, -1, -1), episode(0), episode(1, 1))
	assert.Equal(t, []int{3, 1, 2}, e.Data())

	require.NoError(t, e.Save())
	data, err := LoadLengths(filename)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, data)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)

	_, err = LoadLengths(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
