package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEpisode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTraining(reg)

	m.RecordEpisode(12, true, 3, true)
	m.RecordEpisode(100, false, 1, false)
	m.RecordEpisode(7, true, 7, false)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.EpisodesTotal.WithLabelValues(EndTerminal)))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.EpisodesTotal.WithLabelValues(EndTimeout)))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.UpdatesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TruncationsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(m.EpisodeSteps))
}

func TestSetTableStates(t *testing.T) {
	m := NewTraining(prometheus.NewRegistry())

	m.SetTableStates(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(m.TableStates))
}

func TestRegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTraining(reg)
	m.RecordEpisode(1, true, 1, false)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "racetrack_training_episodes_total")
	assert.Contains(t, names, "racetrack_training_episode_steps")
	assert.Contains(t, names, "racetrack_training_table_states")

	assert.Panics(t, func() { NewTraining(reg) },
		"registering the same metrics twice should fail")
}
