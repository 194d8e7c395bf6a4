// Package metrics implements Prometheus instrumentation of training
// runs.
//
// All metrics are registered with the Registerer passed to NewTraining,
// so that separate training runs (and tests) can use separate
// registries. Metric operations are safe for concurrent use, which
// allows a /metrics endpoint to be scraped while training runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "racetrack"
	subsystem = "training"
)

// Training holds the metrics of a single training run
type Training struct {
	// EpisodesTotal counts generated episodes by how they ended.
	// Labels: end (terminal, timeout)
	EpisodesTotal *prometheus.CounterVec

	// EpisodeSteps measures the number of steps in generated episodes
	EpisodeSteps prometheus.Histogram

	// UpdatesTotal counts state-action pairs updated by backward passes
	UpdatesTotal prometheus.Counter

	// TruncationsTotal counts backward passes that stopped before the
	// first step of their episode
	TruncationsTotal prometheus.Counter

	// TableStates is the number of states with action-value estimates
	TableStates prometheus.Gauge
}

// Episode end labels
const (
	EndTerminal = "terminal"
	EndTimeout  = "timeout"
)

// NewTraining creates the training metrics and registers them with reg
func NewTraining(reg prometheus.Registerer) *Training {
	factory := promauto.With(reg)

	return &Training{
		EpisodesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "episodes_total",
			Help:      "Total number of generated episodes by end type",
		}, []string{"end"}),

		EpisodeSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "episode_steps",
			Help:      "Number of steps in generated episodes",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		UpdatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "updates_total",
			Help:      "Total number of state-action value updates",
		}),

		TruncationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "truncations_total",
			Help:      "Total number of backward passes stopped early",
		}),

		TableStates: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "table_states",
			Help:      "Number of states with action-value estimates",
		}),
	}
}

// RecordEpisode records a generated episode of the argument number of
// steps and the backward pass over it
func (t *Training) RecordEpisode(steps int, terminal bool, updated int,
	truncated bool) {
	end := EndTimeout
	if terminal {
		end = EndTerminal
	}
	t.EpisodesTotal.WithLabelValues(end).Inc()
	t.EpisodeSteps.Observe(float64(steps))
	t.UpdatesTotal.Add(float64(updated))
	if truncated {
		t.TruncationsTotal.Inc()
	}
}

// SetTableStates sets the number of states in the action-value table
func (t *Training) SetTableStates(n int) {
	t.TableStates.Set(float64(n))
}
