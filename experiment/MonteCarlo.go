package experiment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/racetrack/agent/tabular/mcoff"
	env "github.com/samuelfneumann/racetrack/environment"
	"github.com/samuelfneumann/racetrack/experiment/checkpointer"
	"github.com/samuelfneumann/racetrack/experiment/tracker"
	"github.com/samuelfneumann/racetrack/metrics"
	ts "github.com/samuelfneumann/racetrack/timestep"
)

// Option configures a MonteCarlo experiment
type Option func(*MonteCarlo)

// WithCheckpointer checkpoints the agent after every episode using c
func WithCheckpointer(c checkpointer.Checkpointer) Option {
	return func(m *MonteCarlo) {
		m.checkpointers = append(m.checkpointers, c)
	}
}

// WithMetrics records training metrics
func WithMetrics(t *metrics.Training) Option {
	return func(m *MonteCarlo) {
		m.metrics = t
	}
}

// WithLogger sets the logger used to report progress
func WithLogger(l *slog.Logger) Option {
	return func(m *MonteCarlo) {
		m.logger = l
	}
}

// WithLogEvery logs a progress summary every n episodes. A value of 0
// disables progress summaries.
func WithLogEvery(n int) Option {
	return func(m *MonteCarlo) {
		m.logEvery = n
	}
}

// MonteCarlo is an experiment which runs an off-policy Monte Carlo
// control agent for a fixed number of episodes. The agent learns after
// each episode it generates.
//
// Every TimeStep the agent sees is sent to the registered Trackers, the
// agent is checkpointed after each episode, and training metrics are
// recorded if configured.
type MonteCarlo struct {
	env.Environment
	agent *mcoff.MCOff

	episodes       int
	currentEpisode int

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	metrics       *metrics.Training

	logger   *slog.Logger
	logEvery int

	// Statistics since the last progress summary
	terminal, truncated, steps int
}

// NewMonteCarlo creates and returns a new MonteCarlo experiment which
// runs agent on e for the argument number of episodes, sending each
// TimeStep to the argument Trackers.
func NewMonteCarlo(e env.Environment, agent *mcoff.MCOff, episodes int,
	t []tracker.Tracker, opts ...Option) *MonteCarlo {
	m := &MonteCarlo{
		Environment: e,
		agent:       agent,
		episodes:    episodes,
		trackers:    t,
		logger:      slog.Default(),
		logEvery:    defaultLogEvery(episodes),
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// defaultLogEvery logs ten progress summaries per experiment
func defaultLogEvery(episodes int) int {
	if episodes < 10 {
		return 1
	}
	return episodes / 10
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (m *MonteCarlo) Register(t tracker.Tracker) {
	m.trackers = append(m.trackers, t)
}

// Agent returns the agent being trained
func (m *MonteCarlo) Agent() *mcoff.MCOff {
	return m.agent
}

// Episodes returns the number of episodes that have been run
func (m *MonteCarlo) Episodes() int {
	return m.currentEpisode
}

// Done returns whether all episodes of the experiment have been run
func (m *MonteCarlo) Done() bool {
	return m.currentEpisode >= m.episodes
}

// RunEpisode runs a single episode of the experiment and updates the
// agent with it
func (m *MonteCarlo) RunEpisode() error {
	var last ts.TimeStep
	observer := func(step ts.TimeStep) {
		m.track(step)
		last = step
	}

	episode, result, err := m.agent.RunEpisode(m.Environment, observer)
	if err != nil {
		return fmt.Errorf("runEpisode: episode %v: %w", m.currentEpisode, err)
	}
	m.currentEpisode++

	terminal := last.EndType() == ts.TerminalStateReached
	if m.metrics != nil {
		m.metrics.RecordEpisode(len(episode), terminal, result.Updated,
			result.Truncated)
		m.metrics.SetTableStates(m.agent.Q().Len())
	}

	m.steps += len(episode)
	if terminal {
		m.terminal++
	}
	if result.Truncated {
		m.truncated++
	}

	for _, c := range m.checkpointers {
		if err := c.Checkpoint(m.currentEpisode); err != nil {
			return fmt.Errorf("runEpisode: could not checkpoint: %w", err)
		}
	}

	if m.logEvery > 0 && m.currentEpisode%m.logEvery == 0 {
		m.logProgress()
	}
	return nil
}

// logProgress logs a summary of the episodes run since the last
// summary and resets the summary statistics
func (m *MonteCarlo) logProgress() {
	m.logger.Info("training progress",
		"episode", m.currentEpisode,
		"of", m.episodes,
		"mean_steps", float64(m.steps)/float64(m.logEvery),
		"terminal", m.terminal,
		"truncated", m.truncated,
		"states", m.agent.Q().Len(),
	)
	m.steps, m.terminal, m.truncated = 0, 0, 0
}

// Run runs all remaining episodes of the experiment
func (m *MonteCarlo) Run() error {
	m.logger.Info("starting experiment", "episodes", m.episodes,
		"actions", m.NumActions())

	for !m.Done() {
		if err := m.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	m.logger.Info("finished experiment", "episodes", m.currentEpisode,
		"states", m.agent.Q().Len())
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (m *MonteCarlo) Save() error {
	var errs []error
	for _, t := range m.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// track tracks the current timestep by caching its data in each Tracker
func (m *MonteCarlo) track(t ts.TimeStep) {
	for _, tr := range m.trackers {
		tr.Track(t)
	}
}
