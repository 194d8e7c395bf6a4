package mcoff

import (
	"errors"

	ts "github.com/samuelfneumann/racetrack/timestep"
)

var errScripted = errors.New("scripted failure")

// chainEnv walks through states {0}, {1}, ... receiving rewards[t] on
// step t. If terminal, the episode ends after len(rewards) steps,
// otherwise it never ends.
type chainEnv struct {
	numActions int
	rewards    []float64
	terminal   bool

	failReset bool
	failStep  int // Step number to fail on, 0 to never fail

	t       int
	resets  int
	actions []int
}

func (c *chainEnv) Reset() (ts.TimeStep, error) {
	if c.failReset {
		return ts.TimeStep{}, errScripted
	}
	c.t = 0
	c.resets++
	return ts.New(ts.First, 0, 1, ts.State{0, 0, 0, 0}, 0), nil
}

func (c *chainEnv) Step(action int) (ts.TimeStep, bool, error) {
	if c.failStep > 0 && c.t+1 == c.failStep {
		return ts.TimeStep{}, false, errScripted
	}
	c.actions = append(c.actions, action)

	reward := 0.0
	if c.t < len(c.rewards) {
		reward = c.rewards[c.t]
	}
	c.t++

	step := ts.New(ts.Mid, reward, 1, ts.State{c.t, 0, 0, 0}, c.t)
	if c.terminal && c.t >= len(c.rewards) {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
		return step, true, nil
	}
	return step, false, nil
}

func (c *chainEnv) NumActions() int {
	return c.numActions
}

// scriptedPolicy selects a fixed sequence of actions, repeating the
// last, and reports fixed action probabilities
type scriptedPolicy struct {
	actions []int
	probs   []float64
	i       int
}

func (s *scriptedPolicy) Probabilities(ts.State) []float64 {
	probs := make([]float64, len(s.probs))
	copy(probs, s.probs)
	return probs
}

func (s *scriptedPolicy) SelectAction(ts.State) int {
	a := s.actions[len(s.actions)-1]
	if s.i < len(s.actions) {
		a = s.actions[s.i]
	}
	s.i++
	return a
}

func uniform(numActions int) []float64 {
	probs := make([]float64, numActions)
	for i := range probs {
		probs[i] = 1.0 / float64(numActions)
	}
	return probs
}

func state(i int) ts.State {
	return ts.State{i, 0, 0, 0}
}
