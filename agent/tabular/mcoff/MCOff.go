// Package mcoff implements off-policy Monte Carlo control with weighted
// importance sampling.
//
// Episodes are generated with a behaviour policy, and the action values
// of a greedy target policy are estimated from these episodes. After
// each episode, the episode is traversed backwards, accumulating the
// return G and the importance sampling ratio W:
//
//	G ← γG + R
//	C(S, A) ← C(S, A) + W
//	Q(S, A) ← Q(S, A) + W/C(S, A) [G - Q(S, A)]
//	if A ≠ argmax Q(S, ·) then stop
//	W ← W / b(A|S)
//
// where C holds the cumulative sum of importance sampling weights for
// each state-action pair and b is the behaviour policy. Since the
// target policy is greedy, the importance sampling ratio of all steps
// earlier than a step whose action differs from the greedy action is
// zero, so the backward pass stops at such a step.
//
// The behaviour policy must select every action it can take with
// non-zero probability. If a taken action has zero probability, W
// becomes +Inf and the action values become non-finite.
package mcoff

import (
	"fmt"

	"github.com/samuelfneumann/racetrack/agent"
	"github.com/samuelfneumann/racetrack/agent/tabular/policy"
	"github.com/samuelfneumann/racetrack/agent/tabular/table"
	"github.com/samuelfneumann/racetrack/environment"
	ts "github.com/samuelfneumann/racetrack/timestep"
)

// Result summarizes the backward pass over a single trajectory
type Result struct {
	// Updated is the number of state-action pairs that were updated
	Updated int

	// Truncated is whether the pass stopped early because the behaviour
	// action differed from the greedy action
	Truncated bool

	// Return is the return accumulated at the earliest updated step
	Return float64
}

// MCOff implements off-policy Monte Carlo control using weighted
// importance sampling
type MCOff struct {
	q, c      *table.Table
	behaviour agent.Policy
	target    *policy.Greedy

	discount float64
	maxSteps int
}

// New creates a new MCOff agent which learns about a greedy target
// policy in env by following the behaviour policy. The action-value and
// weight tables start empty.
func New(env environment.Environment, behaviour agent.Policy,
	c Config) (*MCOff, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %v", err)
	}
	if behaviour == nil {
		return nil, fmt.Errorf("new: behaviour policy cannot be nil")
	}

	numActions := env.NumActions()
	if numActions < 1 {
		return nil, fmt.Errorf("new: environment must have at least one "+
			"action but has %v", numActions)
	}

	q := table.New(numActions)
	weights := table.New(numActions)

	return &MCOff{
		q:         q,
		c:         weights,
		behaviour: behaviour,
		target:    policy.NewGreedy(q),
		discount:  c.Discount,
		maxSteps:  c.MaxSteps,
	}, nil
}

// Q returns the action-value estimates of the target policy
func (m *MCOff) Q() *table.Table {
	return m.q
}

// C returns the cumulative importance sampling weights of each
// state-action pair
func (m *MCOff) C() *table.Table {
	return m.c
}

// Target returns the greedy target policy, which is bound to Q()
func (m *MCOff) Target() *policy.Greedy {
	return m.target
}

// Behaviour returns the behaviour policy used to generate episodes
func (m *MCOff) Behaviour() agent.Policy {
	return m.behaviour
}

// Update performs the weighted importance sampling update of the action
// values using a trajectory generated by the behaviour policy. The
// trajectory is processed from its last step to its first, stopping
// early at the first (latest) step whose action is not the greedy
// action after that step's update.
func (m *MCOff) Update(episode Trajectory) Result {
	g, w := 0.0, 1.0
	var result Result

	for i := len(episode) - 1; i >= 0; i-- {
		step := episode[i]
		s, a := step.State, step.Action

		g = m.discount*g + step.Reward

		// Weighted incremental mean, C(s, a) >= w > 0 after the increment
		cumulative := m.c.Add(s, a, w)
		estimate := m.q.At(s, a)
		m.q.Set(s, a, estimate+(w/cumulative)*(g-estimate))

		result.Updated++
		result.Return = g

		if a != m.target.GreedyAction(s) {
			result.Truncated = true
			break
		}

		w *= 1.0 / m.behaviour.Probabilities(s)[a]
	}

	return result
}

// RunEpisode generates a single episode using the behaviour policy and
// updates the action values with it. If observer is non-nil, it
// receives every TimeStep of the episode.
func (m *MCOff) RunEpisode(env environment.Environment,
	observer func(ts.TimeStep)) (Trajectory, Result, error) {
	episode, err := GenerateEpisode(env, m.behaviour, m.maxSteps, observer)
	if err != nil {
		return episode, Result{}, fmt.Errorf("runEpisode: %w", err)
	}

	return episode, m.Update(episode), nil
}

// Learn runs the argument number of episodes, updating the action
// values after each
func (m *MCOff) Learn(env environment.Environment, episodes int) error {
	for i := 0; i < episodes; i++ {
		if _, _, err := m.RunEpisode(env, nil); err != nil {
			return fmt.Errorf("learn: episode %v: %w", i, err)
		}
	}
	return nil
}

// Control runs off-policy Monte Carlo control in env for the argument
// number of episodes, generating episodes of at most maxSteps steps with
// the behaviour policy. It returns the learned action values and the
// greedy target policy bound to them.
func Control(env environment.Environment, episodes int,
	behaviour agent.Policy, discount float64,
	maxSteps int) (*table.Table, *policy.Greedy, error) {
	config := Config{
		Episodes: episodes,
		MaxSteps: maxSteps,
		Discount: discount,
	}

	m, err := New(env, behaviour, config)
	if err != nil {
		return nil, nil, fmt.Errorf("control: %w", err)
	}

	if err := m.Learn(env, episodes); err != nil {
		return m.Q(), m.Target(), fmt.Errorf("control: %w", err)
	}

	return m.Q(), m.Target(), nil
}
