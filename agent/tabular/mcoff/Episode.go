package mcoff

import (
	"fmt"

	"github.com/samuelfneumann/racetrack/agent"
	"github.com/samuelfneumann/racetrack/environment"
	ts "github.com/samuelfneumann/racetrack/timestep"
)

// Step is a single step of a trajectory: the action taken in a state
// and the reward received for taking it
type Step struct {
	State  ts.State
	Action int
	Reward float64
}

// Trajectory is the sequence of steps of a single episode, in
// chronological order
type Trajectory []Step

// Return returns the discounted return of the trajectory from its
// first step
func (t Trajectory) Return(discount float64) float64 {
	g := 0.0
	for i := len(t) - 1; i >= 0; i-- {
		g = discount*g + t[i].Reward
	}
	return g
}

// GenerateEpisode runs a single episode in env using the behaviour
// policy to select actions, for at most maxSteps steps. Episodes end
// either when the environment reaches a terminal state or when the
// step budget is exhausted. Both are normal endings, and in both cases
// the entire trajectory is returned.
//
// If observer is non-nil, it is called with every TimeStep of the
// episode, starting with the TimeStep returned by env.Reset(). Errors
// returned by env are wrapped and returned along with the steps taken
// up to that point.
func GenerateEpisode(env environment.Environment, behaviour agent.Policy,
	maxSteps int, observer func(ts.TimeStep)) (Trajectory, error) {
	limit := environment.NewStepLimit(maxSteps)

	step, err := env.Reset()
	if err != nil {
		return nil, fmt.Errorf("generateEpisode: could not reset "+
			"environment: %w", err)
	}
	if observer != nil {
		observer(step)
	}

	episode := make(Trajectory, 0, maxSteps)
	for t := 0; t < maxSteps; t++ {
		state := step.Observation
		action := behaviour.SelectAction(state)

		next, done, err := env.Step(action)
		if err != nil {
			return episode, fmt.Errorf("generateEpisode: could not step "+
				"environment: %w", err)
		}

		episode = append(episode, Step{
			State:  state,
			Action: action,
			Reward: next.Reward,
		})

		// Out of steps, mark the end of the episode for any observer
		if !done && limit.End(&next) {
			done = true
		}
		if observer != nil {
			observer(next)
		}

		if done {
			break
		}
		step = next
	}

	return episode, nil
}
