// Package agent defines the interfaces shared by agents and policies
package agent

import (
	"github.com/samuelfneumann/racetrack/timestep"
)

// Policy represents a policy over a discrete action space.
//
// Policies determine how agents select actions. Off-policy agents
// usually have a target and behaviour policy. A target policy should
// reference the same value estimates that the agent's learner updates
// so that any changes the learner makes are reflected in the actions
// the Policy chooses.
type Policy interface {
	// Probabilities returns the probability of selecting each action
	// in the argument state. The returned slice has one entry per
	// action, is non-negative, and sums to 1.
	Probabilities(s timestep.State) []float64

	// SelectAction selects an action in the argument state
	SelectAction(s timestep.State) int
}
