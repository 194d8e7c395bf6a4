// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StateDims is the number of integer components packed into a State
const StateDims int = 4

// State is a discrete, hashable state identifier. Environments pack
// their state variables (e.g. position and velocity) into the
// components of a State. Learning algorithms treat a State as an
// opaque key and never look at its components.
type State [StateDims]int

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	Unknown EndType = iota
	TerminalStateReached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation State
	Number      int
	end         EndType
}

// New constructs a new TimeStep
func New(t StepType, r, d float64, o State, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// SetEnd sets the reason the episode ended on this TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// EndType returns the reason the episode ended on this TimeStep. If
// the TimeStep is not the last in its episode, Unknown is returned.
func (t *TimeStep) EndType() EndType {
	return t.end
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  State: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.Observation)
}
