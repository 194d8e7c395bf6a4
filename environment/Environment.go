// Package environment outlines the interfaces and structs needed to
// implement concrete episodic environments with discrete states and
// actions
package environment

import (
	"github.com/samuelfneumann/racetrack/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() timestep.State
}

// Ender determines when episodes should be ended. If End() returns true,
// it must also set the StepType of the argument TimeStep to
// timestep.Last and record the reason the episode ended with SetEnd().
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated, episodic environment with a
// discrete action space.
//
// Actions are enumerated (0, 1, 2, ... NumActions()-1) and the number
// of actions is fixed for the lifetime of the Environment. Errors
// returned by Reset() or Step() describe failures of the environment
// itself, reaching the end of an episode is never an error.
type Environment interface {
	// Reset begins a new episode and returns its first TimeStep
	Reset() (timestep.TimeStep, error)

	// Step takes one environmental step with the argument action,
	// returning the next TimeStep and whether the episode has ended
	Step(action int) (timestep.TimeStep, bool, error)

	// NumActions returns the size of the discrete action space
	NumActions() int
}
