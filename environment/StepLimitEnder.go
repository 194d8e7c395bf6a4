package environment

import (
	"fmt"

	"github.com/samuelfneumann/racetrack/timestep"
)

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit. Episodes are
// ended once episodeSteps steps have been taken.
func NewStepLimit(episodeSteps int) StepLimit {
	if episodeSteps < 1 {
		panic(fmt.Sprintf("newStepLimit: step limit must be positive "+
			"but got %v", episodeSteps))
	}
	return StepLimit{episodeSteps}
}

// Limit returns the number of steps after which episodes are ended
func (s StepLimit) Limit() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is timestep.Timeout. Steps that
// have already ended for another reason are left untouched.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Last() {
		return true
	}
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
