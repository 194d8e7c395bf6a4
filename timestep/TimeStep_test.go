package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeStepPredicates(t *testing.T) {
	step := New(First, 0, 1, State{1, 2, 0, 0}, 0)
	assert.True(t, step.First())
	assert.False(t, step.Mid())
	assert.False(t, step.Last())
	assert.Equal(t, Unknown, step.EndType())

	step.StepType = Last
	step.SetEnd(Timeout)
	assert.True(t, step.Last())
	assert.Equal(t, Timeout, step.EndType())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Mid", Mid.String())
	assert.Equal(t, "TerminalStateReached", TerminalStateReached.String())
	assert.Contains(t, New(Mid, -1, 1, State{}, 3).String(), "Step Number:  3")
}
