// Package policy implements policies over tabular value estimates
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	ts "github.com/samuelfneumann/racetrack/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform implements the uniform random policy, which selects each
// action with equal probability in every state.
type Uniform struct {
	numActions int
	dist       distuv.Categorical
}

// NewUniform returns a new Uniform policy over numActions actions
func NewUniform(numActions int, seed uint64) *Uniform {
	if numActions < 1 {
		panic(fmt.Sprintf("newUniform: number of actions must be "+
			"positive but got %v", numActions))
	}

	source := rand.NewSource(seed)
	probs := uniform(numActions)

	return &Uniform{
		numActions: numActions,
		dist:       distuv.NewCategorical(probs, source),
	}
}

// Probabilities returns the probability of selecting each action,
// which is 1/numActions regardless of the argument state
func (u *Uniform) Probabilities(ts.State) []float64 {
	return uniform(u.numActions)
}

// SelectAction samples an action uniformly at random
func (u *Uniform) SelectAction(ts.State) int {
	return int(u.dist.Rand())
}

func uniform(numActions int) []float64 {
	probs := make([]float64, numActions)
	for i := range probs {
		probs[i] = 1.0 / float64(numActions)
	}
	return probs
}
