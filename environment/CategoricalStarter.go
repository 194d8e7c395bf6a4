package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/racetrack/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled uniformly at
// random from a fixed set of candidate starting states.
type CategoricalStarter struct {
	states []timestep.State
	seed   uint64
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// each of the argument states with equal probability
func NewCategoricalStarter(states []timestep.State,
	seed uint64) (*CategoricalStarter, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: at least one " +
			"starting state is required")
	}

	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	candidates := make([]timestep.State, len(states))
	copy(candidates, states)

	return &CategoricalStarter{
		states: candidates,
		seed:   seed,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() timestep.State {
	return c.states[int(c.rand.Rand())]
}

// States returns the candidate starting states
func (c *CategoricalStarter) States() []timestep.State {
	states := make([]timestep.State, len(c.states))
	copy(states, c.states)
	return states
}
