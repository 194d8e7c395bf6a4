package experiment

import (
	"fmt"

	"github.com/samuelfneumann/racetrack/agent"
	"github.com/samuelfneumann/racetrack/agent/tabular/mcoff"
	env "github.com/samuelfneumann/racetrack/environment"
)

// Evaluate runs the argument policy in e for a number of episodes of at
// most maxSteps steps each, without learning, and returns the
// undiscounted return of each episode. It is usually used to score the
// greedy target policy of a trained agent.
func Evaluate(e env.Environment, p agent.Policy, episodes,
	maxSteps int) ([]float64, error) {
	returns := make([]float64, 0, episodes)

	for i := 0; i < episodes; i++ {
		episode, err := mcoff.GenerateEpisode(e, p, maxSteps, nil)
		if err != nil {
			return returns, fmt.Errorf("evaluate: episode %v: %w", i, err)
		}
		returns = append(returns, episode.Return(1.0))
	}

	return returns, nil
}
