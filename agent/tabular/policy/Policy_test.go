package policy

import (
	"testing"

	"github.com/samuelfneumann/racetrack/agent"
	"github.com/samuelfneumann/racetrack/agent/tabular/table"
	ts "github.com/samuelfneumann/racetrack/timestep"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

var (
	_ agent.Policy = &Uniform{}
	_ agent.Policy = &Greedy{}
)

func TestUniformProbabilities(t *testing.T) {
	u := NewUniform(4, 1)
	probs := u.Probabilities(ts.State{3, 1, 4, 1})

	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, probs)
	assert.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
}

func TestUniformSelectsEveryAction(t *testing.T) {
	u := NewUniform(9, 42)
	counts := make([]int, 9)

	for i := 0; i < 9000; i++ {
		a := u.SelectAction(ts.State{})
		if !assert.True(t, a >= 0 && a < 9, "action %v out of range", a) {
			return
		}
		counts[a]++
	}

	for a, c := range counts {
		assert.Greater(t, c, 700, "action %v selected %v times", a, c)
	}
}

func TestUniformPanicsWithoutActions(t *testing.T) {
	assert.Panics(t, func() { NewUniform(0, 1) })
}

func TestGreedyBreaksTiesTowardsLowestAction(t *testing.T) {
	q := table.New(3)
	s := ts.State{1, 0, 0, 0}
	q.Set(s, 0, 0.2)
	q.Set(s, 1, 0.5)
	q.Set(s, 2, 0.5)

	g := NewGreedy(q)

	assert.Equal(t, 1, g.GreedyAction(s))
	assert.Equal(t, 1, g.SelectAction(s))
	assert.Equal(t, []float64{0, 1, 0}, g.Probabilities(s))
}

func TestGreedyUnseenState(t *testing.T) {
	q := table.New(3)
	g := NewGreedy(q)

	assert.Equal(t, []float64{1, 0, 0}, g.Probabilities(ts.State{9, 9, 9, 9}))
	assert.Equal(t, 0, q.Len(), "evaluating the policy should not grow Q")
}

func TestGreedyReadsLiveTable(t *testing.T) {
	q := table.New(2)
	s := ts.State{}
	g := NewGreedy(q)

	assert.Equal(t, 0, g.GreedyAction(s))

	q.Set(s, 1, 1.0)
	assert.Equal(t, 1, g.GreedyAction(s))

	q.Set(s, 0, 2.0)
	assert.Equal(t, 0, g.GreedyAction(s))
	assert.Same(t, q, g.Table())
}
