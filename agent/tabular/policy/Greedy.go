package policy

import (
	"github.com/samuelfneumann/racetrack/agent/tabular/table"
	ts "github.com/samuelfneumann/racetrack/timestep"
	"gonum.org/v1/gonum/floats"
)

// Greedy implements a deterministic greedy policy with respect to a
// table of action values.
//
// Greedy holds a reference to the table, not a copy of it, so that
// updates to the table are immediately reflected in the actions chosen
// by the policy. Reading action values through a Greedy policy never
// modifies the table.
type Greedy struct {
	q *table.Table
}

// NewGreedy returns a new Greedy policy over the action values q
func NewGreedy(q *table.Table) *Greedy {
	return &Greedy{q}
}

// GreedyAction returns the action with the highest value in the
// argument state. Ties are broken in favour of the lowest action.
func (g *Greedy) GreedyAction(s ts.State) int {
	return floats.MaxIdx(g.q.Row(s))
}

// Probabilities returns the one-hot distribution over actions which
// selects the greedy action with probability 1
func (g *Greedy) Probabilities(s ts.State) []float64 {
	probs := make([]float64, g.q.NumActions())
	probs[g.GreedyAction(s)] = 1.0
	return probs
}

// SelectAction selects the greedy action
func (g *Greedy) SelectAction(s ts.State) int {
	return g.GreedyAction(s)
}

// Table returns the action values the policy is greedy with respect to
func (g *Greedy) Table() *table.Table {
	return g.q
}
