// Package racetrack implements the racetrack environment.
//
// A car drives on a discrete track towards a finish line. The state of
// the car is its position (row, col) and its velocity (vRow, vCol). On
// each step the agent accelerates or decelerates the car by one unit in
// each direction, so there are 9 actions:
//
//	Action	Row increment	Col increment
//	  0		    -1			    -1
//	  1		    -1			     0
//	  2		    -1			    +1
//	  3		     0			    -1
//	  4		     0			     0
//	  5		     0			    +1
//	  6		    +1			    -1
//	  7		    +1			     0
//	  8		    +1			    +1
//
// Velocity components are non-negative and less than MaxSpeed. The car
// moves up the track by vRow rows and right by vCol columns on each
// step. Both velocity components may only be zero on the start line.
// If the car's path hits a wall or leaves the track, the car is sent
// back to a random start cell with zero velocity. If the car's path
// crosses a finish cell, the episode ends. Each step has a reward of
// -1.
package racetrack

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/racetrack/environment"
	ts "github.com/samuelfneumann/racetrack/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	MaxSpeed   int     = 5
	NumActions int     = 9
	StepReward float64 = -1.0
)

// State component indices
const (
	RowIndex int = iota
	ColIndex
	VRowIndex
	VColIndex
)

// Config describes a racetrack environment
type Config struct {
	// Rows is the track layout, see NewTrack. If empty, DefaultTrack
	// is used.
	Rows []string `yaml:"track"`

	// Noise is the probability that the velocity increments chosen by
	// the agent are ignored on a step
	Noise float64 `yaml:"noise"`

	Discount float64 `yaml:"discount"`
	Seed     uint64  `yaml:"seed"`
}

// Validate ensures the Config is valid
func (c Config) Validate() error {
	if c.Noise < 0 || c.Noise > 1 {
		return fmt.Errorf("noise must be in [0, 1] but got %v", c.Noise)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1] but got %v",
			c.Discount)
	}
	return nil
}

// Racetrack implements the racetrack environment
type Racetrack struct {
	env.Starter
	track *Track

	noise    float64
	noiseRNG distuv.Bernoulli

	discount    float64
	currentStep ts.TimeStep
}

// New creates a new Racetrack environment and returns it along with
// its first TimeStep
func New(c Config) (*Racetrack, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	rows := c.Rows
	if len(rows) == 0 {
		rows = DefaultTrack
	}
	track, err := NewTrack(rows)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	starter, err := env.NewCategoricalStarter(track.Starts(), c.Seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	// Use a different stream for the noise than for the starter
	source := rand.NewSource(c.Seed + 1)

	r := &Racetrack{
		Starter:  starter,
		track:    track,
		noise:    c.Noise,
		noiseRNG: distuv.Bernoulli{P: c.Noise, Src: source},
		discount: c.Discount,
	}

	step, err := r.Reset()
	return r, step, err
}

// Reset resets the environment to a random starting state and returns
// the first TimeStep of the new episode
func (r *Racetrack) Reset() (ts.TimeStep, error) {
	start := r.Start()
	step := ts.New(ts.First, 0, r.discount, start, 0)
	r.currentStep = step

	return step, nil
}

// NumActions returns the number of actions in the environment
func (r *Racetrack) NumActions() int {
	return NumActions
}

// Track returns the track the car drives on
func (r *Racetrack) Track() *Track {
	return r.track
}

// CurrentTimeStep returns the last TimeStep that occurred in the
// environment
func (r *Racetrack) CurrentTimeStep() ts.TimeStep {
	return r.currentStep
}

// Increments returns the row and column velocity increments encoded by
// an action
func Increments(action int) (dRow, dCol int) {
	return action/3 - 1, action%3 - 1
}

// Step takes one environmental step given an action, returning the next
// TimeStep and whether or not the episode has ended. Actions outside
// (0, 1, ... NumActions-1) result in an error.
func (r *Racetrack) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %v "+
			"∉ [0, %v)", action, NumActions)
	}
	if r.currentStep.Last() {
		return ts.TimeStep{}, false, fmt.Errorf("step: episode has ended, " +
			"call Reset() before stepping")
	}

	state := r.currentStep.Observation
	row, col := state[RowIndex], state[ColIndex]
	vRow, vCol := r.nextVelocity(state, action)

	nextStep := ts.New(ts.Mid, StepReward, r.discount, ts.State{},
		r.currentStep.Number+1)

	switch cell, nextRow, nextCol := r.move(row, col, vRow, vCol); cell {
	case Finish:
		nextStep.Observation = ts.State{nextRow, nextCol, vRow, vCol}
		nextStep.StepType = ts.Last
		nextStep.SetEnd(ts.TerminalStateReached)

	case Wall:
		// Collisions send the car back to the start line
		nextStep.Observation = r.Start()

	default:
		nextStep.Observation = ts.State{nextRow, nextCol, vRow, vCol}
	}

	r.currentStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// nextVelocity returns the velocity of the car after taking action in
// state
func (r *Racetrack) nextVelocity(state ts.State, action int) (int, int) {
	vRow, vCol := state[VRowIndex], state[VColIndex]

	dRow, dCol := Increments(action)
	if r.noise > 0 && r.noiseRNG.Rand() == 1.0 {
		dRow, dCol = 0, 0
	}

	newVRow := clip(vRow+dRow, 0, MaxSpeed-1)
	newVCol := clip(vCol+dCol, 0, MaxSpeed-1)

	// The car can only stand still on the start line
	onStart := r.track.At(state[RowIndex], state[ColIndex]) == Start
	if newVRow == 0 && newVCol == 0 && !onStart {
		return vRow, vCol
	}
	return newVRow, newVCol
}

// move moves the car from (row, col) with velocity (vRow, vCol) and
// returns the first finish or wall cell on the car's path, or the cell
// the car lands on if its path is clear, along with the position of
// that cell.
func (r *Racetrack) move(row, col, vRow, vCol int) (Cell, int, int) {
	n := vRow
	if vCol > n {
		n = vCol
	}

	nextRow, nextCol := row, col
	for k := 1; k <= n; k++ {
		nextRow = row - (k*vRow+n/2)/n
		nextCol = col + (k*vCol+n/2)/n

		if cell := r.track.At(nextRow, nextCol); cell == Finish ||
			cell == Wall {
			return cell, nextRow, nextCol
		}
	}
	return r.track.At(nextRow, nextCol), nextRow, nextCol
}

// clip clips an integer to within [min, max]
func clip(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (r *Racetrack) String() string {
	rows, cols := r.track.Dims()
	return fmt.Sprintf("Racetrack | Track: (%d, %d)  |  Noise: %.2f  |  "+
		"%v", rows, cols, r.noise, r.currentStep)
}
