// Package table implements lazily-initialized tabular value stores
// keyed by discrete states.
package table

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/racetrack/timestep"
)

// Table stores one row of numActions floating point values per state.
// A Table is used both for action-value estimates and for cumulative
// importance sampling weights.
//
// Rows are created lazily: a state which has never been written to is
// treated as a row of zeroes. Reading a row never inserts it, so
// evaluating a policy over a Table does not grow the Table. Every row
// stored in a Table has exactly numActions entries.
//
// A Table is not safe for concurrent use.
type Table struct {
	numActions int
	rows       map[ts.State][]float64
}

// New returns a new, empty Table with numActions values per state
func New(numActions int) *Table {
	if numActions < 1 {
		panic(fmt.Sprintf("new: number of actions must be positive but "+
			"got %v", numActions))
	}

	return &Table{
		numActions: numActions,
		rows:       make(map[ts.State][]float64),
	}
}

// NumActions returns the number of values stored per state
func (t *Table) NumActions() int {
	return t.numActions
}

// Len returns the number of states which have been written to
func (t *Table) Len() int {
	return len(t.rows)
}

// Has returns whether the argument state has been written to
func (t *Table) Has(s ts.State) bool {
	_, ok := t.rows[s]
	return ok
}

// States returns all states which have been written to, in no
// particular order
func (t *Table) States() []ts.State {
	states := make([]ts.State, 0, len(t.rows))
	for s := range t.rows {
		states = append(states, s)
	}
	return states
}

// Row returns a copy of the values stored for a state. If the state
// has never been written to, a row of zeroes is returned and the Table
// is not modified.
func (t *Table) Row(s ts.State) []float64 {
	row := make([]float64, t.numActions)
	if stored, ok := t.rows[s]; ok {
		copy(row, stored)
	}
	return row
}

// At returns the value stored for action a in state s
func (t *Table) At(s ts.State, a int) float64 {
	t.checkAction(a)
	if row, ok := t.rows[s]; ok {
		return row[a]
	}
	return 0.0
}

// Set sets the value stored for action a in state s
func (t *Table) Set(s ts.State, a int, value float64) {
	t.checkAction(a)
	t.row(s)[a] = value
}

// Add adds delta to the value stored for action a in state s and
// returns the new value
func (t *Table) Add(s ts.State, a int, delta float64) float64 {
	t.checkAction(a)
	row := t.row(s)
	row[a] += delta
	return row[a]
}

// row returns the stored row for a state, inserting a row of zeroes if
// the state has never been written to
func (t *Table) row(s ts.State) []float64 {
	row, ok := t.rows[s]
	if !ok {
		row = make([]float64, t.numActions)
		t.rows[s] = row
	}
	return row
}

func (t *Table) checkAction(a int) {
	if a < 0 || a >= t.numActions {
		panic(fmt.Sprintf("action %v out of range [0, %v)", a,
			t.numActions))
	}
}

// encodedTable is the serialized representation of a Table
type encodedTable struct {
	NumActions int
	States     []ts.State
	Values     [][]float64
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table) GobEncode() ([]byte, error) {
	enc := encodedTable{
		NumActions: t.numActions,
		States:     make([]ts.State, 0, len(t.rows)),
		Values:     make([][]float64, 0, len(t.rows)),
	}
	for s, row := range t.rows {
		enc.States = append(enc.States, s)
		enc.Values = append(enc.Values, row)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(enc); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode table: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *Table) GobDecode(data []byte) error {
	var enc encodedTable
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&enc); err != nil {
		return fmt.Errorf("gobDecode: could not decode table: %v", err)
	}

	if enc.NumActions < 1 {
		return fmt.Errorf("gobDecode: number of actions must be positive "+
			"but got %v", enc.NumActions)
	}
	if len(enc.States) != len(enc.Values) {
		return fmt.Errorf("gobDecode: %v states but %v rows",
			len(enc.States), len(enc.Values))
	}

	rows := make(map[ts.State][]float64, len(enc.States))
	for i, s := range enc.States {
		if len(enc.Values[i]) != enc.NumActions {
			return fmt.Errorf("gobDecode: row for state %v has length %v, "+
				"want %v", s, len(enc.Values[i]), enc.NumActions)
		}
		row := make([]float64, enc.NumActions)
		copy(row, enc.Values[i])
		rows[s] = row
	}

	t.numActions = enc.NumActions
	t.rows = rows
	return nil
}

// Save saves the Table to a file
func (t *Table) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(t); err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	return nil
}

// Load loads and returns a Table saved with Save
func Load(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	t := &Table{}
	if err := gob.NewDecoder(file).Decode(t); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %v", err)
	}
	return t, nil
}
