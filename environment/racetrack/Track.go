package racetrack

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/racetrack/timestep"
)

// ErrInvalidTrack is returned when a track layout cannot be used
var ErrInvalidTrack = errors.New("invalid track")

// Cell is a single cell of a racetrack
type Cell rune

const (
	Wall   Cell = 'W'
	Road   Cell = 'o'
	Start  Cell = '-'
	Finish Cell = '+'
)

func (c Cell) String() string {
	switch c {
	case Wall:
		return "Wall"
	case Road:
		return "Road"
	case Start:
		return "Start"
	case Finish:
		return "Finish"
	default:
		return fmt.Sprintf("Cell(%q)", rune(c))
	}
}

// DefaultTrack is a small right-turning track. Cars start on the bottom
// row and must reach the finish cells on the right edge.
var DefaultTrack = []string{
	"WWWWWWWWWWWWWWWWWW",
	"WWWWooooooooooooo+",
	"WWWoooooooooooooo+",
	"WWWoooooooooooooo+",
	"WWooooooooooooooo+",
	"Woooooooooooooooo+",
	"Woooooooooooooooo+",
	"WooooooooooWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WoooooooooWWWWWWWW",
	"WWooooooooWWWWWWWW",
	"WWooooooooWWWWWWWW",
	"WWooooooooWWWWWWWW",
	"WWooooooooWWWWWWWW",
	"WWWoooooooWWWWWWWW",
	"WWWoooooooWWWWWWWW",
	"WWWoooooooWWWWWWWW",
	"WWWWooooooWWWWWWWW",
	"WWWW------WWWWWWWW",
}

// Track is a rectangular grid of cells. Row 0 is the top of the track,
// column 0 its left edge.
type Track struct {
	cells  [][]Cell
	starts []timestep.State
}

// NewTrack creates a new Track from rows of cell runes. Every row must
// have the same length, only the runes 'W', 'o', '-', and '+' may be
// used, and the track must contain at least one start and one finish
// cell.
func NewTrack(rows []string) (*Track, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("newTrack: no rows: %w", ErrInvalidTrack)
	}

	width := len(rows[0])
	cells := make([][]Cell, len(rows))
	var starts []timestep.State
	finishes := 0

	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("newTrack: row %d has length %d, want %d: "+
				"%w", r, len(row), width, ErrInvalidTrack)
		}

		cells[r] = make([]Cell, width)
		for c := 0; c < width; c++ {
			cell := Cell(row[c])
			switch cell {
			case Start:
				starts = append(starts, timestep.State{r, c, 0, 0})
			case Finish:
				finishes++
			case Wall, Road:
			default:
				return nil, fmt.Errorf("newTrack: unknown cell %q at (%d, %d): "+
					"%w", row[c], r, c, ErrInvalidTrack)
			}
			cells[r][c] = cell
		}
	}

	if len(starts) == 0 {
		return nil, fmt.Errorf("newTrack: no start cells: %w", ErrInvalidTrack)
	}
	if finishes == 0 {
		return nil, fmt.Errorf("newTrack: no finish cells: %w",
			ErrInvalidTrack)
	}

	return &Track{cells: cells, starts: starts}, nil
}

// Dims returns the number of rows and columns of the track
func (t *Track) Dims() (r, c int) {
	return len(t.cells), len(t.cells[0])
}

// At returns the cell at (row, col). Positions outside the track are
// walls.
func (t *Track) At(row, col int) Cell {
	r, c := t.Dims()
	if row < 0 || row >= r || col < 0 || col >= c {
		return Wall
	}
	return t.cells[row][col]
}

// Starts returns the starting states of the track: every start cell
// with zero velocity
func (t *Track) Starts() []timestep.State {
	starts := make([]timestep.State, len(t.starts))
	copy(starts, t.starts)
	return starts
}
