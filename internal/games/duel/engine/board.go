// Package engine implements the 7x7 tile-merging board, its move function,
// terminal detection, the static evaluator and the alpha-beta move search.
// It has no dependency on rendering, storage or the terminal.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the fixed board dimension.
const Size = 7

// Board is a Size x Size grid of tile values. 0 is an empty cell, every other
// value is a power of two >= 2. Board is a value type: assigning it copies it.
type Board [Size][Size]int

// Cell addresses a board position.
type Cell struct {
	Row int
	Col int
}

var (
	// ErrBadDimensions is returned when input rows do not form a Size x Size grid.
	ErrBadDimensions = errors.New("engine: board must be 7x7")
	// ErrBadTile is returned when a cell is neither 0 nor a power of two >= 2.
	ErrBadTile = errors.New("engine: tile must be 0 or a power of two >= 2")
)

// FromRows builds a Board from a row-major slice of slices.
func FromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: got %d rows", ErrBadDimensions, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrBadDimensions, r, len(row))
		}
		for c, v := range row {
			if !ValidTile(v) {
				return b, fmt.Errorf("%w: %d at (%d,%d)", ErrBadTile, v, r, c)
			}
			b[r][c] = v
		}
	}
	return b, nil
}

// ValidTile reports whether v may appear in a board cell.
func ValidTile(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Get returns the value at the given position.
func (b Board) Get(row, col int) int {
	return b[row][col]
}

// Rows returns a copy of the grid as slices, for rendering and serialization.
func (b Board) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range Size {
		rows[r] = make([]int, Size)
		copy(rows[r], b[r][:])
	}
	return rows
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells.
func (b Board) EmptyCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the largest tile on the board, 0 for an empty board.
func (b Board) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] > maxVal {
				maxVal = b[r][c]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += b[r][c]
		}
	}
	return total
}

// String renders the board as right-aligned rows, mainly for test output.
func (b Board) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			s := strconv.Itoa(b[r][c])
			sb.WriteString(strings.Repeat(" ", max(0, 4-len(s))))
			sb.WriteString(s)
		}
	}
	return sb.String()
}
