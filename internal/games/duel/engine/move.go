package engine

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in search order. Ties in the search go
// to the earliest entry.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// line is one row or column read in the direction of travel.
type line [Size]int

// mergeLine slides a line toward index 0 and merges equal neighbours.
// A tile produced by a merge is never merged again in the same pass.
// Returns the new line and the sum of merged tile values.
func mergeLine(in line) (out line, score int) {
	writePos := 0
	merged := false // whether out[writePos-1] came from a merge

	for i := range Size {
		if in[i] == 0 {
			continue
		}

		if writePos > 0 && !merged && out[writePos-1] == in[i] {
			out[writePos-1] *= 2
			score += out[writePos-1]
			merged = true
			continue
		}

		out[writePos] = in[i]
		writePos++
		merged = false
	}

	return out, score
}

// readLine extracts line i for the given direction, ordered so that index 0
// is the edge the tiles travel toward.
func readLine(b *Board, d Direction, i int) line {
	var l line
	for k := range Size {
		switch d {
		case Left:
			l[k] = b[i][k]
		case Right:
			l[k] = b[i][Size-1-k]
		case Up:
			l[k] = b[k][i]
		case Down:
			l[k] = b[Size-1-k][i]
		}
	}
	return l
}

// writeLine is the inverse of readLine.
func writeLine(b *Board, d Direction, i int, l line) {
	for k := range Size {
		switch d {
		case Left:
			b[i][k] = l[k]
		case Right:
			b[i][Size-1-k] = l[k]
		case Up:
			b[k][i] = l[k]
		case Down:
			b[Size-1-k][i] = l[k]
		}
	}
}

// ApplyScored performs a move and also returns the sum of merged tiles.
// The input board is never modified.
func ApplyScored(b Board, d Direction) (next Board, score int, moved bool) {
	if d < Up || d > Right {
		return b, 0, false
	}

	for i := range Size {
		l, s := mergeLine(readLine(&b, d, i))
		writeLine(&next, d, i, l)
		score += s
	}

	return next, score, next != b
}

// Apply slides and merges every line of b in direction d.
// moved is true iff the resulting board differs from b. Apply never spawns
// tiles; that is the caller's job after a successful move.
func Apply(b Board, d Direction) (Board, bool) {
	next, _, moved := ApplyScored(b, d)
	return next, moved
}
