package engine

// IsOver reports whether the board has no empty cell and no direction
// changes it. Each trial works on a copy; b itself is never modified.
func IsOver(b Board) bool {
	if b.EmptyCount() > 0 {
		return false
	}
	for _, d := range Directions {
		if _, moved := Apply(b, d); moved {
			return false
		}
	}
	return true
}

// HasWon reports whether any cell holds exactly the target value.
func HasWon(b Board, target int) bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == target {
				return true
			}
		}
	}
	return false
}
