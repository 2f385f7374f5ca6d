package engine

import "github.com/vovakirdan/tile-duel/internal/core"

// Evaluator scores a board; higher is better for the maximizing side.
type Evaluator interface {
	Evaluate(b Board) float64
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(b Board) float64

// Evaluate calls f(b).
func (f EvaluatorFunc) Evaluate(b Board) float64 {
	return f(b)
}

// Heuristic is the default evaluator: 10*max tile + 2*empty cells + smoothness.
var Heuristic Evaluator = EvaluatorFunc(Evaluate)

// Evaluate returns the static score of b. It is a move-ordering heuristic,
// not a bound on the reachable score.
func Evaluate(b Board) float64 {
	return float64(10*b.MaxTile() + 2*b.EmptyCount() + Smoothness(b))
}

// Smoothness is the negated sum of absolute differences between every pair
// of horizontally and vertically adjacent cells.
func Smoothness(b Board) int {
	rough := 0
	for r := range Size {
		for c := range Size {
			if r+1 < Size {
				rough += core.Abs(b[r][c] - b[r+1][c])
			}
			if c+1 < Size {
				rough += core.Abs(b[r][c] - b[r][c+1])
			}
		}
	}
	return -rough
}
