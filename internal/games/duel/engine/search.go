package engine

import "math"

// Stats counts the work done by one search.
type Stats struct {
	Nodes   int // boards visited, including leaves
	Cutoffs int // alpha-beta prunes
}

// Result is the outcome of a root search.
type Result struct {
	Dir   Direction
	Score float64
	OK    bool // false when no move was chosen
	Stats Stats

	// Children holds the score of every legal root direction, in
	// Directions order.
	Children []Child
}

// Child is the search score of one root direction.
type Child struct {
	Dir   Direction
	Score float64
}

// Searcher runs a depth-bounded minimax with alpha-beta pruning.
//
// Both plies explore moves of the same board owner: maximizing and
// minimizing frames alternate over the owner's own continuations. Random
// tile spawns are not modelled, so the search is fully deterministic.
type Searcher struct {
	Eval Evaluator
}

// NewSearcher creates a searcher using eval, or Heuristic when eval is nil.
func NewSearcher(eval Evaluator) *Searcher {
	if eval == nil {
		eval = Heuristic
	}
	return &Searcher{Eval: eval}
}

// BestMove returns the direction with the highest search score.
// It returns false for depth <= 0 and when no direction changes the board.
func (s *Searcher) BestMove(b Board, depth int) (Direction, bool) {
	res := s.Search(b, depth)
	return res.Dir, res.OK
}

// Search is BestMove with the root score and search statistics.
// Every root child is searched at depth-1 with a full window, and only a
// strictly greater score replaces the current best, so ties go to the
// first direction in Directions order.
func (s *Searcher) Search(b Board, depth int) Result {
	var res Result
	if depth <= 0 {
		return res
	}

	res.Score = math.Inf(-1)
	for _, d := range Directions {
		child, moved := Apply(b, d)
		if !moved {
			continue
		}
		score := s.minimax(child, depth-1, false, math.Inf(-1), math.Inf(1), &res.Stats)
		res.Children = append(res.Children, Child{Dir: d, Score: score})
		if !res.OK || score > res.Score {
			res.Dir = d
			res.Score = score
			res.OK = true
		}
	}

	if !res.OK {
		res.Score = 0
	}
	return res
}

func (s *Searcher) minimax(b Board, depth int, maximizing bool, alpha, beta float64, st *Stats) float64 {
	st.Nodes++

	if depth == 0 || IsOver(b) {
		return s.Eval.Evaluate(b)
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	explored := false

	for _, d := range Directions {
		child, moved := Apply(b, d)
		if !moved {
			continue
		}
		explored = true

		score := s.minimax(child, depth-1, !maximizing, alpha, beta, st)
		if maximizing {
			best = math.Max(best, score)
			alpha = math.Max(alpha, score)
		} else {
			best = math.Min(best, score)
			beta = math.Min(beta, score)
		}

		if beta <= alpha {
			st.Cutoffs++
			break
		}
	}

	// Only the all-empty board is non-terminal with no legal move.
	if !explored {
		return s.Eval.Evaluate(b)
	}
	return best
}

// BestMove searches b with the default heuristic.
func BestMove(b Board, depth int) (Direction, bool) {
	return NewSearcher(nil).BestMove(b, depth)
}
