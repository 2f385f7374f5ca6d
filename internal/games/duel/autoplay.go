package duel

import (
	"context"
	"time"
)

// AutoplayResult summarizes one AI-only game.
type AutoplayResult struct {
	Moves    int
	Points   int
	MaxTile  int
	Won      bool
	Nodes    int // search nodes over the whole game
	Cutoffs  int
	Duration time.Duration
}

// Autoplay lets the AI play its board alone until it reaches the target,
// runs out of moves, or has made maxMoves moves (0 means no limit).
// It stops early with ctx's error when ctx is cancelled.
func Autoplay(ctx context.Context, opts Options, maxMoves int) (AutoplayResult, error) {
	m := NewMatch(opts)
	start := time.Now()

	var res AutoplayResult
	for !m.AI.Finished() && (maxMoves <= 0 || m.AI.MoveCount < maxMoves) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		_, moved := m.ApplyAIMove()
		st := m.LastSearch()
		res.Nodes += st.Nodes
		res.Cutoffs += st.Cutoffs
		if !moved {
			break
		}
	}

	res.Moves = m.AI.MoveCount
	res.Points = m.AI.Points
	res.MaxTile = m.AI.Score()
	res.Won = m.AI.HasWon()
	res.Duration = time.Since(start)
	return res, nil
}
