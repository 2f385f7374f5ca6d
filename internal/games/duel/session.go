package duel

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

// Session is one side of a match: a board, its counters and its clock.
type Session struct {
	Board     engine.Board
	MoveCount int
	Points    int // Sum of merged tiles, classic 2048 scoring
	Target    int
	Depth     int // Search depth, only meaningful for the AI side
	Elapsed   time.Duration

	rng        *rand.Rand
	spawn4Prob float64
	finished   bool
}

// NewSession creates a session and places the initial tiles.
func NewSession(target, depth int, rng *rand.Rand, spawn4Prob float64, initialTiles int) *Session {
	s := &Session{
		Target:     target,
		Depth:      depth,
		rng:        rng,
		spawn4Prob: spawn4Prob,
	}
	for range initialTiles {
		engine.Spawn(&s.Board, s.rng, s.spawn4Prob)
	}
	s.updateFinished()
	return s
}

// Move slides the board and spawns a tile when anything changed.
// It reports whether the board moved. Finished sessions ignore moves.
func (s *Session) Move(d engine.Direction) bool {
	if s.finished {
		return false
	}

	next, gained, moved := engine.ApplyScored(s.Board, d)
	if !moved {
		return false
	}

	s.Board = next
	s.Points += gained
	s.MoveCount++
	engine.Spawn(&s.Board, s.rng, s.spawn4Prob)
	s.updateFinished()
	return true
}

// HasWon reports whether the target tile is on the board.
func (s *Session) HasWon() bool {
	return engine.HasWon(s.Board, s.Target)
}

// IsOver reports whether no move can change the board.
func (s *Session) IsOver() bool {
	return engine.IsOver(s.Board)
}

// Score returns the largest tile on the board.
func (s *Session) Score() int {
	return s.Board.MaxTile()
}

// Finished reports whether the side has won or run out of moves.
// Once set it stays set, and the session clock stops.
func (s *Session) Finished() bool {
	return s.finished
}

// Seconds returns the elapsed time in whole seconds.
func (s *Session) Seconds() int {
	return int(s.Elapsed / time.Second)
}

func (s *Session) advance(dt time.Duration) {
	if !s.finished {
		s.Elapsed += dt
	}
}

func (s *Session) updateFinished() {
	if s.HasWon() || s.IsOver() {
		s.finished = true
	}
}
