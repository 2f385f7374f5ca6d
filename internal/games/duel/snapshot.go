package duel

import "github.com/vovakirdan/tile-duel/internal/games/duel/engine"

// Phase is the coarse state of a duel.
type Phase string

const (
	PhasePlaying     Phase = "playing"
	PhasePaused      Phase = "paused"
	PhaseFinished    Phase = "finished"
	PhasePausedSmall Phase = "paused_small_window"
)

// SideSnapshot captures one side of the match.
type SideSnapshot struct {
	Board    engine.Board
	Moves    int
	Points   int
	MaxTile  int
	Seconds  int
	Finished bool
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Target     int
	Difficulty string
	Depth      int
	Player     SideSnapshot
	AI         SideSnapshot
	Banner     string
	Phase      Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.tooSmall:
		phase = PhasePausedSmall
	case g.result != nil:
		phase = PhaseFinished
	case g.paused:
		phase = PhasePaused
	}

	return Snapshot{
		Tick:       g.tick,
		Target:     g.target,
		Difficulty: string(g.difficulty),
		Depth:      g.preset.Depth,
		Player:     sideSnapshot(g.match.Player),
		AI:         sideSnapshot(g.match.AI),
		Banner:     g.banner,
		Phase:      phase,
	}
}

func sideSnapshot(s *Session) SideSnapshot {
	return SideSnapshot{
		Board:    s.Board,
		Moves:    s.MoveCount,
		Points:   s.Points,
		MaxTile:  s.Score(),
		Seconds:  s.Seconds(),
		Finished: s.Finished(),
	}
}
