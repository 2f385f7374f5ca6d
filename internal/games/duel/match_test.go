package duel

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

// bareMatch returns a match that starts with empty boards.
func bareMatch(target int) *Match {
	return NewMatch(Options{Target: target, Depth: 2, Seed: 1})
}

func tiles(b engine.Board) int {
	return engine.Size*engine.Size - b.EmptyCount()
}

func TestNewMatchPlacesInitialTiles(t *testing.T) {
	m := NewMatch(DefaultOptions())

	if got := tiles(m.Player.Board); got != 2 {
		t.Errorf("player tiles = %d, want 2", got)
	}
	if got := tiles(m.AI.Board); got != 2 {
		t.Errorf("AI tiles = %d, want 2", got)
	}
	if m.AI.Depth != 2 || m.Player.Target != 2048 {
		t.Errorf("AI depth = %d, target = %d, want 2 and 2048", m.AI.Depth, m.Player.Target)
	}
}

func TestNewMatchDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 99

	a := NewMatch(opts)
	b := NewMatch(opts)
	for i := 0; i < 20; i++ {
		a.ApplyAIMove()
		b.ApplyAIMove()
	}

	if a.AI.Board != b.AI.Board || a.Player.Board != b.Player.Board {
		t.Error("matches with the same seed diverged")
	}
}

func TestApplyPlayerMove(t *testing.T) {
	m := bareMatch(2048)
	m.Player.Board = engine.Board{}
	m.Player.Board[0] = [engine.Size]int{0, 0, 2, 2, 0, 0, 0}

	if !m.ApplyPlayerMove(engine.Left) {
		t.Fatal("ApplyPlayerMove(left) should move")
	}
	if m.Player.Board[0][0] != 4 {
		t.Errorf("row 0 = %v, want 4 in column 0", m.Player.Board[0])
	}
	if m.Player.MoveCount != 1 || m.Player.Points != 4 {
		t.Errorf("MoveCount = %d, Points = %d, want 1 and 4", m.Player.MoveCount, m.Player.Points)
	}
	// The merged tile plus one spawn
	if got := tiles(m.Player.Board); got != 2 {
		t.Errorf("tiles after move = %d, want 2", got)
	}
}

func TestApplyPlayerMoveNoOp(t *testing.T) {
	m := bareMatch(2048)
	m.Player.Board = engine.Board{}
	m.Player.Board[0][0] = 2
	before := m.Player.Board

	if m.ApplyPlayerMove(engine.Left) {
		t.Error("ApplyPlayerMove should report no move")
	}
	if m.Player.Board != before || m.Player.MoveCount != 0 {
		t.Error("no-op move must not spawn or count")
	}
}

func TestApplyAIMoveUsesSearch(t *testing.T) {
	m := bareMatch(2048)
	m.AI.Board = engine.Board{}
	m.AI.Board[0][0] = 1024
	m.AI.Board[0][6] = 1024

	want, ok := engine.BestMove(m.AI.Board, m.AI.Depth)
	if !ok {
		t.Fatal("BestMove found no move")
	}

	got, moved := m.ApplyAIMove()
	if !moved || got != want {
		t.Errorf("ApplyAIMove() = (%s, %v), want (%s, true)", got, moved, want)
	}
	if !m.AIHasWon() {
		t.Error("merging two 1024s should reach 2048")
	}
	if m.LastSearch().Nodes == 0 {
		t.Error("LastSearch() reported no nodes")
	}

	// Finished sides do not move
	if _, moved := m.ApplyAIMove(); moved {
		t.Error("ApplyAIMove after winning should be a no-op")
	}
}

func TestFinishedSideIgnoresMoves(t *testing.T) {
	m := bareMatch(1024)
	m.Player.Board = engine.Board{}
	m.Player.Board[3] = [engine.Size]int{512, 512, 0, 0, 0, 0, 0}
	m.Player.Board[5][5] = 2

	if !m.ApplyPlayerMove(engine.Left) || !m.PlayerHasWon() {
		t.Fatal("player should reach 1024")
	}
	moves := m.Player.MoveCount
	if m.ApplyPlayerMove(engine.Right) {
		t.Error("finished player should not move")
	}
	if m.Player.MoveCount != moves {
		t.Errorf("MoveCount = %d, want %d", m.Player.MoveCount, moves)
	}
}

func TestAdvanceFreezesFinishedSide(t *testing.T) {
	m := bareMatch(2048)
	m.Advance(2 * time.Second)

	m.Player.Board[0][0] = 2048
	m.Player.updateFinished()

	m.Advance(3 * time.Second)

	if got := m.Player.Seconds(); got != 2 {
		t.Errorf("player seconds = %d, want 2", got)
	}
	if got := m.AI.Seconds(); got != 5 {
		t.Errorf("AI seconds = %d, want 5", got)
	}
	if m.Finished() {
		t.Error("match should not be finished while the AI plays")
	}
}

func TestIsOver(t *testing.T) {
	m := bareMatch(2048)
	for r := range engine.Size {
		for c := range engine.Size {
			m.AI.Board[r][c] = 2 << ((r + c) % 2)
		}
	}
	m.AI.updateFinished()

	if !m.IsAIOver() || !m.AI.Finished() {
		t.Error("checkerboard should be over")
	}
	if m.IsPlayerOver() {
		t.Error("player board should not be over")
	}
}

// fixedSide builds a session for winner tests.
func fixedSide(target, maxTile, moves int, elapsed time.Duration) *Session {
	s := &Session{Target: target, MoveCount: moves, Elapsed: elapsed}
	s.Board[6][6] = maxTile
	s.updateFinished()
	return s
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		player *Session
		ai     *Session
		kind   Outcome
		reason Reason
		msg    string
	}{
		{
			name:   "player reached target first in order",
			player: fixedSide(2048, 2048, 300, 90*time.Second),
			ai:     fixedSide(2048, 2048, 250, 60*time.Second),
			kind:   PlayerWins,
			reason: ReasonTarget,
			msg:    "Player wins with 300 moves!\nPlayer Score: 2048",
		},
		{
			name:   "AI reached target",
			player: fixedSide(2048, 1024, 300, 90*time.Second),
			ai:     fixedSide(2048, 2048, 250, 60*time.Second),
			kind:   AIWins,
			reason: ReasonTarget,
			msg:    "AI wins with 250 moves!\nAI Score: 2048",
		},
		{
			name:   "AI higher tile",
			player: fixedSide(2048, 256, 100, 0),
			ai:     fixedSide(2048, 512, 120, 0),
			kind:   AIWins,
			reason: ReasonScore,
			msg:    "AI wins with 120 moves!\nAI Score: 512, Player Score: 256",
		},
		{
			name:   "player higher tile",
			player: fixedSide(2048, 1024, 100, 0),
			ai:     fixedSide(2048, 512, 120, 0),
			kind:   PlayerWins,
			reason: ReasonScore,
			msg:    "Player wins with 100 moves!\nAI Score: 512, Player Score: 1024",
		},
		{
			name:   "fewer moves wins the tie-break",
			player: fixedSide(2048, 512, 10, 30*time.Second),
			ai:     fixedSide(2048, 512, 12, 40*time.Second),
			kind:   PlayerWins,
			reason: ReasonWeight,
			msg:    "Player wins!\nWeight: 10.00 (Player) vs 11.40 (AI)",
		},
		{
			name:   "AI fewer moves",
			player: fixedSide(2048, 512, 20, 0),
			ai:     fixedSide(2048, 512, 10, 0),
			kind:   AIWins,
			reason: ReasonWeight,
			msg:    "AI wins!\nWeight: 7.00 (AI) vs 14.00 (Player)",
		},
		{
			name:   "equal moves tie whatever the clocks say",
			player: fixedSide(2048, 512, 10, 5*time.Second),
			ai:     fixedSide(2048, 512, 10, 50*time.Second),
			kind:   Tie,
			reason: ReasonWeight,
			msg:    "It's a tie!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{Player: tt.player, AI: tt.ai}
			res := m.Winner()
			if res.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", res.Kind, tt.kind)
			}
			if res.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", res.Reason, tt.reason)
			}
			if got := res.Message(); got != tt.msg {
				t.Errorf("Message() = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestWinnerWeights(t *testing.T) {
	m := &Match{
		Player: fixedSide(2048, 64, 10, 30*time.Second),
		AI:     fixedSide(2048, 64, 12, 40*time.Second),
	}
	res := m.Winner()

	// Both sides are charged AI seconds minus player seconds.
	if math.Abs(res.PlayerWeight-10.0) > 1e-9 {
		t.Errorf("PlayerWeight = %v, want 10", res.PlayerWeight)
	}
	if math.Abs(res.AIWeight-11.4) > 1e-9 {
		t.Errorf("AIWeight = %v, want 11.4", res.AIWeight)
	}
}

func TestOutcomeString(t *testing.T) {
	if PlayerWins.String() != "player" || AIWins.String() != "ai" || Tie.String() != "tie" {
		t.Error("unexpected outcome names")
	}
	if ReasonTarget.String() != "target" || ReasonScore.String() != "score" || ReasonWeight.String() != "weight" {
		t.Error("unexpected reason names")
	}
}
