package duel

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

// Options configures a new match.
type Options struct {
	Target       int
	Depth        int
	Seed         int64
	Spawn4Prob   float64
	InitialTiles int

	// Eval overrides the AI heuristic. Nil means engine.Heuristic.
	Eval engine.Evaluator
}

// DefaultOptions returns a medium 2048 match with the standard spawn rules.
func DefaultOptions() Options {
	return Options{
		Target:       2048,
		Depth:        2,
		Spawn4Prob:   engine.DefaultSpawn4Prob,
		InitialTiles: 2,
	}
}

// Match pits the player against the AI on two independent boards.
type Match struct {
	Player *Session
	AI     *Session

	searcher *engine.Searcher
	last     engine.Stats
}

// NewMatch creates both sessions. Each side draws spawns from its own
// random stream so one side's moves never change the other's tiles.
func NewMatch(opts Options) *Match {
	seeds := rand.New(rand.NewSource(opts.Seed))
	playerRNG := rand.New(rand.NewSource(seeds.Int63()))
	aiRNG := rand.New(rand.NewSource(seeds.Int63()))

	return &Match{
		Player:   NewSession(opts.Target, 0, playerRNG, opts.Spawn4Prob, opts.InitialTiles),
		AI:       NewSession(opts.Target, opts.Depth, aiRNG, opts.Spawn4Prob, opts.InitialTiles),
		searcher: engine.NewSearcher(opts.Eval),
	}
}

// ApplyPlayerMove moves the player's board. It reports whether the board changed.
func (m *Match) ApplyPlayerMove(d engine.Direction) bool {
	return m.Player.Move(d)
}

// ApplyAIMove searches the AI board and plays the chosen direction.
// It returns false when the AI is finished or has no move.
func (m *Match) ApplyAIMove() (engine.Direction, bool) {
	if m.AI.Finished() {
		return 0, false
	}

	res := m.searcher.Search(m.AI.Board, m.AI.Depth)
	m.last = res.Stats
	if !res.OK {
		return 0, false
	}
	return res.Dir, m.AI.Move(res.Dir)
}

// LastSearch returns the statistics of the most recent AI search.
func (m *Match) LastSearch() engine.Stats {
	return m.last
}

// IsPlayerOver reports whether the player's board has no move left.
func (m *Match) IsPlayerOver() bool { return m.Player.IsOver() }

// IsAIOver reports whether the AI's board has no move left.
func (m *Match) IsAIOver() bool { return m.AI.IsOver() }

// PlayerHasWon reports whether the player reached the target tile.
func (m *Match) PlayerHasWon() bool { return m.Player.HasWon() }

// AIHasWon reports whether the AI reached the target tile.
func (m *Match) AIHasWon() bool { return m.AI.HasWon() }

// Finished reports whether both sides are done.
func (m *Match) Finished() bool {
	return m.Player.Finished() && m.AI.Finished()
}

// Advance runs the clock of every side that is still playing.
func (m *Match) Advance(dt time.Duration) {
	m.Player.advance(dt)
	m.AI.advance(dt)
}

// Outcome is who won a match.
type Outcome int

const (
	Tie Outcome = iota
	PlayerWins
	AIWins
)

func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player"
	case AIWins:
		return "ai"
	default:
		return "tie"
	}
}

// Reason is the rule that decided a match.
type Reason int

const (
	ReasonTarget Reason = iota // a side reached the target tile
	ReasonScore                // higher max tile
	ReasonWeight               // lower move/time weight
)

func (r Reason) String() string {
	switch r {
	case ReasonTarget:
		return "target"
	case ReasonScore:
		return "score"
	default:
		return "weight"
	}
}

// Result describes the outcome of a match with the values behind it.
type Result struct {
	Kind   Outcome
	Reason Reason

	PlayerScore  int
	AIScore      int
	PlayerMoves  int
	AIMoves      int
	PlayerWeight float64
	AIWeight     float64
}

// Winner decides the match. The player reaching the target beats the AI
// reaching it, which beats a higher max tile. Equal max tiles go to the
// lower weight, 0.7*moves + 0.3*seconds taken.
//
// Both sides are charged the same seconds taken: the AI's elapsed seconds
// minus the player's. With equal max tiles only the move counts can
// separate the sides.
func (m *Match) Winner() Result {
	res := Result{
		PlayerScore: m.Player.Score(),
		AIScore:     m.AI.Score(),
		PlayerMoves: m.Player.MoveCount,
		AIMoves:     m.AI.MoveCount,
	}

	taken := float64(m.AI.Seconds() - m.Player.Seconds())
	res.PlayerWeight = weight(res.PlayerMoves, taken)
	res.AIWeight = weight(res.AIMoves, taken)

	switch {
	case m.Player.HasWon():
		res.Kind, res.Reason = PlayerWins, ReasonTarget
	case m.AI.HasWon():
		res.Kind, res.Reason = AIWins, ReasonTarget
	case res.AIScore > res.PlayerScore:
		res.Kind, res.Reason = AIWins, ReasonScore
	case res.PlayerScore > res.AIScore:
		res.Kind, res.Reason = PlayerWins, ReasonScore
	case res.AIWeight < res.PlayerWeight:
		res.Kind, res.Reason = AIWins, ReasonWeight
	case res.PlayerWeight < res.AIWeight:
		res.Kind, res.Reason = PlayerWins, ReasonWeight
	default:
		res.Kind, res.Reason = Tie, ReasonWeight
	}
	return res
}

func weight(moves int, taken float64) float64 {
	return 0.7*float64(moves) + 0.3*taken
}

// Message formats the result for the end-of-match screen.
func (r Result) Message() string {
	switch {
	case r.Reason == ReasonTarget && r.Kind == PlayerWins:
		return fmt.Sprintf("Player wins with %d moves!\nPlayer Score: %d", r.PlayerMoves, r.PlayerScore)
	case r.Reason == ReasonTarget && r.Kind == AIWins:
		return fmt.Sprintf("AI wins with %d moves!\nAI Score: %d", r.AIMoves, r.AIScore)
	case r.Reason == ReasonScore && r.Kind == AIWins:
		return fmt.Sprintf("AI wins with %d moves!\nAI Score: %d, Player Score: %d", r.AIMoves, r.AIScore, r.PlayerScore)
	case r.Reason == ReasonScore && r.Kind == PlayerWins:
		return fmt.Sprintf("Player wins with %d moves!\nAI Score: %d, Player Score: %d", r.PlayerMoves, r.AIScore, r.PlayerScore)
	case r.Kind == AIWins:
		return fmt.Sprintf("AI wins!\nWeight: %.2f (AI) vs %.2f (Player)", r.AIWeight, r.PlayerWeight)
	case r.Kind == PlayerWins:
		return fmt.Sprintf("Player wins!\nWeight: %.2f (Player) vs %.2f (AI)", r.PlayerWeight, r.AIWeight)
	default:
		return "It's a tie!"
	}
}
