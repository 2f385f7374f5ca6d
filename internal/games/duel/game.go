// Package duel implements a 7x7 tile-merging race between the player and a
// minimax AI. Each side plays its own board; the match ends when both sides
// have reached the target tile or run out of moves.
package duel

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/core"
	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
	"github.com/vovakirdan/tile-duel/internal/registry"
)

// Banner texts shown when a side first reaches the target.
const (
	PlayerReachedMsg = "Player has reached the max tile!"
	AIReachedMsg     = "AI has reached the max tile!"
)

// Game drives a Match from the platform's fixed-rate tick loop.
type Game struct {
	target     int
	cfg        config.DuelConfig
	difficulty config.Difficulty
	preset     config.DifficultyConfig

	match      *Match
	tick       uint64
	clockTicks uint64 // ticks the match clock has run
	tickRate   int

	// AI pacing
	aiDelayTicks int
	aiWait       int

	// Target banner
	banner      string
	bannerTicks int
	playerSeen  bool
	aiSeen      bool

	result *Result

	// Screen dimensions
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a duel played to target with the built-in configuration.
func New(target int) *Game {
	g := &Game{target: target}
	if err := g.Configure(config.DefaultDuelConfig(), ""); err != nil {
		panic(fmt.Sprintf("duel: built-in config: %v", err))
	}
	return g
}

func init() {
	for _, t := range config.Targets {
		registry.Register(GameID(t), func() registry.Game {
			return New(t)
		})
	}
}

// GameID returns the registry ID of the duel played to target.
func GameID(target int) string {
	return fmt.Sprintf("duel_%d", target)
}

// Configure sets the configuration and AI difficulty used by the next Reset.
// An empty difficulty selects the configured default.
func (g *Game) Configure(cfg config.DuelConfig, d config.Difficulty) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if d == "" {
		d = cfg.Match.Difficulty
	}
	preset, err := cfg.Preset(d)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.difficulty = d
	g.preset = preset
	return nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.target)
}

// Title returns the display name.
func (g *Game) Title() string {
	return fmt.Sprintf("Duel %d", g.target)
}

// Target returns the winning tile.
func (g *Game) Target() int {
	return g.target
}

// Difficulty returns the AI difficulty in effect.
func (g *Game) Difficulty() config.Difficulty {
	return g.difficulty
}

// Match returns the match in progress.
func (g *Game) Match() *Match {
	return g.match
}

// Result returns the final result once both sides are finished.
func (g *Game) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.clockTicks = 0
	g.paused = false
	g.result = nil
	g.banner = ""
	g.bannerTicks = 0
	g.playerSeen = false
	g.aiSeen = false

	g.match = NewMatch(Options{
		Target:       g.target,
		Depth:        g.preset.Depth,
		Seed:         cfg.Seed,
		Spawn4Prob:   g.cfg.Board.Spawn4Prob,
		InitialTiles: g.cfg.Board.InitialTiles,
	})

	g.aiDelayTicks = g.durationTicks(g.preset.AIDelay())
	g.aiWait = 0

	g.checkScreenSize()
}

// durationTicks converts d to ticks, rounding up.
func (g *Game) durationTicks(d time.Duration) int {
	return int((d*time.Duration(g.tickRate) + time.Second - 1) / time.Second)
}

// tickTime returns the simulated time at the end of tick n.
func (g *Game) tickTime(n uint64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(g.tickRate)
}

// Resize updates the screen size without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.result == nil {
		g.paused = !g.paused
	}
	if g.paused || g.result != nil {
		return core.StepResult{State: g.State()}
	}

	var events []string

	g.clockTicks++
	g.match.Advance(g.tickTime(g.clockTicks) - g.tickTime(g.clockTicks-1))
	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}

	if d, ok := inputDirection(in); ok {
		g.match.ApplyPlayerMove(d)
	}

	// AI moves at most once per tick, and only after its delay has passed.
	g.aiWait++
	if g.aiWait >= g.aiDelayTicks {
		g.match.ApplyAIMove()
		g.aiWait = 0
	}

	if !g.playerSeen && g.match.PlayerHasWon() {
		g.playerSeen = true
		events = append(events, g.showBanner(PlayerReachedMsg))
	}
	if !g.aiSeen && g.match.AIHasWon() {
		g.aiSeen = true
		events = append(events, g.showBanner(AIReachedMsg))
	}

	if g.match.Finished() {
		res := g.match.Winner()
		g.result = &res
		events = append(events, res.Message())
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) showBanner(msg string) string {
	g.banner = msg
	g.bannerTicks = max(g.durationTicks(g.cfg.Match.Banner()), 1)
	return msg
}

// inputDirection maps a movement action to a slide direction.
func inputDirection(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up, true
	case in.Has(core.ActionDown):
		return engine.Down, true
	case in.Has(core.ActionLeft):
		return engine.Left, true
	case in.Has(core.ActionRight):
		return engine.Right, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.match != nil {
		score = g.match.Player.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.result != nil,
		Paused:   g.paused || g.tooSmall,
	}
}
