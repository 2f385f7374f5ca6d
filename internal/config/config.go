// Package config provides YAML-based duel configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

var (
	// ErrBadTarget is returned for a winning tile other than 1024, 2048 or 4096.
	ErrBadTarget = errors.New("config: target must be 1024, 2048 or 4096")

	// ErrUnknownDifficulty is returned for a difficulty name that is not configured.
	ErrUnknownDifficulty = errors.New("config: unknown difficulty")
)

// Targets lists the winning tiles a match can be played to.
var Targets = []int{1024, 2048, 4096}

// DuelConfig contains all configuration for a player-vs-AI match.
type DuelConfig struct {
	Board        BoardConfig                     `yaml:"board"`
	Match        MatchConfig                     `yaml:"match"`
	Difficulties map[Difficulty]DifficultyConfig `yaml:"difficulties"`
}

// BoardConfig defines tile spawning.
type BoardConfig struct {
	Spawn4Prob   float64 `yaml:"spawn4_prob"`   // Chance a spawned tile is a 4
	InitialTiles int     `yaml:"initial_tiles"` // Tiles placed on each new board
}

// MatchConfig defines the defaults of a new match.
type MatchConfig struct {
	Target     int        `yaml:"target"`
	Difficulty Difficulty `yaml:"difficulty"`
	BannerMS   int        `yaml:"banner_ms"` // How long "reached the max tile" stays on screen
}

// DifficultyConfig defines how hard the AI plays.
type DifficultyConfig struct {
	Depth     int `yaml:"depth"`       // Search depth in plies
	AIDelayMS int `yaml:"ai_delay_ms"` // Minimum time between AI moves
}

// AIDelay returns the AI move delay as a duration.
func (d DifficultyConfig) AIDelay() time.Duration {
	return time.Duration(d.AIDelayMS) * time.Millisecond
}

// Banner returns the banner duration.
func (m MatchConfig) Banner() time.Duration {
	return time.Duration(m.BannerMS) * time.Millisecond
}

// Preset returns the settings for a difficulty.
func (c DuelConfig) Preset(d Difficulty) (DifficultyConfig, error) {
	p, ok := c.Difficulties[d]
	if !ok {
		return DifficultyConfig{}, fmt.Errorf("%w %q", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// ValidTarget reports whether t is a supported winning tile.
func ValidTarget(t int) bool {
	for _, v := range Targets {
		if v == t {
			return true
		}
	}
	return false
}

// Validate checks the configuration for values the game cannot run with.
func (c DuelConfig) Validate() error {
	if c.Board.Spawn4Prob < 0 || c.Board.Spawn4Prob > 1 {
		return fmt.Errorf("config: spawn4_prob %v out of range [0, 1]", c.Board.Spawn4Prob)
	}
	if c.Board.InitialTiles < 1 || c.Board.InitialTiles > engine.Size*engine.Size {
		return fmt.Errorf("config: initial_tiles %d out of range [1, %d]", c.Board.InitialTiles, engine.Size*engine.Size)
	}
	if !ValidTarget(c.Match.Target) {
		return fmt.Errorf("%w, got %d", ErrBadTarget, c.Match.Target)
	}
	if _, err := c.Preset(c.Match.Difficulty); err != nil {
		return err
	}
	for _, d := range Difficulties {
		p, err := c.Preset(d)
		if err != nil {
			return err
		}
		if p.Depth < 1 || p.Depth > MaxDepth {
			return fmt.Errorf("config: %s depth %d out of range [1, %d]", d, p.Depth, MaxDepth)
		}
		if p.AIDelayMS < 0 {
			return fmt.Errorf("config: %s ai_delay_ms %d is negative", d, p.AIDelayMS)
		}
	}
	return nil
}
