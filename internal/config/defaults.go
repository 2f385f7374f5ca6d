package config

import (
	_ "embed"
)

//go:embed defaults/duel.yaml
var defaultDuelYAML []byte

// DefaultDuelConfig returns the built-in configuration.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Board: BoardConfig{
			Spawn4Prob:   0.1,
			InitialTiles: 2,
		},
		Match: MatchConfig{
			Target:     2048,
			Difficulty: DifficultyMedium,
			BannerMS:   3000,
		},
		Difficulties: map[Difficulty]DifficultyConfig{
			DifficultyEasy:   {Depth: 1, AIDelayMS: 500},
			DifficultyMedium: {Depth: 2, AIDelayMS: 300},
			DifficultyHard:   {Depth: 3, AIDelayMS: 0},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDuelYAML
}
