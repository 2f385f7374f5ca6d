// duel is a terminal game where you race a minimax AI to the target tile
// on a 7x7 sliding-tile board.
//
// Usage:
//
//	duel list                - List available duels
//	duel play <target>       - Play a duel to 1024, 2048 or 4096
//	duel menu                - Pick target and difficulty interactively
//	duel serve               - Start SSH server for remote play
//	duel scores <target>     - Show high scores and recent matches
//	duel bench               - Let the AI play headless games
//	duel analyze             - Search a board loaded from YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.duel/scores.db)
//	--config <path>      - Use a custom duel.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/core"
	"github.com/vovakirdan/tile-duel/internal/games/duel"
	"github.com/vovakirdan/tile-duel/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "Tile Duel - race the AI to the target tile",
	Long: `Tile Duel is a terminal game on a 7x7 sliding-tile board.
You and a minimax AI play separate boards side by side; the first to
reach the target tile wins, otherwise the higher tile, then the fewer
moves.

Available commands:
  list     - Show all available duels
  play     - Play a duel directly
  menu     - Interactive target and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and match history
  bench    - Run headless AI games
  analyze  - Ask the AI about a board

Examples:
  duel list
  duel play 2048 --difficulty hard
  duel menu
  duel serve --ssh :2222
  duel scores 2048`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duel/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom duel config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// newLogger creates a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the duel configuration or exits.
func loadConfig() config.DuelConfig {
	cfg, err := config.LoadDuel(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// parseGameID accepts a target ("2048") or a game ID ("duel_2048").
func parseGameID(arg string) (string, error) {
	if registry.Exists(arg) {
		return arg, nil
	}
	t, err := strconv.Atoi(strings.TrimPrefix(arg, "duel_"))
	if err != nil || !config.ValidTarget(t) {
		return "", fmt.Errorf("%w %q", registry.ErrUnknownGame, arg)
	}
	return duel.GameID(t), nil
}

// parseDifficulty parses the --difficulty flag. Empty stays empty.
func parseDifficulty(s string) (config.Difficulty, error) {
	if s == "" {
		return "", nil
	}
	return config.ParseDifficulty(s)
}

// newDuel creates and configures the game for gameID.
func newDuel(gameID string, cfg config.DuelConfig, d config.Difficulty) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*duel.Game); ok {
		if err := g.Configure(cfg, d); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// gameTitle returns the display name of a registered game.
func gameTitle(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
