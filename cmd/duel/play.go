package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-duel/internal/platform/tui"
	"github.com/vovakirdan/tile-duel/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <target>",
	Short: "Play a duel",
	Long: `Race the AI to the target tile (1024, 2048 or 4096).

Both boards start with two tiles. The AI moves on its own clock; the
match ends once both sides have reached the target or run out of moves.

Controls:
  Arrows/WASD  - Slide tiles
  P/Esc        - Pause
  R            - Restart (after the match)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - depth 1, one AI move every 500ms
  medium  - depth 2, one AI move every 300ms
  hard    - depth 3, one AI move every tick

Without --difficulty a selector is shown.

Examples:
  duel play 2048
  duel play 1024 --difficulty easy
  duel play duel_4096 --difficulty hard
  duel play 2048 --config ./my-duel.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "AI difficulty: easy, medium, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := parseGameID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'duel list' to see available duels.")
		os.Exit(1)
	}

	difficulty, err := parseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	duelCfg := loadConfig()
	cfg := runtimeConfig()

	if difficulty == "" {
		difficulty, err = tui.RunDifficultySelector(gameTitle(gameID), duelCfg, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if difficulty == "" {
			return
		}
	}

	game, err := newDuel(gameID, duelCfg, difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
