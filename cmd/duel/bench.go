package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/games/duel"
)

var (
	flagBenchGames      int
	flagBenchTarget     int
	flagBenchDifficulty string
	flagBenchMaxMoves   int
	flagBenchWorkers    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Let the AI play headless games",
	Long: `Run AI-only games without a terminal UI and report how far the AI
gets. Games run in parallel, each with its own board and random stream.
With --seed set, game i uses seed+i, so runs are reproducible.

Examples:
  duel bench
  duel bench --games 50 --difficulty hard --target 4096
  duel bench --games 8 --seed 42 --max-moves 500`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 10, "Number of games to play")
	benchCmd.Flags().IntVar(&flagBenchTarget, "target", 2048, "Target tile: 1024, 2048 or 4096")
	benchCmd.Flags().StringVar(&flagBenchDifficulty, "difficulty", "", "AI difficulty (default from config)")
	benchCmd.Flags().IntVar(&flagBenchMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", runtime.NumCPU(), "Games played at the same time")
}

// benchSummary aggregates autoplay results.
type benchSummary struct {
	Games    int
	Wins     int
	Moves    int
	BestTile int
	Nodes    int
	Elapsed  time.Duration
}

func summarize(results []duel.AutoplayResult) benchSummary {
	var s benchSummary
	for _, r := range results {
		s.Games++
		s.Moves += r.Moves
		s.Nodes += r.Nodes
		s.BestTile = max(s.BestTile, r.MaxTile)
		if r.Won {
			s.Wins++
		}
	}
	return s
}

func runBench(_ *cobra.Command, _ []string) {
	logger := newLogger("duel-bench")

	if !config.ValidTarget(flagBenchTarget) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", config.ErrBadTarget)
		os.Exit(1)
	}
	if flagBenchGames <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --games must be positive")
		os.Exit(1)
	}

	duelCfg := loadConfig()
	difficulty, err := parseDifficulty(flagBenchDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if difficulty == "" {
		difficulty = duelCfg.Match.Difficulty
	}
	preset, err := duelCfg.Preset(difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bench started",
		"games", flagBenchGames,
		"target", flagBenchTarget,
		"difficulty", difficulty,
		"depth", preset.Depth,
		"seed", seed,
	)

	start := time.Now()
	results := make([]duel.AutoplayResult, flagBenchGames)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flagBenchWorkers, 1))
	for i := range flagBenchGames {
		g.Go(func() error {
			res, err := duel.Autoplay(gctx, duel.Options{
				Target:       flagBenchTarget,
				Depth:        preset.Depth,
				Seed:         seed + int64(i),
				Spawn4Prob:   duelCfg.Board.Spawn4Prob,
				InitialTiles: duelCfg.Board.InitialTiles,
			}, flagBenchMaxMoves)
			if err != nil {
				return err
			}
			results[i] = res

			logger.Debug("game finished",
				"game", i+1,
				"moves", res.Moves,
				"max_tile", res.MaxTile,
				"won", res.Won,
				"nodes", res.Nodes,
				"duration", res.Duration.Round(time.Millisecond),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("bench interrupted", "error", err)
		os.Exit(1)
	}

	sum := summarize(results)
	sum.Elapsed = time.Since(start)

	logger.Info("bench finished",
		"games", sum.Games,
		"wins", sum.Wins,
		"best_tile", sum.BestTile,
		"avg_moves", sum.Moves/sum.Games,
		"nodes", sum.Nodes,
		"elapsed", sum.Elapsed.Round(time.Millisecond),
	)

	fmt.Printf("AI reached %d in %d of %d games (best tile %d, %.1f moves per game)\n",
		flagBenchTarget, sum.Wins, sum.Games, sum.BestTile, float64(sum.Moves)/float64(sum.Games))
}
