package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
)

var (
	flagBoardPath    string
	flagAnalyzeDepth int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask the AI about a board",
	Long: `Load a 7x7 board from YAML and print its evaluation, the search score
of every direction and the move the AI would play.

Board file format:
  board:
    - [2, 0, 0, 0, 0, 0, 0]
    - [0, 4, 0, 0, 0, 0, 0]
    ... (7 rows of 7 cells, 0 = empty)
  target: 2048   # optional

Examples:
  duel analyze --board board.yaml
  duel analyze --board board.yaml --depth 4`,
	Run: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagBoardPath, "board", "", "Path to board YAML (required)")
	analyzeCmd.Flags().IntVar(&flagAnalyzeDepth, "depth", 3, "Search depth in plies")
	//nolint:errcheck // flag is defined above
	analyzeCmd.MarkFlagRequired("board")
}

// boardFile is the YAML layout read by analyze.
type boardFile struct {
	Board  [][]int `yaml:"board"`
	Target int     `yaml:"target"`
}

// loadBoard reads a board file. A missing target defaults to 2048.
func loadBoard(data []byte) (engine.Board, int, error) {
	var f boardFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return engine.Board{}, 0, errors.New("analyze: empty board file")
		}
		return engine.Board{}, 0, fmt.Errorf("analyze: cannot parse board: %w", err)
	}

	b, err := engine.FromRows(f.Board)
	if err != nil {
		return engine.Board{}, 0, err
	}

	if f.Target == 0 {
		f.Target = 2048
	}
	if !config.ValidTarget(f.Target) {
		return engine.Board{}, 0, config.ErrBadTarget
	}
	return b, f.Target, nil
}

func runAnalyze(_ *cobra.Command, _ []string) {
	logger := newLogger("duel-analyze")

	if flagAnalyzeDepth < 1 || flagAnalyzeDepth > config.MaxDepth {
		fmt.Fprintf(os.Stderr, "Error: --depth must be between 1 and %d\n", config.MaxDepth)
		os.Exit(1)
	}

	data, err := os.ReadFile(flagBoardPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading board: %v\n", err)
		os.Exit(1)
	}
	b, target, err := loadBoard(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(b.String())
	fmt.Println()
	fmt.Printf("Max tile:    %d (target %d)\n", b.MaxTile(), target)
	fmt.Printf("Empty cells: %d\n", b.EmptyCount())
	fmt.Printf("Smoothness:  %d\n", engine.Smoothness(b))
	fmt.Printf("Evaluation:  %.0f\n", engine.Evaluate(b))

	switch {
	case engine.HasWon(b, target):
		fmt.Println("Status:      target reached")
	case engine.IsOver(b):
		fmt.Println("Status:      no moves left")
	}
	fmt.Println()

	searcher := engine.NewSearcher(nil)
	start := time.Now()
	res := searcher.Search(b, flagAnalyzeDepth)
	elapsed := time.Since(start)

	logger.Debug("search finished",
		"depth", flagAnalyzeDepth,
		"nodes", res.Stats.Nodes,
		"cutoffs", res.Stats.Cutoffs,
		"elapsed", elapsed,
	)

	printChildren(res)
	fmt.Println()

	if !res.OK {
		fmt.Println("No move: the board cannot change.")
		return
	}
	fmt.Printf("Best move: %s (score %.0f, depth %d, %d nodes, %d cutoffs)\n",
		res.Dir, res.Score, flagAnalyzeDepth, res.Stats.Nodes, res.Stats.Cutoffs)
}

// printChildren prints the score of every direction, "-" for illegal ones.
func printChildren(res engine.Result) {
	scores := make(map[engine.Direction]float64, len(res.Children))
	for _, c := range res.Children {
		scores[c.Dir] = c.Score
	}
	for _, d := range engine.Directions {
		score, ok := scores[d]
		if !ok {
			fmt.Printf("  %-5s  -\n", d)
			continue
		}
		fmt.Printf("  %-5s  %.0f\n", d, score)
	}
}
