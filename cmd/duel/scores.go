package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-duel/internal/storage"
)

var (
	flagScoresLimit int
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <target>",
	Short: "Show high scores and recent matches",
	Long: `Display the top high scores (largest player tile) for a duel,
the win record against the AI and the most recent matches.

Examples:
  duel scores 2048
  duel scores duel_1024 --limit 20
  duel scores 4096 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores and matches to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores and matches for the duel")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID, err := parseGameID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'duel list' to see available duels.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", gameTitle(gameID))
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", gameTitle(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'duel play %s' to set the first high score!\n", args[0])
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.Matches > 0 {
		fmt.Println()
		fmt.Printf("Matches: %d   You: %d   AI: %d   Ties: %d\n",
			stats.Matches, stats.PlayerWins, stats.AIWins, stats.Ties)
	}

	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil || len(matches) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent matches:")
	fmt.Println()
	fmt.Printf("  %-6s  %-6s  %-6s  %-6s  %-6s  %-9s  %s\n", "Winner", "Reason", "Level", "You", "AI", "Moves", "Date")
	for _, m := range matches {
		fmt.Printf("  %-6s  %-6s  %-6s  %-6d  %-6d  %-9s  %s\n",
			m.Winner, m.Reason, m.Difficulty, m.PlayerScore, m.AIScore,
			fmt.Sprintf("%d/%d", m.PlayerMoves, m.AIMoves),
			m.CreatedAt.Format("2006-01-02 15:04"))
	}
}
