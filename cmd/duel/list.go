package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available duels",
	Long:  `Shows the registered duels and the AI difficulty presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available duels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	cfg := loadConfig()

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	for _, d := range config.Difficulties {
		p := cfg.Difficulties[d]
		marker := ""
		if d == cfg.Match.Difficulty {
			marker = "  (default)"
		}
		fmt.Printf("  %-6s  depth %d, %4dms per AI move%s\n", d, p.Depth, p.AIDelayMS, marker)
	}

	fmt.Println()
	fmt.Println("Run 'duel play <target>' to play a duel.")
}
