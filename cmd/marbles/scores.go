package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var flagRuns int

var scoresCmd = &cobra.Command{
	Use:   "scores [table]",
	Short: "Show high scores and recent runs for a table",
	Long: `Display the top 10 high scores for the specified table (default:
marbles), followed by its most recent runs from play and sim.

Examples:
  marbles scores
  marbles scores marbles_wrap
  marbles scores --runs 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show (0 hides them)")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "marbles"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown table %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'marbles list' to see available tables.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating table: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'marbles play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		}
	}

	if flagRuns <= 0 {
		return
	}

	runs, err := store.RecentRuns(gameID, flagRuns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Runs")
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %-7s  %-7s  %-5s  %-6s  %-6s  %s\n",
		"Src", "Score", "Deleted", "Capture", "Spat", "Mixes", "Left", "Date")
	for _, r := range runs {
		fmt.Printf("  %-5s  %-6d  %-7d  %-7d  %-5d  %-6d  %-6d  %s\n",
			r.Source, r.Score, r.Deleted, r.Captured, r.Spat, r.Mixes, r.Remaining,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
