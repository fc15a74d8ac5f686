package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/duckclick/internal/platform/tui"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/storage"
)

var (
	flagInteractive bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a failure policy (multi_life or
single_life). Without a mode, the configured policy is shown.

Examples:
  duckclick scores
  duckclick scores single_life
  duckclick scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	mode := cfg.Run.Policy().String()
	if len(args) == 1 {
		policy, ok := run.ParseFailurePolicy(args[0])
		if !ok {
			fatalf("unknown mode %q (want multi_life or single_life)", args[0])
		}
		mode = policy.String()
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(mode); err != nil {
			fatalf("clearing scores: %v", err)
		}
		fmt.Printf("Scores for %s cleared.\n", mode)
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, mode, width, height); err != nil {
			fatalf("running scoreboard: %v", err)
		}
		return
	}

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		fatalf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'duckclick play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(mode); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	}
}
