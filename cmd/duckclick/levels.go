package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level records",
	Long: `Shows every level reachable from level 1, as the game will load them:
records from --levels (or the config's levels.dir) override the built-in
campaign, and broken fields fall back to their defaults.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	levels := levelStore(cfg, logger).List()

	if len(levels) == 0 {
		fmt.Println("No levels found.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		maxNameLen = max(maxNameLen, len(l.LevelName))
	}

	fmt.Printf("  %-3s  %-*s  %-12s  %5s  %5s  %6s  %7s  %s\n",
		"ID", maxNameLen, "Name", "Difficulty", "Ducks", "Decoy", "Time", "Penalty", "Music")
	fmt.Printf("  %-3s  %-*s  %-12s  %5s  %5s  %6s  %7s  %s\n",
		"--", maxNameLen, "----", "----------", "-----", "-----", "----", "-------", "-----")

	for _, l := range levels {
		fmt.Printf("  %-3d  %-*s  %-12s  %5d  %5d  %5.0fs  %6ds  %s\n",
			l.LevelID, maxNameLen, l.LevelName, l.DifficultyLabel,
			l.GoodTargetCount, l.DecoyTargetCount, l.TimeLimitSeconds,
			l.DecoyPenaltySeconds, l.BackgroundMusicKey)
		if len(l.SpecialMechanics) > 0 {
			fmt.Printf("       mechanics: %s\n", strings.Join(l.SpecialMechanics, ", "))
		}
	}

	fmt.Println()
	fmt.Printf("%d levels. Checkpoint after level %d.\n", len(levels), cfg.Run.CheckpointLevel)
}
