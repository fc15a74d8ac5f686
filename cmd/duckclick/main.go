// duckclick is a terminal arcade game: click the ducks, not the decoys.
//
// Usage:
//
//	duckclick play              - Play the campaign
//	duckclick levels            - List the level records
//	duckclick scores [mode]     - Show high scores
//	duckclick checkpoint        - Show or clear the saved checkpoint
//	duckclick serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.duckclick/duckclick.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagConfig   string
	flagLevels   string
)

// logger is the root logger, configured before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "duckclick",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duckclick",
	Short: "Duck Click - shoot the ducks, spare the decoys",
	Long: `Duck Click is a terminal arcade game played with the mouse.
Each level spawns ducks and decoys; click every duck before the timer runs
out and leave the decoys alone, they cost you seconds.

Available commands:
  play        - Play the campaign
  levels      - Show the level records
  scores      - View high scores
  checkpoint  - Show or clear the saved checkpoint
  serve       - Start SSH server for remote play

Examples:
  duckclick play
  duckclick play --difficulty classic
  duckclick levels --levels ./my-levels
  duckclick scores --interactive
  duckclick serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level records layered over the campaign")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(serveCmd)
}
