package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/storage"
)

var (
	flagClearCheckpoint bool
	flagCheckpointUser  string
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Show or clear the saved checkpoint",
	Long: `Completing the checkpoint level saves the level, score and lives.
Restarting a level restores them. A lost run or a new game clears it.

SSH players have one checkpoint each; select it with --user.

Examples:
  duckclick checkpoint
  duckclick checkpoint --clear
  duckclick checkpoint --user alice`,
	Args: cobra.NoArgs,
	Run:  runCheckpoint,
}

func init() {
	checkpointCmd.Flags().BoolVar(&flagClearCheckpoint, "clear", false, "Delete the checkpoint")
	checkpointCmd.Flags().StringVar(&flagCheckpointUser, "user", "", "SSH user whose checkpoint to use")
}

func runCheckpoint(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer store.Close()

	key := checkpoint.KeyFor(flagCheckpointUser)
	cp := checkpoint.NewSettingsStore(store, key, logger)

	if flagClearCheckpoint {
		if err := cp.Clear(); err != nil {
			fatalf("clearing checkpoint: %v", err)
		}
		fmt.Println("Checkpoint cleared.")
		return
	}

	snap, ok := cp.Load()
	if !ok {
		fmt.Println("No checkpoint saved.")
		return
	}
	fmt.Printf("Checkpoint (%s)\n", key)
	fmt.Printf("  Level: %d\n", snap.LevelID)
	fmt.Printf("  Score: %d\n", snap.Score)
	fmt.Printf("  Lives: %d\n", snap.Lives)
}
