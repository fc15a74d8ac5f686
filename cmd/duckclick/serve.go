package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/platform/tui"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the duckclick SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own run with audio disabled. Scores are stored
per-server (all users share the same leaderboard); checkpoints are kept per
user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.duckclick/host_key

Examples:
  duckclick serve                           # Listen on :23234 with auto-generated key
  duckclick serve --ssh :2222               # Listen on port 2222
  duckclick serve --host-key ./my_host_key  # Use specific host key
  duckclick serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	mode := cfg.Run.Policy().String()

	newSession := func(user string, store *storage.Store, sessionLog *log.Logger) tui.Game {
		var listeners []run.Listener
		if store != nil {
			listeners = append(listeners, tui.NewScoreRecorder(store, mode, sessionLog))
		}
		return newGame(gameParts{
			cfg:         cfg,
			checkpoints: checkpointStore(store, checkpoint.KeyFor(user), sessionLog),
			listeners:   listeners,
			logger:      sessionLog,
		})
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      cfg.Storage.Path,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    cfg.Arena.TickRate,
		NewGame:     newSession,
		Logger:      logger,
	})
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting duckclick SSH server on %s\n", flagSSHAddr)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}
