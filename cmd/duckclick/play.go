package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/duckclick/internal/audio"
	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/config"
	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/games/duckhunt"
	"github.com/vovakirdan/duckclick/internal/platform/tui"
	"github.com/vovakirdan/duckclick/internal/run"
)

var (
	flagDifficulty string
	flagPolicy     string
	flagNoAudio    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start a run through the campaign.

Controls:
  Mouse         - Click ducks (avoid the decoys)
  Enter/Space   - Start, next level, continue after a failure
  P/Esc         - Pause
  R             - Restart level (from the checkpoint when one is saved)
  N             - New game from level 1
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy     - 5 lives
  normal   - 3 lives
  hard     - 1 life, retries from the checkpoint
  classic  - a single failure ends the run

Examples:
  duckclick play
  duckclick play --difficulty easy
  duckclick play --policy single_life
  duckclick play --levels ./my-levels --no-audio
  duckclick play --config ./my-duckclick.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
	playCmd.Flags().StringVar(&flagPolicy, "policy", "", "Failure policy: multi_life, single_life")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable music and sound effects")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			fatalf("%v", err)
		}
	}
	if flagPolicy != "" {
		policy, ok := run.ParseFailurePolicy(flagPolicy)
		if !ok {
			fatalf("unknown failure policy %q (want multi_life or single_life)", flagPolicy)
		}
		cfg.Run.FailurePolicy = policy.String()
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	// The alt-screen owns stderr while the game runs.
	gameLog := logger
	if f, err := openLogFile(cfg.Storage.LogPath); err == nil {
		defer f.Close()
		gameLog = logger.WithPrefix("duckclick")
		gameLog.SetOutput(f)
	} else {
		logger.Warn("cannot open log file, logging is silenced while playing", "err", err)
		gameLog = log.New(io.Discard)
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	player := audio.NewPlayer(playerConfig(cfg.Audio), gameLog)
	defer player.Close()

	mode := cfg.Run.Policy().String()
	listeners := []run.Listener{player}
	if store != nil {
		listeners = append(listeners, tui.NewScoreRecorder(store, mode, gameLog))
	}

	game := newGame(gameParts{
		cfg:         cfg,
		checkpoints: checkpointStore(store, checkpoint.DefaultKey, gameLog),
		listeners:   listeners,
		observers:   []duckhunt.Observer{player},
		logger:      gameLog,
	})

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Arena.TickRate,
		Seed:     flagSeed,
	}
	if err := tui.Run(game, rc); err != nil {
		fatalf("running game: %v", err)
	}

	st := game.Controller().State()
	logger.Info("session ended", "mode", mode, "level", st.CurrentLevelID, "score", st.Score)
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// playerConfig converts the audio section into player settings.
func playerConfig(a config.AudioConfig) audio.Config {
	return audio.Config{
		Enabled:     a.Enabled,
		SampleRate:  a.SampleRate,
		MusicVolume: a.MusicVolume,
		SFXVolume:   a.SFXVolume,
	}
}
