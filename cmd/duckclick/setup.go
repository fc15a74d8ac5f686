package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckclick/internal/checkpoint"
	"github.com/vovakirdan/duckclick/internal/config"
	"github.com/vovakirdan/duckclick/internal/games/duckhunt"
	"github.com/vovakirdan/duckclick/internal/level"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/storage"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the app config and applies the global flag overrides.
func loadConfig() config.AppConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagFPS > 0 {
		cfg.Arena.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg
}

// levelStore layers the configured level directory over the campaign.
func levelStore(cfg config.AppConfig, logger *log.Logger) *level.Store {
	var src level.Source = level.Campaign()
	if cfg.Levels.Dir != "" {
		src = level.Layered{level.NewDirSource(config.ExpandHome(cfg.Levels.Dir)), level.Campaign()}
	}
	return level.NewStore(src, logger)
}

// openStore opens the database. Failure is reported and yields nil; the
// game runs without persistence.
func openStore(cfg config.AppConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open database, scores and checkpoints will not persist", "err", err)
		return nil
	}
	return store
}

// checkpointStore persists checkpoints in the settings table when a
// database is available.
func checkpointStore(store *storage.Store, key string, logger *log.Logger) checkpoint.Store {
	if store == nil {
		return checkpoint.NewMemory()
	}
	return checkpoint.NewSettingsStore(store, key, logger)
}

// gameParts are the collaborators a game is built from.
type gameParts struct {
	cfg         config.AppConfig
	checkpoints checkpoint.Store
	listeners   []run.Listener
	observers   []duckhunt.Observer
	logger      *log.Logger
}

func newGame(p gameParts) *duckhunt.Game {
	return duckhunt.New(duckhunt.Options{
		Levels:      levelStore(p.cfg, p.logger),
		Checkpoints: p.checkpoints,
		RunOptions:  p.cfg.Run.Options(),
		Listeners:   p.listeners,
		Observers:   p.observers,
		Padding:     p.cfg.Arena.Padding,
		Logger:      p.logger,
	})
}
