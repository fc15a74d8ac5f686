package config

import (
	_ "embed"

	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/storage"
)

//go:embed defaults/duckclick.yaml
var defaultAppYAML []byte

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 30

// DefaultSampleRate is the audio output rate used when none is configured.
const DefaultSampleRate = 48000

// DefaultLogPath is where the TUI writes its log while the alt-screen is up.
const DefaultLogPath = "~/.duckclick/duckclick.log"

// DefaultAppConfig returns the hard-coded configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Run: RunConfig{
			Difficulty:      DifficultyNormal,
			FailurePolicy:   run.MultiLife.String(),
			StartingLives:   run.DefaultStartingLives,
			FirstLevel:      run.DefaultFirstLevel,
			CheckpointLevel: run.DefaultCheckpointLevel,
		},
		Arena: ArenaConfig{
			TickRate: DefaultTickRate,
			Padding:  3.0,
		},
		Audio: AudioConfig{
			Enabled:     true,
			SampleRate:  DefaultSampleRate,
			MusicVolume: 0.25,
			SFXVolume:   0.5,
		},
		Storage: StorageConfig{
			Path:    storage.DefaultPath,
			LogPath: DefaultLogPath,
		},
	}
}
