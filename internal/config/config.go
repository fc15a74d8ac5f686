// Package config provides YAML-based application configuration loading and
// difficulty presets for duckclick.
package config

import (
	"fmt"

	"github.com/vovakirdan/duckclick/internal/run"
)

// AppConfig contains all configuration for a duckclick session.
type AppConfig struct {
	Run     RunConfig     `yaml:"run"`
	Levels  LevelsConfig  `yaml:"levels"`
	Arena   ArenaConfig   `yaml:"arena"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
}

// RunConfig defines how a run starts and how failures are resolved.
type RunConfig struct {
	Difficulty      DifficultyPreset `yaml:"difficulty"`
	FailurePolicy   string           `yaml:"failure_policy"` // "multi_life" or "single_life"
	StartingLives   int              `yaml:"starting_lives"`
	FirstLevel      int              `yaml:"first_level"`
	CheckpointLevel int              `yaml:"checkpoint_level"` // 0 disables checkpoints
}

// LevelsConfig locates level records.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Layered over the built-in campaign when set
}

// ArenaConfig defines playfield parameters.
type ArenaConfig struct {
	TickRate int     `yaml:"tick_rate"`
	Padding  float64 `yaml:"padding"` // Cells kept clear at the arena edges
}

// AudioConfig defines music and sound effect settings.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRate  int     `yaml:"sample_rate"`
	MusicVolume float64 `yaml:"music_volume"` // 0.0 to 1.0
	SFXVolume   float64 `yaml:"sfx_volume"`   // 0.0 to 1.0
}

// StorageConfig defines where scores, checkpoints and logs are kept.
type StorageConfig struct {
	Path    string `yaml:"path"`
	LogPath string `yaml:"log_path"`
}

// Validate normalises zero values back to defaults and rejects values that
// cannot be normalised.
func (c *AppConfig) Validate() error {
	def := DefaultAppConfig()

	if c.Run.Difficulty == "" {
		c.Run.Difficulty = def.Run.Difficulty
	}
	if !KnownPreset(c.Run.Difficulty) {
		return fmt.Errorf("config: unknown difficulty %q", c.Run.Difficulty)
	}
	if c.Run.FailurePolicy == "" {
		c.Run.FailurePolicy = def.Run.FailurePolicy
	}
	policy, ok := run.ParseFailurePolicy(c.Run.FailurePolicy)
	if !ok {
		return fmt.Errorf("config: unknown failure policy %q", c.Run.FailurePolicy)
	}
	c.Run.FailurePolicy = policy.String()
	if c.Run.StartingLives <= 0 {
		c.Run.StartingLives = def.Run.StartingLives
	}
	if c.Run.FirstLevel <= 0 {
		c.Run.FirstLevel = def.Run.FirstLevel
	}
	if c.Run.CheckpointLevel < 0 {
		return fmt.Errorf("config: checkpoint level %d is negative", c.Run.CheckpointLevel)
	}

	if c.Arena.TickRate <= 0 {
		c.Arena.TickRate = def.Arena.TickRate
	}
	if c.Arena.Padding < 0 {
		c.Arena.Padding = def.Arena.Padding
	}

	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("config: music volume %v outside [0, 1]", c.Audio.MusicVolume)
	}
	if c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1 {
		return fmt.Errorf("config: sfx volume %v outside [0, 1]", c.Audio.SFXVolume)
	}

	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Storage.LogPath == "" {
		c.Storage.LogPath = def.Storage.LogPath
	}
	return nil
}

// Policy returns the parsed failure policy. Call Validate first.
func (c RunConfig) Policy() run.FailurePolicy {
	p, _ := run.ParseFailurePolicy(c.FailurePolicy)
	return p
}

// Options converts the run section into controller options.
func (c RunConfig) Options() []run.Option {
	return []run.Option{
		run.WithFailurePolicy(c.Policy()),
		run.WithStartingLives(c.StartingLives),
		run.WithFirstLevel(c.FirstLevel),
		run.WithCheckpointLevel(c.CheckpointLevel),
	}
}
