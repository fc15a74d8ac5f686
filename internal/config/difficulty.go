package config

import (
	"fmt"

	"github.com/vovakirdan/duckclick/internal/run"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic" // one life, no retries
)

// Presets returns the known presets, easiest first.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic}
}

// KnownPreset reports whether p names a preset.
func KnownPreset(p DifficultyPreset) bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic:
		return true
	}
	return false
}

// LivesForPreset returns the starting lives for a preset.
func LivesForPreset(p DifficultyPreset) int {
	switch p {
	case DifficultyEasy:
		return 5
	case DifficultyHard, DifficultyClassic:
		return 1
	default:
		return run.DefaultStartingLives
	}
}

// PolicyForPreset returns the failure policy for a preset.
func PolicyForPreset(p DifficultyPreset) run.FailurePolicy {
	if p == DifficultyClassic {
		return run.SingleLife
	}
	return run.MultiLife
}

// ApplyPreset modifies the run section based on a difficulty preset.
func ApplyPreset(cfg *AppConfig, p DifficultyPreset) error {
	if !KnownPreset(p) {
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or classic)", p)
	}
	cfg.Run.Difficulty = p
	cfg.Run.StartingLives = LivesForPreset(p)
	cfg.Run.FailurePolicy = PolicyForPreset(p).String()
	return nil
}
