// Package level provides the declarative level records that drive a run:
// the record schema, its on-disk format and a caching store with default
// fallback.
package level

import "fmt"

// SizeDistribution holds the relative spawn weights of the three target tiers.
type SizeDistribution struct {
	Large  float64 `yaml:"large"`
	Medium float64 `yaml:"medium"`
	Small  float64 `yaml:"small"`
}

// DefaultSizeDistribution is used whenever the configured weights sum to zero.
var DefaultSizeDistribution = SizeDistribution{Large: 0.6, Medium: 0.35, Small: 0.05}

// Normalize returns the distribution scaled so the weights sum to 1.0.
// Negative weights count as zero. A non-positive total yields the default.
func (d SizeDistribution) Normalize() SizeDistribution {
	large := max(d.Large, 0)
	medium := max(d.Medium, 0)
	small := max(d.Small, 0)

	sum := large + medium + small
	if sum <= 0 {
		return DefaultSizeDistribution
	}
	return SizeDistribution{
		Large:  large / sum,
		Medium: medium / sum,
		Small:  small / sum,
	}
}

// Sum returns the total weight.
func (d SizeDistribution) Sum() float64 {
	return d.Large + d.Medium + d.Small
}

// Config is one level's immutable configuration.
type Config struct {
	LevelID               int              `yaml:"levelId"`
	LevelName             string           `yaml:"levelName"`
	GoodTargetCount       int              `yaml:"goodTargetCount"`
	DecoyTargetCount      int              `yaml:"decoyTargetCount"`
	TimeLimitSeconds      float64          `yaml:"timeLimitSeconds"`
	SpawnIntervalSeconds  float64          `yaml:"spawnIntervalSeconds"`
	TargetLifetimeSeconds float64          `yaml:"targetLifetimeSeconds"`
	DecoyPenaltySeconds   int              `yaml:"decoyPenaltySeconds"`
	SizeDistribution      SizeDistribution `yaml:"sizeDistribution"`
	SpecialMechanics      []string         `yaml:"specialMechanics"`
	BackgroundMusicKey    string           `yaml:"backgroundMusicKey"`
	DifficultyLabel       string           `yaml:"difficultyLabel"`

	// Descriptive only; carried through unchanged.
	DesignNotes       string  `yaml:"designNotes,omitempty"`
	TargetSuccessRate float64 `yaml:"targetSuccessRate,omitempty"`
	LearningObjective string  `yaml:"learningObjective,omitempty"`
}

// Default record values, used for synthesized levels and for fields missing
// from a record.
const (
	DefaultGoodTargetCount       = 3
	DefaultDecoyTargetCount      = 0
	DefaultTimeLimitSeconds      = 30.0
	DefaultSpawnIntervalSeconds  = 3.0
	DefaultTargetLifetimeSeconds = 5.0
	DefaultDecoyPenaltySeconds   = 2
	DefaultDifficultyLabel       = "tutorial"
	DefaultMusicKey              = "tutorial_theme"
)

// Default returns the synthesized record used when a level is missing or corrupt.
func Default(id int) Config {
	return Config{
		LevelID:               id,
		LevelName:             fmt.Sprintf("Level %d", id),
		GoodTargetCount:       DefaultGoodTargetCount,
		DecoyTargetCount:      DefaultDecoyTargetCount,
		TimeLimitSeconds:      DefaultTimeLimitSeconds,
		SpawnIntervalSeconds:  DefaultSpawnIntervalSeconds,
		TargetLifetimeSeconds: DefaultTargetLifetimeSeconds,
		DecoyPenaltySeconds:   DefaultDecoyPenaltySeconds,
		SizeDistribution:      DefaultSizeDistribution,
		BackgroundMusicKey:    DefaultMusicKey,
		DifficultyLabel:       DefaultDifficultyLabel,
	}
}

// Degenerate reports whether the level has nothing to spawn.
func (c Config) Degenerate() bool {
	return c.GoodTargetCount == 0 && c.DecoyTargetCount == 0
}

// TotalTargets returns the number of entities the level spawns.
func (c Config) TotalTargets() int {
	return c.GoodTargetCount + c.DecoyTargetCount
}

// Key returns the record key for a level id, e.g. 1 -> "level_001".
func Key(id int) string {
	return fmt.Sprintf("level_%03d", id)
}
