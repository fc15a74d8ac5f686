package level

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Parse decodes a level record. JSON records are accepted as-is since JSON is
// valid YAML. Decoding starts from Default(id), so fields absent from the
// record keep their documented defaults. A sizeDistribution that is present
// replaces the default weights as a whole.
func Parse(id int, data []byte) (Config, error) {
	cfg := Default(id)
	cfg.LevelName = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("level: parse %s: %w", Key(id), err)
	}
	return cfg, nil
}

// UnmarshalYAML replaces the whole distribution, so tiers a record leaves out
// weigh zero instead of keeping their default weights.
func (d *SizeDistribution) UnmarshalYAML(value *yaml.Node) error {
	type plain SizeDistribution
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = SizeDistribution(p)
	return nil
}

// sanitize enforces record invariants, logging every correction it makes.
func sanitize(cfg Config, id int, logger *log.Logger) Config {
	key := Key(id)

	if cfg.LevelID != id {
		if cfg.LevelID != 0 {
			logger.Warn("level id mismatch, using key id", "key", key, "levelId", cfg.LevelID)
		}
		cfg.LevelID = id
	}
	if cfg.LevelName == "" {
		cfg.LevelName = fmt.Sprintf("Level %d", id)
	}
	if cfg.GoodTargetCount < 0 {
		logger.Warn("negative goodTargetCount, clamping to 0", "key", key, "value", cfg.GoodTargetCount)
		cfg.GoodTargetCount = 0
	}
	if cfg.DecoyTargetCount < 0 {
		logger.Warn("negative decoyTargetCount, clamping to 0", "key", key, "value", cfg.DecoyTargetCount)
		cfg.DecoyTargetCount = 0
	}
	if cfg.DecoyPenaltySeconds < 0 {
		logger.Warn("negative decoyPenaltySeconds, clamping to 0", "key", key, "value", cfg.DecoyPenaltySeconds)
		cfg.DecoyPenaltySeconds = 0
	}
	if cfg.TimeLimitSeconds <= 0 {
		logger.Warn("non-positive timeLimitSeconds, using default", "key", key, "value", cfg.TimeLimitSeconds)
		cfg.TimeLimitSeconds = DefaultTimeLimitSeconds
	}
	if cfg.SpawnIntervalSeconds <= 0 {
		logger.Warn("non-positive spawnIntervalSeconds, using default", "key", key, "value", cfg.SpawnIntervalSeconds)
		cfg.SpawnIntervalSeconds = DefaultSpawnIntervalSeconds
	}
	if cfg.TargetLifetimeSeconds <= 0 {
		logger.Warn("non-positive targetLifetimeSeconds, using default", "key", key, "value", cfg.TargetLifetimeSeconds)
		cfg.TargetLifetimeSeconds = DefaultTargetLifetimeSeconds
	}
	if cfg.SizeDistribution.Sum() <= 0 {
		logger.Warn("empty sizeDistribution, using default", "key", key)
	}
	cfg.SizeDistribution = cfg.SizeDistribution.Normalize()

	if cfg.Degenerate() {
		logger.Error("level has no targets to spawn", "key", key)
	}
	return cfg
}
