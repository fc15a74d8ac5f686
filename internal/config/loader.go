package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "duckclick.yaml"

// Load loads the application configuration and validates it.
// Search order: customPath -> ~/.duckclick/configs/duckclick.yaml ->
// ./configs/duckclick.yaml -> embedded default -> DefaultAppConfig.
// Only an explicit customPath that cannot be read or parsed is an error;
// a broken file elsewhere in the chain is skipped.
func Load(customPath string) (AppConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := parse(defaultAppYAML)
	if err != nil {
		cfg = DefaultAppConfig()
	}
	return cfg, cfg.Validate()
}

func loadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// explicitRun records which run keys a file sets itself.
type explicitRun struct {
	Run struct {
		FailurePolicy *string `yaml:"failure_policy"`
		StartingLives *int    `yaml:"starting_lives"`
	} `yaml:"run"`
}

// parse decodes data over the defaults, so omitted keys keep their default.
// A known difficulty then fills in the lives and failure policy the file
// leaves out; explicit keys win over the preset.
func parse(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	var set explicitRun
	if err := yaml.Unmarshal(data, &set); err != nil {
		return cfg, err
	}
	if p := cfg.Run.Difficulty; KnownPreset(p) {
		if set.Run.StartingLives == nil {
			cfg.Run.StartingLives = LivesForPreset(p)
		}
		if set.Run.FailurePolicy == nil {
			cfg.Run.FailurePolicy = PolicyForPreset(p).String()
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duckclick", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
