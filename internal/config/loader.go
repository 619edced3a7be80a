package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the gyromaze configuration.
// Search order: customPath -> ~/.gyromaze/configs/gyromaze.yaml ->
// ./configs/gyromaze.yaml -> embedded default.
// Files are unmarshalled over the defaults, so a partial override file
// only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("gyromaze.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "gyromaze.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // fall back to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file path, or empty when
// the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gyromaze", "configs", filename)
}

// ApplyPreset adjusts the config for an assist preset. Classic is the
// tuning as loaded; casual slows the ball down and adds lives; expert
// sharpens the response and takes one away.
func ApplyPreset(cfg *Config, preset AssistPreset) {
	switch preset {
	case AssistCasual:
		cfg.Physics.Friction = 0.90
		cfg.Physics.Sensitivity = 0.85
		cfg.Gameplay.StartingLives = 5
	case AssistExpert:
		cfg.Physics.Sensitivity = 1.15
		cfg.Physics.MaxSpeed = 12
		cfg.Gameplay.StartingLives = 2
	}
}
