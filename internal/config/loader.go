package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const marblesFile = "marbles.yaml"

// LoadMarbles loads the marble configuration.
// Search order: customPath -> ~/.marbles/configs/marbles.yaml -> ./configs/marbles.yaml -> embedded default
//
// Files are decoded over DefaultMarblesConfig, so a file only needs the keys
// it changes.
func LoadMarbles(customPath string) (MarblesConfig, error) {
	cfg, _, err := LoadMarblesWithSource(customPath)
	return cfg, err
}

// LoadMarblesWithSource is LoadMarbles that also reports which file the
// config came from ("embedded" or "builtin" when no file was used).
func LoadMarblesWithSource(customPath string) (MarblesConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MarblesConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMarbles(data)
		if err != nil {
			return MarblesConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(marblesFile), filepath.Join("configs", marblesFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseMarbles(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseMarbles(defaultMarblesYAML)
	if err != nil {
		return DefaultMarblesConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

func parseMarbles(data []byte) (MarblesConfig, error) {
	cfg := DefaultMarblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MarblesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".marbles", "configs", filename)
}

// ApplyMarblesPreset modifies the config based on a difficulty preset.
func ApplyMarblesPreset(cfg *MarblesConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Suction.Strength = 1600
		cfg.Spit.Speed = 420
		cfg.Balls.Count = 8
		cfg.World.MixRatePerSec = 0.6
	case DifficultyHard:
		cfg.Suction.Strength = 900
		cfg.Spit.Speed = 650
		cfg.Balls.Count = 18
		cfg.World.MixRatePerSec = 1.2
	}
}
