package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config directories.
const configFile = "lines.yaml"

// LoadLines loads the Lines configuration.
// Search order: customPath -> ~/.lines/configs/lines.yaml -> ./configs/lines.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error.
// Broken files on the implicit search path are skipped.
func LoadLines(customPath string) (LinesConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return LinesConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", configFile)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultLinesYAML)
	if err != nil {
		return DefaultLinesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML into a configuration. Fields missing from data keep
// their default values. The result is validated.
func Parse(data []byte) (LinesConfig, error) {
	cfg := DefaultLinesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LinesConfig{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LinesConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg LinesConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// loadFile reads, parses and validates one config file.
func loadFile(path string) (LinesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinesConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return LinesConfig{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lines", "configs", filename)
}
