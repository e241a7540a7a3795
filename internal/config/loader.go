package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunway loads the runway configuration.
// Search order: customPath -> ~/.runway/configs/runway.yaml -> ./configs/runway.yaml -> embedded default.
// Files are layered over the defaults, so a file only needs the keys it changes.
func LoadRunway(customPath string) (RunwayConfig, error) {
	// Try custom path first; a broken explicit file is an error
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunwayConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRunway(data)
		if err != nil {
			return RunwayConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Implicit locations are skipped when unreadable or invalid
	for _, path := range []string{userConfigPath("runway.yaml"), filepath.Join("configs", "runway.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseRunway(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseRunway(defaultRunwayYAML); err == nil {
		return cfg, nil
	}
	return DefaultRunwayConfig(), nil
}

// parseRunway decodes YAML over the built-in defaults and validates the result.
func parseRunway(data []byte) (RunwayConfig, error) {
	cfg := DefaultRunwayConfig()
	// Lists and maps given in the file replace the defaults entirely
	cfg.Lanes.Positions = nil
	cfg.Difficulties = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunwayConfig{}, err
	}

	defaults := DefaultRunwayConfig()
	if cfg.Lanes.Positions == nil {
		cfg.Lanes.Positions = defaults.Lanes.Positions
	}
	if cfg.Difficulties == nil {
		cfg.Difficulties = defaults.Difficulties
	}
	if err := cfg.Validate(); err != nil {
		return RunwayConfig{}, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg RunwayConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runway", "configs", filename)
}
