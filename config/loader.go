package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultSource names the embedded defaults in Load's result.
const DefaultSource = "embedded"

// Load overlays YAML settings onto the configuration vars. Keys missing from
// the file keep their current values.
// Search order: customPath -> ~/.islandcore/engine.yaml -> ./configs/engine.yaml -> embedded default
// It returns the source that was applied.
func Load(customPath string) (string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := overlay(data); err != nil {
			return "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("engine.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := overlay(data); err == nil {
				return userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/engine.yaml"); err == nil {
		if err := overlay(data); err == nil {
			return "configs/engine.yaml", nil
		}
	}

	// Use embedded default YAML
	if err := overlay(defaultEngineYAML); err != nil {
		return "", fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	return DefaultSource, nil
}

// overlay applies data only if it parses completely.
func overlay(data []byte) error {
	s := Current()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	Apply(s)
	return nil
}

// Marshal renders the current configuration as YAML.
func Marshal() ([]byte, error) {
	return yaml.Marshal(Current())
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".islandcore", filename)
}
