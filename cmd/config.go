package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config holds CLI settings loaded from a YAML file.
type config struct {
	// MaxDepth caps unpacking-target and format-spec nesting.
	// Zero means the package defaults.
	MaxDepth int `yaml:"max_depth"`
}

// loadConfig reads a YAML config file. An empty path yields the zero
// config.
func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
