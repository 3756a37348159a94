package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for the tidedb commands. The first
// store listed is the default store for brand-new stations.
type Config struct {
	Stores []string `yaml:"stores"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveStores decides which store paths to use: explicit --db flags win,
// then the config file, and at least one path must come from somewhere.
func resolveStores(opts *RootOptions) ([]string, error) {
	if len(opts.Databases) > 0 {
		return opts.Databases, nil
	}
	if opts.Config != "" {
		cfg, err := LoadConfig(opts.Config)
		if err != nil {
			return nil, err
		}
		if len(cfg.Stores) == 0 {
			return nil, fmt.Errorf("config %s lists no stores", opts.Config)
		}
		return cfg.Stores, nil
	}
	return nil, fmt.Errorf("no stores configured: pass --db or --config")
}
