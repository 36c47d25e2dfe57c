package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the optional --config file. Every field is
// a default: explicitly set flags win over it.
type fileConfig struct {
	// Dir is the backing store root directory.
	Dir string `yaml:"dir"`

	// Namespace is the namespace subcommands operate on.
	Namespace string `yaml:"namespace"`

	// Caching controls the namespace read cache. Defaults to true;
	// a CLI process rarely reads a key twice, but scripts sourcing the
	// config may care.
	Caching *bool `yaml:"caching"`
}

// loadConfig parses a YAML config file. A missing path is not an error when
// optional is true, so the default config location may simply not exist.
func loadConfig(path string, optional bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultDir returns the fallback backing store location, ~/.prefstore,
// degrading to a relative path when the home directory is unknown.
func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prefstore"
	}
	return filepath.Join(home, ".prefstore")
}
