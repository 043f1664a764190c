package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Token     string `yaml:"token"`
	BaseURL   string `yaml:"base_url"`
	CachePath string `yaml:"cache_path"`
}

// DefaultConfigName is the config file looked up in the home
// directory when no --config flag is given.
const DefaultConfigName = ".graphmail.yaml"

// LoadConfig reads a YAML config file. With an empty path the default
// location is tried; a missing default file yields a zero config
// rather than an error, so the CLI works unconfigured.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
