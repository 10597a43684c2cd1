// Package config loads the optional configuration file and resolves the
// credential and default paths from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	CacheDir string `yaml:"cache_dir"`
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "github-metrics", "config.yaml")
}

func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "github-metrics")
}

// Load reads the YAML config at path, or at DefaultPath when path is empty.
// A missing default config file is not an error and yields an empty config;
// an explicitly given path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Token returns the API credential from the environment: GITHUB_TOKEN first,
// ACCESS_TOKEN as a fallback.
func Token() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("ACCESS_TOKEN")
}
