// Package config loads sjavac settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".sjavac.yaml"

// Config holds user-overridable verifier settings.
type Config struct {
	// LogLevel is a zap level name. Default: "warn".
	LogLevel string `yaml:"log_level"`

	// Jobs bounds the number of files checked concurrently.
	// Default: runtime.NumCPU().
	Jobs int `yaml:"jobs"`

	// StrictCallArguments rejects uninitialized variables passed to a method.
	// Default: true.
	StrictCallArguments *bool `yaml:"strict_call_arguments"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig holds verdict cache settings.
type CacheConfig struct {
	// Enabled turns the verdict cache on. Default: false.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	// Defaults to SjavacHome/cache.db
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Jobs:     runtime.NumCPU(),
		Cache: CacheConfig{
			Path: filepath.Join(SjavacHome(), "cache.db"),
		},
	}
}

// SjavacHome returns the sjavac data directory.
// Uses SJAVAC_HOME environment variable if set, otherwise ~/.sjavac
func SjavacHome() string {
	if dir := os.Getenv("SJAVAC_HOME"); dir != "" {
		return dir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory
		return filepath.Join(".", ".sjavac")
	}

	return filepath.Join(homeDir, ".sjavac")
}

// Load reads the config file at path. An empty path means FileName in the
// working directory. A missing file yields the defaults; unreadable or
// invalid YAML is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}

// EffectiveStrictCallArguments returns the configured setting, or the
// default (true) if not set.
func (c *Config) EffectiveStrictCallArguments() bool {
	if c.StrictCallArguments != nil {
		return *c.StrictCallArguments
	}
	return true
}

// EnsureCacheDir creates the directory holding the cache database.
func (c *Config) EnsureCacheDir() error {
	return os.MkdirAll(filepath.Dir(c.Cache.Path), 0755)
}
