// Package config loads clipd server configuration from an optional YAML
// file with environment variable overrides. Environment always wins, so a
// config file can ship defaults while deployment tweaks stay in the
// process environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the clipd server configuration.
type Config struct {
	// Listen is the HTTP listen address
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database file. Empty selects the in-memory
	// store, which loses all clipboards on restart.
	DBPath string `yaml:"db_path"`

	// LogLevel is the zap level: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Listen:   ":8080",
		DBPath:   "",
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv applies environment variable overrides to cfg:
// CLIPD_LISTEN, CLIPD_DB, CLIPD_LOG_LEVEL.
func FromEnv(cfg Config) Config {
	cfg.Listen = getenv("CLIPD_LISTEN", cfg.Listen)
	cfg.DBPath = getenv("CLIPD_DB", cfg.DBPath)
	cfg.LogLevel = getenv("CLIPD_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

// Resolve produces the effective configuration: defaults, then the YAML
// file named by CLIPD_CONFIG (if any), then environment overrides.
func Resolve() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CLIPD_CONFIG"); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	return FromEnv(cfg), nil
}

// getenv retrieves an environment variable with a default fallback value.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
