// Package config loads client configuration for the dblp CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the default configuration file name.
const ConfigFile = "config.yml"

// Config holds the tunable client settings.
type Config struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxWorkers     int     `yaml:"max_workers"`
	RateLimit      float64 `yaml:"rate_limit"` // requests per second, 0 disables
	UserAgent      string  `yaml:"user_agent"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseURL:        "https://dblp.uni-trier.de/",
		TimeoutSeconds: 30,
		MaxWorkers:     50,
	}
}

// DefaultPath returns the configuration file path: $DBLP_CONFIG if
// set, otherwise the dblp directory under the user config dir.
func DefaultPath() string {
	if p := os.Getenv("DBLP_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dblp", ConfigFile)
}

// Load reads and validates a configuration file. A missing file yields
// the defaults; an unreadable or invalid one is an error. Environment
// overrides are applied in both cases.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("max_workers must be positive, got %d", c.MaxWorkers)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// applyEnv overlays DBLP_* environment variables onto the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DBLP_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DBLP_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("DBLP_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxWorkers = n
		}
	}
	if v := os.Getenv("DBLP_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit = f
		}
	}
}
