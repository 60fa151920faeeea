package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultFeedsPath        = "feeds.txt"
	defaultDBPath           = "remy.db"
	defaultLogPath          = "remy.log"
	defaultFetchTimeout     = 15 * time.Second
	defaultConcurrency      = 4
	defaultCacheLimit       = 500
	defaultSeparatorPercent = 50
)

// Config holds runtime settings for the reader.
type Config struct {
	FeedsPath        string        `toml:"feeds_path"`
	DBPath           string        `toml:"db_path"`
	LogPath          string        `toml:"log_path"`
	FetchTimeout     time.Duration `toml:"fetch_timeout"`
	Concurrency      int           `toml:"concurrency"`
	CacheLimit       int           `toml:"cache_limit"`
	Cleanup          bool          `toml:"cleanup"`
	SeparatorPercent int           `toml:"separator_percent"`
}

func Default() Config {
	return Config{
		FeedsPath:        defaultFeedsPath,
		DBPath:           defaultDBPath,
		LogPath:          defaultLogPath,
		FetchTimeout:     defaultFetchTimeout,
		Concurrency:      defaultConcurrency,
		CacheLimit:       defaultCacheLimit,
		Cleanup:          true,
		SeparatorPercent: defaultSeparatorPercent,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/remy/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "remy", "config.toml"), nil
}

// Load reads the TOML file at path when it exists, applies environment
// overrides and validates the result. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv builds a config from defaults and environment variables only.
func LoadFromEnv() (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("REMY_FEEDS_PATH"); v != "" {
		c.FeedsPath = v
	}
	if v := os.Getenv("REMY_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("REMY_LOG_PATH"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("REMY_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REMY_FETCH_TIMEOUT: %w", err)
		}
		c.FetchTimeout = d
	}
	if v := os.Getenv("REMY_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REMY_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.FeedsPath == "" {
		return errors.New("FeedsPath is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.LogPath == "" {
		return errors.New("LogPath is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FetchTimeout must be positive: %s", c.FetchTimeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("Concurrency must be at least 1: %d", c.Concurrency)
	}
	if c.CacheLimit < 1 {
		return fmt.Errorf("CacheLimit must be at least 1: %d", c.CacheLimit)
	}
	if c.SeparatorPercent < 10 || c.SeparatorPercent > 90 {
		return fmt.Errorf("SeparatorPercent must be between 10 and 90: %d", c.SeparatorPercent)
	}
	return nil
}
