package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cask-games/marquee/pkg/theme"
)

type Config struct {
	ListenAddr     string            `toml:"listen_addr"`
	SettleMs       int               `toml:"settle_ms"`
	DefaultTheme   string            `toml:"default_theme"`
	DefaultVariant string            `toml:"default_variant"`
	LogLevel       string            `toml:"log_level"`
	Variants       map[string]string `toml:"variants"`
	Cache          CacheConfig       `toml:"cache"`
}

type CacheConfig struct {
	Backend string `toml:"backend"` // one of: none, memory, sqlite, postgres
	Path    string `toml:"path"`    // sqlite database path
	DSN     string `toml:"dsn"`     // postgres connection string
}

func Defaults() *Config {
	return &Config{
		ListenAddr:     ":8080",
		SettleMs:       100,
		DefaultTheme:   "light",
		DefaultVariant: "primary",
		LogLevel:       "info",
		Variants:       map[string]string{},
		Cache:          CacheConfig{Backend: "none"},
	}
}

// Load reads configuration from path, overlaying it onto defaults. An empty
// path yields defaults without error; an unreadable or unparsable file
// yields defaults and an error.
func Load(path string) (*Config, error) {
	defaults := Defaults()
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), defaults); err != nil {
		return defaults, fmt.Errorf("parse config: %w", err)
	}
	defaults.normalize()
	return defaults, nil
}

func (c *Config) normalize() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.SettleMs <= 0 {
		c.SettleMs = 100
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "none"
	}
}

// Validate checks the parts of the config that have no workable fallback.
func (c *Config) Validate() error {
	if _, err := theme.ParseTheme(c.DefaultTheme); err != nil {
		return fmt.Errorf("invalid default_theme: %w", err)
	}
	if len(c.Variants) < 2 {
		return errors.New("at least two content variants must be configured")
	}
	if _, ok := c.Variants[c.DefaultVariant]; !ok {
		return fmt.Errorf("default_variant %q is not a configured variant", c.DefaultVariant)
	}
	switch c.Cache.Backend {
	case "none", "memory":
	case "sqlite":
		if c.Cache.Path == "" {
			return errors.New("cache.path is required for the sqlite backend")
		}
	case "postgres":
		if c.Cache.DSN == "" {
			return errors.New("cache.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}
	return nil
}

// SettleDelay returns the post-mount settle delay.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}
