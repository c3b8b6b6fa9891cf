// Package config loads tool configuration from a TOML file and the
// environment. All settings are optional; an absent config file yields
// defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables checked (in order) for a GitHub API token.
var tokenEnvVars = []string{"GH_TOKEN", "GITHUB_TOKEN", "GITHUB_API_TOKEN"}

const (
	defaultCacheTTLHours = 24
	defaultCacheBackend  = "file"
)

// Config holds tool configuration.
type Config struct {
	GitHub GitHub `toml:"github"`
	Cache  Cache  `toml:"cache"`
}

// GitHub configures upstream API access.
type GitHub struct {
	Token   string `toml:"token"`
	APIBase string `toml:"api_base"`
}

// Cache configures the response cache.
type Cache struct {
	// Backend selects the cache implementation: "file" (default), "redis",
	// or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	TTLHours  int    `toml:"ttl_hours"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: Cache{
			Backend:  defaultCacheBackend,
			TTLHours: defaultCacheTTLHours,
		},
	}
}

// Load reads configuration from path. A missing file is not an error and
// yields the defaults; a present but malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = defaultCacheBackend
	}
	if cfg.Cache.TTLHours <= 0 {
		cfg.Cache.TTLHours = defaultCacheTTLHours
	}
	return cfg, nil
}

// DefaultPath returns the default config file location,
// ~/.config/spmaudit/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spmaudit", "config.toml")
}

// Token resolves the GitHub API token: environment variables take
// precedence over the config file.
func (c *Config) Token() string {
	for _, name := range tokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return c.GitHub.Token
}

// CacheTTL returns the cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
