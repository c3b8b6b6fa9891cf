package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/spmaudit/pkg/cache"
	"github.com/matzehuels/spmaudit/pkg/config"
	"github.com/matzehuels/spmaudit/pkg/integrations/github"
)

// loadConfig reads the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// openCache builds the cache backend selected in cfg.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Cache.RedisAddr, err)
		}
		return c, nil
	case "file", "":
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, err
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache %s: %w", dir, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// cacheDir resolves the file-cache directory, preferring the configured one.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// newGitHubClient wires the GitHub client from config: token resolution,
// API base override, and the shared cache.
func newGitHubClient(cfg *config.Config, backing cache.Cache) *github.Client {
	return github.NewClient(github.Config{
		Token:   cfg.Token(),
		BaseURL: cfg.GitHub.APIBase,
		Cache:   backing,
		TTL:     cfg.CacheTTL(),
	})
}
