package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ucycle/pkg/cache"
	"github.com/matzehuels/ucycle/pkg/pipeline"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// Config is the on-disk configuration ($XDG_CONFIG_HOME/ucycle/config.toml).
//
//	max_order = 10
//	strategy  = "ruskey-williams"
//
//	[cache]
//	backend    = "file"        # file, redis, mongo or none
//	dir        = "~/.cache/ucycle"
//	ttl        = "720h"
//	redis_addr = "localhost:6379"
//	mongo_uri  = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
type Config struct {
	MaxOrder int          `toml:"max_order"`
	Strategy string       `toml:"strategy"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	MongoURI  string   `toml:"mongo_uri"`
}

// ServerConfig configures "ucycle serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "36h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	dir, _ := cacheDir()
	return &Config{
		MaxOrder: pipeline.DefaultMaxOrder,
		Strategy: pipeline.DefaultStrategy.String(),
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			Dir:       dir,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error; an explicit path that is missing is.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxOrder < 0 || c.MaxOrder > pipeline.HardMaxOrder {
		return fmt.Errorf("max_order %d outside [0, %d]", c.MaxOrder, pipeline.HardMaxOrder)
	}
	if _, err := ucycle.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// cacheOptions converts the cache section for cache.Open.
func (c *Config) cacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       expandHome(c.Cache.Dir),
		RedisAddr: c.Cache.RedisAddr,
		MongoURI:  c.Cache.MongoURI,
	}
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the default config file using XDG (~/.config/ucycle/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using XDG (~/.cache/ucycle/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
