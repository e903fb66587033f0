package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/metro/pkg/cache"
	"github.com/matzehuels/metro/pkg/layout"
)

// Cache backends selectable in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultServeAddr is the listen address of "metro serve".
const DefaultServeAddr = ":8080"

// Config holds user defaults read from the TOML config file.
//
//	collapse = "compact"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[serve]
//	addr = ":9000"
type Config struct {
	Collapse string      `toml:"collapse"`
	Cache    CacheConfig `toml:"cache"`
	Redis    RedisConfig `toml:"redis"`
	Serve    ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`   // file (default), redis or none
	Dir       string `toml:"dir"`       // file backend directory
	Namespace string `toml:"namespace"` // key prefix, for shared backends
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServeConfig configures "metro serve".
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Collapse: layout.CollapseStepwise.String(),
		Cache:    CacheConfig{Backend: BackendFile},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: cache.DefaultRedisPrefix},
		Serve:    ServeConfig{Addr: DefaultServeAddr},
	}
}

// LoadConfig reads the config file at path on top of the defaults. An empty
// path selects the default location, which may be absent; an explicit path
// must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	return cfg, cfg.Validate()
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := layout.ParseCollapse(c.Collapse); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// configDir returns the metro config directory using the XDG standard
// (~/.config/metro/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
