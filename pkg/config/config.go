// Package config loads scenetree configuration from a TOML file.
//
// The configuration file is optional; every field has a sensible default so
// the CLI works out of the box. The default location is
// ~/.config/scenetree/config.toml (respecting XDG_CONFIG_HOME), overridable
// via the --config flag.
//
// Example:
//
//	[cache]
//	backend = "file"        # "file", "redis" or "none"
//	ttl_hours = 24
//
//	[fetch]
//	timeout_seconds = 30
//	max_bytes = 8388608
//
//	[build]
//	convention = "y-up-centered"
//	max_depth = 4096
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in [CacheConfig].
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Coordinate convention names accepted in [BuildConfig].
const (
	ConventionYUpCentered  = "y-up-centered"
	ConventionYDownTopLeft = "y-down-top-left"
)

// Config is the root configuration for CLI and server.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Fetch  FetchConfig  `toml:"fetch"`
	Build  BuildConfig  `toml:"build"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and parameterizes the byte cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`   // file, redis or none
	Dir           string `toml:"dir"`       // file backend; empty uses XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLHours      int    `toml:"ttl_hours"` // image byte TTL
}

// FetchConfig parameterizes image fetching.
type FetchConfig struct {
	TimeoutSeconds int   `toml:"timeout_seconds"`
	MaxBytes       int64 `toml:"max_bytes"`
}

// BuildConfig parameterizes parsing and hierarchy building.
type BuildConfig struct {
	Convention string `toml:"convention"` // y-up-centered or y-down-top-left
	MaxDepth   int    `toml:"max_depth"`
}

// StoreConfig parameterizes the MongoDB document store.
// An empty MongoURI disables the store.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig parameterizes the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			TTLHours: 24,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			MaxBytes:       8 << 20,
		},
		Build: BuildConfig{
			Convention: ConventionYUpCentered,
			MaxDepth:   4096,
		},
		Store: StoreConfig{
			Database:   "scenetree",
			Collection: "documents",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the defaults are returned unchanged. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enum-like fields.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q", c.Cache.Backend)
	}
	switch c.Build.Convention {
	case ConventionYUpCentered, ConventionYDownTopLeft:
	default:
		return fmt.Errorf("invalid convention %q", c.Build.Convention)
	}
	return nil
}

// DefaultPath returns the default config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "scenetree", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scenetree", "config.toml"), nil
}
