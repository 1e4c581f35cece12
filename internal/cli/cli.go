// Package cli implements the scenetree command-line interface.
//
// This package provides commands for parsing design document exports,
// dry-run building them into element hierarchies, rendering structural
// diagrams, browsing trees interactively, serving the HTTP API and managing
// the image cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Validate a design export and print its statistics
//   - build: Build the element hierarchy through the in-memory environment
//   - graph: Generate DOT, SVG or PNG structure diagrams
//   - view: Browse a document tree interactively
//   - docs: Save, list and retrieve documents from the store
//   - serve: Run the HTTP API
//   - cache: Manage the image byte cache
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mlorenz/scenetree/pkg/buildinfo"
	"github.com/mlorenz/scenetree/pkg/cache"
	"github.com/mlorenz/scenetree/pkg/config"
	"github.com/mlorenz/scenetree/pkg/fetch"
	"github.com/mlorenz/scenetree/pkg/scene"
	"github.com/mlorenz/scenetree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scenetree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scenetree",
		Short:        "Scenetree turns design exports into element hierarchies",
		Long:         `Scenetree is a CLI tool for parsing JSON design document exports into node trees and building them into visual element hierarchies, with structural diagrams and an HTTP API on top.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/scenetree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file on top of the defaults.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil // no home dir; run with defaults
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Component Factories
// =============================================================================

// newCache creates the byte cache selected by the configuration.
// noCache forces the null cache regardless of configuration.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// newDispatcher creates a fetch dispatcher for image fills, or nil when
// fetching is disabled.
func (c *CLI) newDispatcher(ctx context.Context, enabled, noCache bool) (*fetch.Dispatcher, error) {
	if !enabled {
		return nil, nil
	}
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	client := fetch.NewClient(backend, fetch.Options{
		Timeout:  time.Duration(c.Config.Fetch.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(c.Config.Cache.TTLHours) * time.Hour,
		MaxBytes: c.Config.Fetch.MaxBytes,
	})
	return fetch.NewDispatcher(client, c.Logger), nil
}

// convention resolves the configured coordinate convention, honoring an
// optional per-command override.
func (c *CLI) convention(override string) (scene.Convention, string, error) {
	name := override
	if name == "" {
		name = c.Config.Build.Convention
	}
	conv, ok := scene.ConventionNamed(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown convention %q (use %s or %s)",
			name, config.ConventionYUpCentered, config.ConventionYDownTopLeft)
	}
	return conv, name, nil
}

// openStore connects to the configured document store.
func (c *CLI) openStore(ctx context.Context) (*store.Store, error) {
	uri := c.Config.Store.MongoURI
	if uri == "" {
		return nil, fmt.Errorf("no document store configured (set store.mongo_uri in the config file)")
	}
	return store.Connect(ctx, uri, c.Config.Store.Database, c.Config.Store.Collection)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scenetree/).
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
