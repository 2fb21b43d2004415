// Package cli implements the blockdiag command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockdiag/pkg/cache"
	"github.com/matzehuels/blockdiag/pkg/config"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "blockdiag"

	// envConfig names a config file used when --config is not given.
	envConfig = "BLOCKDIAG_CONFIG"
)

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

	configPath string
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig returns the config named by --config or $BLOCKDIAG_CONFIG,
// or the defaults when neither is set.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" && c.getenv != nil {
		path = c.getenv(envConfig)
	}
	if path == "" {
		return config.Default(), nil
	}
	c.Logger.Debug("loading config", "path", path)
	return config.Load(path)
}

// sceneOptions loads the config and wires the CLI logger into scene options.
func (c *CLI) sceneOptions() (scene.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return scene.Options{}, err
	}
	opts, err := cfg.SceneOptions()
	if err != nil {
		return scene.Options{}, err
	}
	opts.Logger = c.Logger
	return opts, nil
}

// exportCache returns the on-disk cache for converted frames, pruned of
// expired entries, or cache.Disabled when turned off or unavailable.
func (c *CLI) exportCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled {
		return cache.Disabled
	}
	root, err := cache.DefaultDir()
	if err == nil {
		var d *cache.Dir
		if d, err = cache.OpenDir(root, cache.DefaultTTL); err == nil {
			if n, perr := d.Prune(ctx); perr != nil || n > 0 {
				c.Logger.Debug("export cache pruned", "dir", root, "removed", n, "err", perr)
			}
			return d
		}
	}
	c.Logger.Debug("export cache disabled", "err", err)
	return cache.Disabled
}
