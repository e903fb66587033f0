// Package cli implements the metro command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/metro/pkg/buildinfo"
	"github.com/matzehuels/metro/pkg/cache"
	metroerrors "github.com/matzehuels/metro/pkg/errors"
	metroio "github.com/matzehuels/metro/pkg/io"
	"github.com/matzehuels/metro/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "metro"

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
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Metro draws branching timelines as text metro diagrams",
		Long: `Metro renders a sequence of track events (stations, splits, joins and
stops) as a text diagram of parallel tracks, in the style of git log --graph.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/metro/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.config.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		r := c.config.Redis
		var opts []cache.RedisOption
		if r.Prefix != "" {
			opts = append(opts, cache.WithPrefix(r.Prefix))
		}
		opts = append(opts, cache.WithDefaultTTL(cache.TTLArtifact))
		return cache.NewRedisCache(ctx, r.Addr, r.Password, r.DB, opts...)
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, or the
// XDG cache directory (~/.cache/metro/).
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}

// readInput reads a script from path, or from stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if err := metroerrors.ValidateScriptPath(path); err != nil {
		return nil, err
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, metroerrors.Wrap(metroerrors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// inputFormat picks the script format: the explicit flag, else the file
// extension, else JSON.
func inputFormat(path, flag string) (string, error) {
	if flag != "" {
		f, err := metroio.ParseFormat(flag)
		return string(f), err
	}
	if path == "-" || filepath.Ext(path) == "" {
		return pipeline.DefaultInput, nil
	}
	f, err := metroio.FormatFromPath(path)
	return string(f), err
}
