package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/metro/pkg/cache"
	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/observability"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the HTTP server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline with caching.
//
// When the events cannot be laid out, Execute returns the error together
// with a Result holding the events and the rows laid out before the failing
// event, so callers can still show partial output.
func (r *Runner) Execute(ctx context.Context, script []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{ScriptHash: cache.Hash(script)}

	// Stage 1: Decode
	decodeStart := time.Now()
	events, err := Decode(ctx, script, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Events = events
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.EventCount = len(events)

	logger.Debug("decoded script",
		"input", opts.Input,
		"events", len(events),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	rows, err := Layout(ctx, events, opts.LayoutOptions())
	result.Rows = rows
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = len(rows)
	if err != nil {
		return result, fmt.Errorf("layout: %w", err)
	}

	logger.Debug("computed layout",
		"collapse", opts.Collapse,
		"rows", len(rows),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.ScriptHash, events, rows, opts)
	if err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache. Cache failures are logged and treated
// as misses.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scriptHash string, events []event.Event, rows []layout.Row, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, artifactKeyType)
				break
			}
			hooks.OnCacheHit(ctx, artifactKeyType)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, events, rows, opts)
	if err != nil {
		return nil, false, err
	}

	for _, format := range opts.Formats {
		data := rendered[format]
		key := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
