// Package pipeline provides the script-to-artifact pipeline shared by the
// metro CLI and HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read a JSON, YAML or TOML script into events
//  2. Layout: run the events through the layout engine
//  3. Render: produce every requested output format
//
// Decoding and layout are cheap and always run, so a bad script is reported
// even when its artifacts are cached. Rendered artifacts are cached per
// format under a key derived from the script bytes and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, script, pipeline.Options{
//	    Input:   "yaml",
//	    Formats: []string{"text", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifacts["text"])
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/metro/pkg/cache"
	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
	metroio "github.com/matzehuels/metro/pkg/io"
	"github.com/matzehuels/metro/pkg/layout"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultInput is the script format assumed when none is given.
const DefaultInput = string(metroio.FormatJSON)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ContentTypes maps each output format to its media type.
var ContentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the script format: json, yaml or toml.
	Input string `json:"input,omitempty"`

	// Layout options
	Collapse string `json:"collapse,omitempty"`
	NoRoot   bool   `json:"no_root,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // track ids in DOT/SVG labels

	// Refresh skips the cache read; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	collapse  layout.Collapse
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Events is the decoded script.
	Events []event.Event

	// Rows is the laid out diagram.
	Rows []layout.Row

	// ScriptHash is the content hash of the script bytes.
	ScriptHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int
	RowCount   int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return metroerrors.New(metroerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		o.Input = DefaultInput
	}
	f, err := metroio.ParseFormat(o.Input)
	if err != nil {
		return err
	}
	o.Input = string(f)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	c, err := layout.ParseCollapse(o.Collapse)
	if err != nil {
		return err
	}
	o.collapse = c
	o.Collapse = c.String()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutOptions returns the layout engine options. Call
// ValidateAndSetDefaults first.
func (o Options) LayoutOptions() layout.Options {
	return layout.Options{Collapse: o.collapse, NoRoot: o.NoRoot}
}

// ArtifactKeyOpts returns the cache key inputs for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Collapse: o.Collapse,
		NoRoot:   o.NoRoot,
		Detailed: o.Detailed,
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
