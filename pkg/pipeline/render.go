package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/observability"
	"github.com/matzehuels/metro/pkg/render"
	"github.com/matzehuels/metro/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. The events
// must already have been laid out into rows without error.
func Render(ctx context.Context, events []event.Event, rows []layout.Row, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, events, rows, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, events []event.Event, rows []layout.Row, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// DOT is shared by the dot and svg formats.
	var dot string
	needDOT := func() error {
		if dot != "" {
			return nil
		}
		var err error
		dot, err = nodelink.ToDOT(events, nodelink.Options{
			Layout:   opts.LayoutOptions(),
			Detailed: opts.Detailed,
		})
		return err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = render.Bytes(rows)
		case FormatJSON:
			data, err = render.JSON(rows)
		case FormatDOT:
			if err = needDOT(); err == nil {
				data = []byte(dot)
			}
		case FormatSVG:
			if err = needDOT(); err == nil {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
