package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/observability"
)

// Layout runs events through a fresh layout engine. On failure the rows laid
// out before the failing event are returned with the error.
func Layout(ctx context.Context, events []event.Event, opts layout.Options) ([]layout.Row, error) {
	hooks := observability.Pipeline()
	collapse := opts.Collapse.String()
	hooks.OnLayoutStart(ctx, collapse, len(events))
	start := time.Now()

	rows, err := layout.Run(events, opts)
	hooks.OnLayoutComplete(ctx, collapse, len(rows), time.Since(start), err)
	return rows, err
}
