package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/metro/pkg/event"
	metroio "github.com/matzehuels/metro/pkg/io"
	"github.com/matzehuels/metro/pkg/observability"
)

// Decode reads a script in the given format into events.
func Decode(ctx context.Context, script []byte, format string) ([]event.Event, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, format)
	start := time.Now()

	f, err := metroio.ParseFormat(format)
	if err != nil {
		hooks.OnDecodeComplete(ctx, format, 0, time.Since(start), err)
		return nil, err
	}
	events, err := metroio.ReadScript(bytes.NewReader(script), f)
	hooks.OnDecodeComplete(ctx, format, len(events), time.Since(start), err)
	return events, err
}
