package metro

import (
	"bytes"
	"io"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/render"
)

// ToString renders events. On failure it returns the diagram of the events
// before the failing one together with the error.
func ToString(events []event.Event, opts layout.Options) (string, error) {
	rows, err := layout.Run(events, opts)
	return render.String(rows), err
}

// ToBytes renders events like [ToString].
func ToBytes(events []event.Event, opts layout.Options) ([]byte, error) {
	var buf bytes.Buffer
	_, err := writeTo(&buf, events, opts)
	return buf.Bytes(), err
}

// ToWriter renders events to w. On a layout failure the diagram of the
// events before the failing one is written before the error is returned.
// Write errors are returned as is.
func ToWriter(w io.Writer, events []event.Event, opts layout.Options) error {
	_, err := writeTo(w, events, opts)
	return err
}

func writeTo(w io.Writer, events []event.Event, opts layout.Options) (int64, error) {
	rows, err := layout.Run(events, opts)
	n, werr := render.WriteTo(w, rows)
	if werr != nil {
		return n, werr
	}
	return n, err
}
