package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
)

type script struct {
	Events []record `json:"events" yaml:"events" toml:"events"`
}

type record struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Track  *int   `json:"track,omitempty" yaml:"track,omitempty" toml:"track,omitempty"`
	Tracks []int  `json:"tracks,omitempty" yaml:"tracks,omitempty" toml:"tracks,omitempty"`
	From   *int   `json:"from,omitempty" yaml:"from,omitempty" toml:"from,omitempty"`
	To     *int   `json:"to,omitempty" yaml:"to,omitempty" toml:"to,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
}

func intp[T ~int](v T) *int {
	i := int(v)
	return &i
}

func toRecord(ev event.Event) (record, error) {
	switch ev := ev.(type) {
	case event.Station:
		return record{Kind: string(event.KindStation), Track: intp(ev.Track), Text: ev.Text}, nil
	case event.Note:
		return record{Kind: string(event.KindNote), Text: ev.Text}, nil
	case event.SplitTrack:
		return record{Kind: string(event.KindSplit), From: intp(ev.From), To: intp(ev.New)}, nil
	case event.JoinTrack:
		return record{Kind: string(event.KindJoin), From: intp(ev.From), To: intp(ev.To)}, nil
	case event.StopTrack:
		return record{Kind: string(event.KindStop), Track: intp(ev.Track)}, nil
	case event.StartTrack:
		return record{Kind: string(event.KindStartTrack), Track: intp(ev.Track)}, nil
	case event.StartTracks:
		ids := make([]int, len(ev.Tracks))
		for i, id := range ev.Tracks {
			ids[i] = int(id)
		}
		// start_all without tracks reads back as an empty batch.
		return record{Kind: string(event.KindStartTracks), Tracks: ids}, nil
	case event.NoEvent:
		return record{Kind: string(event.KindNoEvent)}, nil
	}
	return record{}, metroerrors.New(metroerrors.ErrCodeInvalidInput, "unknown event type %T", ev)
}

// WriteScript encodes events as a script in the given format.
// The output can be read back with [ReadScript].
func WriteScript(w io.Writer, events []event.Event, format Format) error {
	out := script{Events: make([]record, len(events))}
	for i, ev := range events {
		rec, err := toRecord(ev)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		out.Events[i] = rec
	}

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(out)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(out)
	default:
		return metroerrors.New(metroerrors.ErrCodeInvalidFormat, "unknown script format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// ExportScript writes events to a script file at path, deriving the format
// from the file extension.
func ExportScript(path string, events []event.Event) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteScript(f, events, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
