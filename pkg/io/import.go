package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/track"
)

// ErrInvalidScript is returned when a script cannot be decoded or one of its
// records is malformed.
var ErrInvalidScript = errors.New("invalid script")

// ReadScript decodes a script in the given format from r.
//
// The returned events are independent of r. ReadScript does not close r.
func ReadScript(r io.Reader, format Format) ([]event.Event, error) {
	var data script
	if err := decode(r, format, &data); err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(data.Events))
	for i, rec := range data.Events {
		ev, err := rec.event()
		if err != nil {
			return nil, metroerrors.Wrap(metroerrors.ErrCodeInvalidScript, ErrInvalidScript, "event %d: %s", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ImportScript reads the script at path, deriving its format from the
// file extension.
func ImportScript(path string) ([]event.Event, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, metroerrors.Wrap(metroerrors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScript(f, format)
}

func decode(r io.Reader, format Format, v *script) error {
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(v)
		if errors.Is(err, io.EOF) {
			err = nil // empty document
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(v)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	default:
		return metroerrors.New(metroerrors.ErrCodeInvalidFormat, "unknown script format %q", format)
	}
	if err != nil {
		return metroerrors.Wrap(metroerrors.ErrCodeInvalidScript, ErrInvalidScript, "decode %s: %v", format, err)
	}
	return nil
}

func (rec record) event() (event.Event, error) {
	kind := event.Kind(strings.ToLower(rec.Kind))
	switch kind {
	case event.KindStation:
		id, err := require(rec.Track, kind, "track")
		if err != nil {
			return nil, err
		}
		return event.Station{Track: id, Text: rec.Text}, nil

	case event.KindNote:
		return event.Note{Text: rec.Text}, nil

	case event.KindSplit:
		from, err := require(rec.From, kind, "from")
		if err != nil {
			return nil, err
		}
		to, err := require(rec.To, kind, "to")
		if err != nil {
			return nil, err
		}
		return event.SplitTrack{From: from, New: to}, nil

	case event.KindJoin:
		from, err := require(rec.From, kind, "from")
		if err != nil {
			return nil, err
		}
		to, err := require(rec.To, kind, "to")
		if err != nil {
			return nil, err
		}
		return event.JoinTrack{From: from, To: to}, nil

	case event.KindStop:
		id, err := require(rec.Track, kind, "track")
		if err != nil {
			return nil, err
		}
		return event.StopTrack{Track: id}, nil

	case event.KindStartTrack, event.KindStartTracks:
		switch {
		case rec.Track != nil && rec.Tracks != nil:
			return nil, fmt.Errorf("%s takes either track or tracks, not both", kind)
		case rec.Track != nil && kind == event.KindStartTrack:
			return event.StartTrack{Track: track.ID(*rec.Track)}, nil
		case rec.Tracks != nil:
			ids := make([]track.ID, len(rec.Tracks))
			for i, id := range rec.Tracks {
				ids[i] = track.ID(id)
			}
			return event.StartTracks{Tracks: ids}, nil
		case rec.Track == nil && kind == event.KindStartTracks:
			return event.StartTracks{}, nil
		}
		return nil, fmt.Errorf("%s requires tracks", kind)

	case event.KindNoEvent:
		return event.NoEvent{}, nil

	case "":
		return nil, errors.New("missing kind")
	}
	return nil, fmt.Errorf("unknown kind %q", rec.Kind)
}

func require(v *int, kind event.Kind, field string) (track.ID, error) {
	if v == nil {
		return 0, fmt.Errorf("%s requires %s", kind, field)
	}
	return track.ID(*v), nil
}
