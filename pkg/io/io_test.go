package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/render"
	"github.com/matzehuels/metro/pkg/track"
)

const jsonScript = `{
  "events": [
    {"kind": "station", "track": 0, "text": "A"},
    {"kind": "split", "from": 0, "to": 1},
    {"kind": "station", "track": 1, "text": "B"},
    {"kind": "note", "text": "aside"},
    {"kind": "noop"},
    {"kind": "start", "tracks": [5, 6]},
    {"kind": "stop", "track": 5},
    {"kind": "join", "from": 1, "to": 0},
    {"kind": "station", "track": 0, "text": "C"}
  ]
}`

const yamlScript = `events:
  - kind: station
    track: 0
    text: A
  - kind: split
    from: 0
    to: 1
  - kind: station
    track: 1
    text: B
  - kind: note
    text: aside
  - kind: noop
  - kind: start
    tracks: [5, 6]
  - kind: stop
    track: 5
  - kind: join
    from: 1
    to: 0
  - kind: station
    track: 0
    text: C
`

const tomlScript = `[[events]]
kind = "station"
track = 0
text = "A"

[[events]]
kind = "split"
from = 0
to = 1

[[events]]
kind = "station"
track = 1
text = "B"

[[events]]
kind = "note"
text = "aside"

[[events]]
kind = "noop"

[[events]]
kind = "start"
tracks = [5, 6]

[[events]]
kind = "stop"
track = 5

[[events]]
kind = "join"
from = 1
to = 0

[[events]]
kind = "station"
track = 0
text = "C"
`

func TestReadScript_FormatsAgree(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, jsonScript},
		{FormatYAML, yamlScript},
		{FormatTOML, tomlScript},
	}

	const want = "* A\n|\\\n| * B\n| | aside\n| |\n| | | |\n| | \" |\n| |  /\n|/ /\n* | C"

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			events, err := ReadScript(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadScript: %v", err)
			}
			if len(events) != 9 {
				t.Fatalf("got %d events, want 9", len(events))
			}
			if _, ok := events[5].(event.StartTracks); !ok {
				t.Errorf("events[5] = %T, want event.StartTracks", events[5])
			}

			rows, err := layout.Run(events, layout.Options{})
			if err != nil {
				t.Fatalf("layout.Run: %v", err)
			}
			if got := render.String(rows); got != want {
				t.Errorf("rendered\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestReadScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantMsg string
	}{
		{"malformed json", FormatJSON, `{"events": [`, "decode json"},
		{"unknown json field", FormatJSON, `{"events": [{"kind": "noop", "colour": "red"}]}`, "decode json"},
		{"unknown yaml field", FormatYAML, "events:\n  - kind: noop\n    colour: red\n", "decode yaml"},
		{"unknown toml field", FormatTOML, "[[events]]\nkind = \"noop\"\ncolour = \"red\"\n", "unknown field"},
		{"missing kind", FormatJSON, `{"events": [{"track": 0}]}`, "event 0: missing kind"},
		{"unknown kind", FormatJSON, `{"events": [{"kind": "noop"}, {"kind": "teleport"}]}`, `event 1: unknown kind "teleport"`},
		{"station without track", FormatJSON, `{"events": [{"kind": "station", "text": "A"}]}`, "station requires track"},
		{"split without to", FormatYAML, "events:\n  - kind: split\n    from: 0\n", "split requires to"},
		{"join without from", FormatTOML, "[[events]]\nkind = \"join\"\nto = 0\n", "join requires from"},
		{"start with both", FormatJSON, `{"events": [{"kind": "start", "track": 1, "tracks": [2]}]}`, "not both"},
		{"start with nothing", FormatJSON, `{"events": [{"kind": "start"}]}`, "start requires tracks"},
		{"start_all with a single track", FormatJSON, `{"events": [{"kind": "start_all", "track": 1}]}`, "start_all requires tracks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScript(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("ReadScript() succeeded, want error")
			}
			if !errors.Is(err, ErrInvalidScript) {
				t.Errorf("error = %v, want ErrInvalidScript", err)
			}
			if !metroerrors.Is(err, metroerrors.ErrCodeInvalidScript) {
				t.Errorf("code = %q, want INVALID_SCRIPT", metroerrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestReadScript_Empty(t *testing.T) {
	for _, format := range Formats {
		input := ""
		if format == FormatJSON {
			input = `{"events": []}`
		}
		events, err := ReadScript(strings.NewReader(input), format)
		if err != nil {
			t.Errorf("%s: %v", format, err)
		}
		if len(events) != 0 {
			t.Errorf("%s: got %d events", format, len(events))
		}
	}
}

func TestWriteScript(t *testing.T) {
	events := []event.Event{
		event.StartTracks{Tracks: []track.ID{1, 2}},
		event.StartTracks{},
		event.StartTrack{Track: 3},
		event.Station{Track: 0, Text: `quote " and slash \`},
		event.SplitTrack{From: 2, New: 9},
		event.JoinTrack{From: 9, To: 0},
		event.StopTrack{Track: 3},
		event.Note{Text: "note"},
		event.NoEvent{},
	}

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteScript(&buf, events, format); err != nil {
				t.Fatalf("WriteScript: %v", err)
			}
			got, err := ReadScript(&buf, format)
			if err != nil {
				t.Fatalf("ReadScript: %v\n%s", err, buf.String())
			}
			if len(got) != len(events) {
				t.Fatalf("read %d events, want %d", len(got), len(events))
			}
			for i := range events {
				if got[i].String() != events[i].String() {
					t.Errorf("event %d = %v, want %v", i, got[i], events[i])
				}
			}
		})
	}
}

func TestImportExportScript(t *testing.T) {
	dir := t.TempDir()
	events := []event.Event{
		event.Station{Track: 0, Text: "A"},
		event.StopTrack{Track: 0},
	}

	for _, name := range []string{"script.json", "script.yml", "script.toml"} {
		path := filepath.Join(dir, name)
		if err := ExportScript(path, events); err != nil {
			t.Fatalf("ExportScript(%s): %v", name, err)
		}
		got, err := ImportScript(path)
		if err != nil {
			t.Fatalf("ImportScript(%s): %v", name, err)
		}
		if len(got) != 2 || got[1].String() != "StopTrack(0)" {
			t.Errorf("ImportScript(%s) = %v", name, got)
		}
	}

	if _, err := ImportScript(filepath.Join(dir, "missing.json")); !metroerrors.Is(err, metroerrors.ErrCodeFileNotFound) {
		t.Errorf("ImportScript(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	noext := filepath.Join(dir, "script")
	if err := os.WriteFile(noext, []byte(jsonScript), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportScript(noext); !metroerrors.Is(err, metroerrors.ErrCodeInvalidFormat) {
		t.Errorf("ImportScript(no extension) error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" toml ", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
