package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
)

func run(t *testing.T, events ...event.Event) []layout.Row {
	t.Helper()
	rows, err := layout.Run(events, layout.Options{})
	if err != nil {
		t.Fatalf("layout.Run: %v", err)
	}
	return rows
}

func TestLine(t *testing.T) {
	rows := run(t,
		event.Station{Track: 0, Text: "A"},
		event.SplitTrack{From: 0, New: 1},
		event.Station{Track: 1, Text: "padded   "},
		event.Station{Track: 0, Text: ""},
		event.StopTrack{Track: 1},
		event.Note{Text: "tab\t"},
	)
	want := []string{"* A", `|\`, "| * padded", "* |", `| "`, "| tab"}

	got := Lines(rows)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Lines() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestLineTrimsUnicodeSpace(t *testing.T) {
	tests := []struct {
		name, text, want string
	}{
		{"no-break space", "Depot\u00a0", "* Depot"},
		{"ideographic space", "Eki\u3000", "* Eki"},
		{"mixed run", "Harbour\u2003 \t\u00a0", "* Harbour"},
		{"inner space kept", "Old\u00a0Town", "* Old\u00a0Town"},
		{"only space", "\u3000", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := run(t, event.Station{Track: 0, Text: tt.text})
			if got := Line(rows[0]); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineWithoutGlyphs(t *testing.T) {
	rows, err := layout.Run([]event.Event{event.Note{Text: "floating"}}, layout.Options{NoRoot: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := Line(rows[0]); got != "floating" {
		t.Errorf("Line() = %q, want %q", got, "floating")
	}
}

func TestOutputsAgree(t *testing.T) {
	rows := run(t,
		event.Station{Track: 0, Text: "A"},
		event.SplitTrack{From: 0, New: 1},
		event.Station{Track: 1, Text: "B"},
		event.JoinTrack{From: 1, To: 0},
		event.Station{Track: 0, Text: "C"},
	)

	const want = "* A\n|\\\n| * B\n|/\n* C"
	if got := String(rows); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := string(Bytes(rows)); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	n, err := WriteTo(&buf, rows)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != want || n != int64(len(want)) {
		t.Errorf("WriteTo() = %q (%d bytes), want %q", buf.String(), n, want)
	}
}

func TestEmpty(t *testing.T) {
	if got := String(nil); got != "" {
		t.Errorf("String(nil) = %q", got)
	}
	var buf bytes.Buffer
	if n, err := WriteTo(&buf, nil); n != 0 || err != nil {
		t.Errorf("WriteTo(nil) = %d, %v", n, err)
	}
}

type failingWriter struct {
	after int
	err   error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, w.err
	}
	w.after--
	return len(p), nil
}

func TestWriteToPropagatesErrors(t *testing.T) {
	sinkErr := errors.New("disk full")
	rows := run(t, event.Station{Track: 0, Text: "A"}, event.Station{Track: 0, Text: "B"})

	w := &failingWriter{after: 1, err: sinkErr}
	n, err := WriteTo(w, rows)
	if err != sinkErr {
		t.Fatalf("WriteTo() error = %v, want %v", err, sinkErr)
	}
	if n != int64(len("* A")) {
		t.Errorf("WriteTo() = %d bytes, want %d", n, len("* A"))
	}
}

func TestJSON(t *testing.T) {
	rows := run(t,
		event.Station{Track: 0, Text: "A"},
		event.SplitTrack{From: 0, New: 1},
	)

	data, err := JSON(rows)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var doc JSONDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []JSONRow{
		{Kind: "station", Columns: 1, Line: "* A", Text: "A"},
		{Kind: "transition", Columns: 1, Line: `|\`},
	}
	if len(doc.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(doc.Rows), len(want))
	}
	for i := range want {
		if doc.Rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, doc.Rows[i], want[i])
		}
	}
}
