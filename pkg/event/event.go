// Package event defines the input vocabulary of a metro diagram.
//
// A diagram is described by an ordered, finite sequence of [Event] values
// consumed once, front to back. Event is a closed set: only the types in this
// package implement it, and consumers dispatch with an exhaustive type switch.
//
//	events := []event.Event{
//	    event.Station{Track: 0, Text: "A"},
//	    event.SplitTrack{From: 0, New: 1},
//	    event.Station{Track: 1, Text: "B"},
//	    event.JoinTrack{From: 1, To: 0},
//	    event.Station{Track: 0, Text: "C"},
//	}
package event

import (
	"fmt"
	"strings"

	"github.com/matzehuels/metro/pkg/track"
)

// Kind names an event variant. The names double as the "kind" field of
// event scripts.
type Kind string

const (
	KindStation     Kind = "station"
	KindSplit       Kind = "split"
	KindJoin        Kind = "join"
	KindStop        Kind = "stop"
	KindNoEvent     Kind = "noop"
	KindStartTrack  Kind = "start"
	KindStartTracks Kind = "start_all"
	KindNote        Kind = "note"
)

// Kinds lists every event kind in a stable order.
var Kinds = []Kind{
	KindStation, KindSplit, KindJoin, KindStop,
	KindNoEvent, KindStartTrack, KindStartTracks, KindNote,
}

// Event is one instruction of a diagram. The set of implementations is
// closed; see the package documentation.
type Event interface {
	// Kind returns the variant name.
	Kind() Kind
	fmt.Stringer

	sealed()
}

// Station places a labelled station on an Active track.
type Station struct {
	Track track.ID
	Text  string
}

// SplitTrack branches a new track off an Active one. The new track is placed
// immediately right of From.
type SplitTrack struct {
	From track.ID
	New  track.ID
}

// JoinTrack merges From into To and retires From.
type JoinTrack struct {
	From track.ID
	To   track.ID
}

// StopTrack retires a track without merging it.
type StopTrack struct {
	Track track.ID
}

// NoEvent draws a spacer row.
type NoEvent struct{}

// StartTrack registers a new track at the rightmost column.
type StartTrack struct {
	Track track.ID
}

// StartTracks registers several tracks at once, left to right.
type StartTracks struct {
	Tracks []track.ID
}

// Note writes a line of text that belongs to no track.
type Note struct {
	Text string
}

func (Station) Kind() Kind     { return KindStation }
func (SplitTrack) Kind() Kind  { return KindSplit }
func (JoinTrack) Kind() Kind   { return KindJoin }
func (StopTrack) Kind() Kind   { return KindStop }
func (NoEvent) Kind() Kind     { return KindNoEvent }
func (StartTrack) Kind() Kind  { return KindStartTrack }
func (StartTracks) Kind() Kind { return KindStartTracks }
func (Note) Kind() Kind        { return KindNote }

func (e Station) String() string    { return fmt.Sprintf("Station(%d, %q)", e.Track, e.Text) }
func (e SplitTrack) String() string { return fmt.Sprintf("SplitTrack(%d, %d)", e.From, e.New) }
func (e JoinTrack) String() string  { return fmt.Sprintf("JoinTrack(%d, %d)", e.From, e.To) }
func (e StopTrack) String() string  { return fmt.Sprintf("StopTrack(%d)", e.Track) }
func (NoEvent) String() string      { return "NoEvent" }
func (e StartTrack) String() string { return fmt.Sprintf("StartTrack(%d)", e.Track) }
func (e Note) String() string       { return fmt.Sprintf("Note(%q)", e.Text) }

func (e StartTracks) String() string {
	ids := make([]string, len(e.Tracks))
	for i, id := range e.Tracks {
		ids[i] = fmt.Sprint(int(id))
	}
	return "StartTracks(" + strings.Join(ids, ", ") + ")"
}

func (Station) sealed()     {}
func (SplitTrack) sealed()  {}
func (JoinTrack) sealed()   {}
func (StopTrack) sealed()   {}
func (NoEvent) sealed()     {}
func (StartTrack) sealed()  {}
func (StartTracks) sealed() {}
func (Note) sealed()        {}

// Tracks returns the track ids an event references, in argument order.
// Events that reference no track return nil.
func Tracks(e Event) []track.ID {
	switch e := e.(type) {
	case Station:
		return []track.ID{e.Track}
	case SplitTrack:
		return []track.ID{e.From, e.New}
	case JoinTrack:
		return []track.ID{e.From, e.To}
	case StopTrack:
		return []track.ID{e.Track}
	case StartTrack:
		return []track.ID{e.Track}
	case StartTracks:
		return append([]track.ID(nil), e.Tracks...)
	}
	return nil
}
