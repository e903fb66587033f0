package metro

import (
	"fmt"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/track"
)

// Track is a handle to one track of a [Metro]. Several handles may refer
// to the same id; they stay interchangeable.
type Track struct {
	m  *Metro
	id track.ID
}

// ID returns the track id.
func (t *Track) ID() track.ID { return t.id }

// AddStation adds a station on the track.
func (t *Track) AddStation(text string) {
	t.m.record(event.Station{Track: t.id, Text: text})
}

// Split branches a new track with a fresh id off t.
func (t *Track) Split() *Track {
	return t.SplitWithID(t.m.allocID())
}

// SplitWithID branches a track with the given id off t. If id is already
// live, its handle is returned and nothing is recorded.
func (t *Track) SplitWithID(id track.ID) *Track {
	if t.m.live[id] {
		return t.m.handle(id)
	}
	t.m.claim(id)
	t.m.record(event.SplitTrack{From: t.id, New: id})
	return t.m.handle(id)
}

// Join merges t into to. Afterwards t is dangling.
func (t *Track) Join(to *Track) {
	t.m.record(event.JoinTrack{From: t.id, To: to.id})
	delete(t.m.live, t.id)
}

// Stop ends t. Afterwards t is dangling.
func (t *Track) Stop() {
	t.m.record(event.StopTrack{Track: t.id})
	delete(t.m.live, t.id)
}

// IsDangling reports whether t's id was joined or stopped and not started
// again since. Events recorded through a dangling handle fail when rendered.
func (t *Track) IsDangling() bool {
	return !t.m.live[t.id]
}

// String implements fmt.Stringer.
func (t *Track) String() string {
	return fmt.Sprintf("Track(%d)", t.id)
}
