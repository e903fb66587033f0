// Package metro draws text metro diagrams.
//
// # Overview
//
// A metro diagram is a column of tracks that branch, merge and end, with
// labelled stations along them:
//
//	* Depot
//	|\
//	| * Harbour
//	|/
//	* Terminus
//
// Diagrams are described either as an explicit list of [event.Event] values
// rendered with [ToString], [ToBytes] or [ToWriter], or incrementally with
// the [Metro] builder, which records the same events.
//
// # Builder
//
//	m := metro.New()
//	main := m.NewTrack()
//	main.AddStation("Depot")
//	branch := main.Split()
//	branch.AddStation("Harbour")
//	branch.Join(main)
//	main.AddStation("Terminus")
//	text, err := m.Render()
//
// The builder holds no column logic: every call appends an event, and
// errors such as stopping a track twice surface when the events are
// rendered.
//
// [event.Event]: github.com/matzehuels/metro/pkg/event.Event
package metro

import (
	"io"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/track"
)

// Option configures a [Metro].
type Option func(*Metro)

// WithCollapse selects how multi-column joins and stops are drawn.
func WithCollapse(c layout.Collapse) Option {
	return func(m *Metro) { m.opts.Collapse = c }
}

// Metro records the events of a diagram. It is not safe for concurrent use.
//
// The zero value is not usable - use New.
type Metro struct {
	opts        layout.Options
	events      []event.Event
	used        map[track.ID]bool // every id the builder has handed out
	live        map[track.ID]bool // ids that were neither joined nor stopped
	next        track.ID
	rootClaimed bool
}

// New creates an empty diagram. The root track (id 0) exists from the
// start and is returned by the first call to [Metro.NewTrack].
func New(opts ...Option) *Metro {
	m := &Metro{
		used: map[track.ID]bool{layout.RootTrack: true},
		live: map[track.ID]bool{layout.RootTrack: true},
		next: layout.RootTrack + 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTrack returns a new track. The first call returns the root track
// without recording an event; later calls start a track with a fresh id.
func (m *Metro) NewTrack() *Track {
	if !m.rootClaimed && m.live[layout.RootTrack] {
		m.rootClaimed = true
		return m.handle(layout.RootTrack)
	}
	return m.NewTrackWithID(m.allocID())
}

// NewTrackWithID returns the track with the given id, starting it if it
// is not live. Starting an id that was joined or stopped earlier is
// recorded as is and fails when rendered.
func (m *Metro) NewTrackWithID(id track.ID) *Track {
	if m.live[id] {
		if id == layout.RootTrack {
			m.rootClaimed = true
		}
		return m.handle(id)
	}
	m.claim(id)
	m.record(event.StartTrack{Track: id})
	return m.handle(id)
}

// Track returns the live track with the given id.
func (m *Metro) Track(id track.ID) (*Track, bool) {
	if !m.live[id] {
		return nil, false
	}
	return m.handle(id), true
}

// AddStation adds a station that belongs to no track.
func (m *Metro) AddStation(text string) {
	m.record(event.Note{Text: text})
}

// AddSpacer adds a row that only continues every track.
func (m *Metro) AddSpacer() {
	m.record(event.NoEvent{})
}

// Events returns a copy of the recorded events.
func (m *Metro) Events() []event.Event {
	return append([]event.Event(nil), m.events...)
}

// Render renders the recorded events. On failure it returns the diagram
// up to the failing event together with the error.
func (m *Metro) Render() (string, error) {
	return ToString(m.events, m.opts)
}

// String renders the recorded events, ignoring any error. Use
// [Metro.Render] to observe errors.
func (m *Metro) String() string {
	s, _ := m.Render()
	return s
}

// Bytes renders the recorded events like [Metro.Render].
func (m *Metro) Bytes() ([]byte, error) {
	return ToBytes(m.events, m.opts)
}

// WriteTo writes the rendered diagram to w.
func (m *Metro) WriteTo(w io.Writer) (int64, error) {
	return writeTo(w, m.events, m.opts)
}

func (m *Metro) handle(id track.ID) *Track {
	return &Track{m: m, id: id}
}

func (m *Metro) record(ev event.Event) {
	m.events = append(m.events, ev)
}

func (m *Metro) claim(id track.ID) {
	m.used[id] = true
	m.live[id] = true
}

// allocID returns the lowest id at or above the counter that was never
// handed out.
func (m *Metro) allocID() track.ID {
	for m.used[m.next] {
		m.next++
	}
	id := m.next
	m.next++
	return id
}
