// Package layout turns metro events into rows of glyphs.
//
// An [Engine] owns one [track.Registry] and converts each event into one or
// more [Row] values, consulting the registry before and after mutating it.
// Rows are append-only: a failing event produces no rows and leaves the
// rows of earlier events untouched.
//
// Multi-column joins and stops that shift several columns can be drawn in
// two styles, selected by [Options.Collapse]: [CollapseStepwise] emits one
// row per column step, [CollapseCompact] keeps only the first and last row
// of a join and shifts every column of a stop in a single row.
package layout

import (
	"fmt"
	"strings"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/track"
)

// RootTrack is the id registered at the start of every pass unless
// [Options.NoRoot] is set.
const RootTrack track.ID = 0

// Collapse selects how multi-column transitions are drawn.
type Collapse int

const (
	// CollapseStepwise draws a join over distance d in d rows and a stop
	// that shifts s columns in 1+s rows.
	CollapseStepwise Collapse = iota
	// CollapseCompact draws a join in at most two rows and a stop in at
	// most two rows.
	CollapseCompact
)

// String returns the collapse style name accepted by [ParseCollapse].
func (c Collapse) String() string {
	switch c {
	case CollapseStepwise:
		return "stepwise"
	case CollapseCompact:
		return "compact"
	default:
		return fmt.Sprintf("Collapse(%d)", int(c))
	}
}

// ParseCollapse parses a collapse style name. The empty string selects
// [CollapseStepwise].
func ParseCollapse(s string) (Collapse, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stepwise":
		return CollapseStepwise, nil
	case "compact":
		return CollapseCompact, nil
	}
	return 0, metroerrors.New(metroerrors.ErrCodeInvalidInput, "unknown collapse style %q (want stepwise or compact)", s)
}

// Options configures an [Engine]. The zero value is the default.
type Options struct {
	Collapse Collapse
	NoRoot   bool // start with no tracks instead of the root track
}

// Engine converts events into rows. It is not safe for concurrent use.
type Engine struct {
	opts Options
	reg  *track.Registry
}

// New creates an engine. Unless opts.NoRoot is set, [RootTrack] is
// registered before the first event.
func New(opts Options) *Engine {
	reg := track.New()
	if !opts.NoRoot {
		_ = reg.Register(RootTrack) // empty registry, cannot fail
	}
	return &Engine{opts: opts, reg: reg}
}

// Registry returns the engine's registry for inspection. Callers must not
// mutate it.
func (e *Engine) Registry() *track.Registry { return e.reg }

// Process applies one event and returns the rows it produces.
// On error no rows are returned and the registry is unchanged.
func (e *Engine) Process(ev event.Event) ([]Row, error) {
	n := e.reg.Len()

	switch ev := ev.(type) {
	case event.Station:
		if err := metroerrors.ValidateText(ev.Text); err != nil {
			return nil, err
		}
		col, err := e.reg.StationColumn(ev.Track)
		if err != nil {
			return nil, err
		}
		return []Row{station(n, col, ev.Text)}, nil

	case event.NoEvent:
		row := newRow(ConnectorRow, n)
		row.bars(0, n)
		return []Row{row}, nil

	case event.Note:
		if err := metroerrors.ValidateText(ev.Text); err != nil {
			return nil, err
		}
		row := newRow(NoteRow, n)
		row.bars(0, n)
		row.Text = ev.Text
		return []Row{row}, nil

	case event.StartTrack:
		if err := e.reg.Register(ev.Track); err != nil {
			return nil, err
		}
		return []Row{e.connector()}, nil

	case event.StartTracks:
		if err := e.reg.RegisterAll(ev.Tracks...); err != nil {
			return nil, err
		}
		return []Row{e.connector()}, nil

	case event.SplitTrack:
		col, err := e.reg.Split(ev.From, ev.New)
		if err != nil {
			return nil, err
		}
		return []Row{split(n, col-1)}, nil

	case event.JoinTrack:
		j, err := e.reg.Join(ev.From, ev.To)
		if err != nil {
			return nil, err
		}
		return join(n, min(j.From, j.To), max(j.From, j.To), e.opts.Collapse), nil

	case event.StopTrack:
		s, err := e.reg.Stop(ev.Track)
		if err != nil {
			return nil, err
		}
		return stop(n, s.Column, e.opts.Collapse), nil
	}

	return nil, metroerrors.New(metroerrors.ErrCodeInvalidInput, "unknown event type %T", ev)
}

// Run processes events in order with a fresh engine. On failure it returns
// the rows of every event before the failing one together with the error,
// annotated with the failing event's index and kind.
func Run(events []event.Event, opts Options) ([]Row, error) {
	e := New(opts)
	var rows []Row
	for i, ev := range events {
		out, err := e.Process(ev)
		if err != nil {
			return rows, fmt.Errorf("event %d (%s): %w", i, kindOf(ev), err)
		}
		rows = append(rows, out...)
	}
	return rows, nil
}

func kindOf(ev event.Event) event.Kind {
	if ev == nil {
		return "nil"
	}
	return ev.Kind()
}

func station(n, col int, text string) Row {
	row := newRow(StationRow, n)
	row.bars(0, n)
	row.rail(col, Marker)
	row.Text = text
	return row
}

func (e *Engine) connector() Row {
	n := e.reg.Len()
	row := newRow(ConnectorRow, n)
	row.bars(0, n)
	return row
}

// split draws a branch off column from in a row of n pre-split columns.
// Every column right of from moves one step right.
func split(n, from int) Row {
	row := newRow(TransitionRow, n)
	row.bars(0, from+1)
	row.gap(from, Branch)
	for c := from + 1; c < n; c++ {
		row.gap(c, Branch)
	}
	return row
}

// join draws the collapse of column hi into column lo in a row of n
// pre-join columns.
func join(n, lo, hi int, style Collapse) []Row {
	d := hi - lo
	steps := make([]int, 0, d)
	for k := 1; k <= d; k++ {
		if style == CollapseCompact && k != 1 && k != d {
			continue
		}
		steps = append(steps, k)
	}

	rows := make([]Row, 0, len(steps))
	for _, k := range steps {
		row := newRow(TransitionRow, n)
		row.bars(0, hi)
		row.gap(hi-k, Merge)
		for g := lo + 1; g < hi-k; g++ {
			row.gap(g, Bridge)
		}
		for c := hi + 1; c < n; c++ {
			if k == 1 {
				row.set(2*c-1, Merge)
			} else {
				row.rail(c-1, Bar)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// stop draws the end of column removed in a row of n pre-stop columns,
// followed by the rows that slide the columns right of it one step left.
func stop(n, removed int, style Collapse) []Row {
	first := newRow(TransitionRow, n)
	first.bars(0, n)
	first.rail(removed, Stop)
	rows := []Row{first}

	shifted := n - 1 - removed
	if shifted == 0 {
		return rows
	}

	if style == CollapseCompact {
		row := newRow(TransitionRow, n)
		row.bars(0, removed)
		for c := removed + 1; c < n; c++ {
			row.set(2*c-1, Merge)
		}
		return append(rows, row)
	}

	for j := 1; j <= shifted; j++ {
		row := newRow(TransitionRow, n)
		row.bars(0, removed)
		moving := removed + j
		for c := removed + 1; c < n; c++ {
			switch {
			case c < moving:
				row.rail(c-1, Bar)
			case c == moving:
				row.set(2*c-1, Merge)
			default:
				row.rail(c, Bar)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
