package track

import (
	"errors"
	"slices"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
)

var (
	// ErrDuplicateTrack is returned by [Registry.Register], [Registry.RegisterAll]
	// and [Registry.Split] when the id is already Active or has been retired.
	ErrDuplicateTrack = errors.New("duplicate track")

	// ErrMissingTrack is returned when an operation references an id that was
	// never registered or has already been Stopped or Joined.
	ErrMissingTrack = errors.New("missing or closed track")

	// ErrSelfJoin is returned by [Registry.Join] when a track is joined into itself.
	ErrSelfJoin = errors.New("track cannot join itself")
)

// ID identifies a track. Ids are chosen by the caller; they need not be
// sequential but must be unique within a render pass.
type ID int

// Status is the lifecycle state of a track. A track leaves Active exactly
// once and never returns to it.
type Status int

const (
	// Active tracks occupy a column and may receive events.
	Active Status = iota
	// Stopped tracks were retired by a stop event.
	Stopped
	// Joined tracks were retired by merging into another track.
	Joined
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Stopped:
		return "stopped"
	case Joined:
		return "joined"
	default:
		return "unknown"
	}
}

// Track is a snapshot of one track's state.
// Column is -1 for retired tracks.
type Track struct {
	ID     ID
	Column int
	Status Status
}

// JoinResult describes a join in pre-removal columns.
type JoinResult struct {
	From     int // column of the retired track
	To       int // column of the surviving track
	Distance int // |From - To|, always >= 1
}

// StopResult describes a stop in pre-removal columns.
type StopResult struct {
	Column  int // column of the stopped track
	Shifted int // number of columns right of Column that slide left
}

// Registry maps track ids to columns.
//
// The id->column map and its column->id reverse slice are always mutated
// together by a single operation, so the two views cannot drift apart.
//
// The zero value is not usable - use New.
type Registry struct {
	columns []ID          // column -> id, Active tracks only
	index   map[ID]int    // id -> column, Active tracks only
	status  map[ID]Status // every id ever seen
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		index:  make(map[ID]int),
		status: make(map[ID]Status),
	}
}

// Register adds id as an Active track in the rightmost column.
func (r *Registry) Register(id ID) error {
	if err := r.checkUnused(id); err != nil {
		return err
	}
	r.insert(len(r.columns), id)
	return nil
}

// RegisterAll adds every id, left to right, after the current rightmost
// column. Either all ids are registered or none: an id that is already known,
// or that appears twice in ids, fails the whole call with ErrDuplicateTrack.
func (r *Registry) RegisterAll(ids ...ID) error {
	batch := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if err := r.checkUnused(id); err != nil {
			return err
		}
		if _, dup := batch[id]; dup {
			return metroerrors.Wrap(metroerrors.ErrCodeDuplicateTrack, ErrDuplicateTrack, "track %d listed twice", id)
		}
		batch[id] = struct{}{}
	}
	for _, id := range ids {
		r.insert(len(r.columns), id)
	}
	return nil
}

// Split inserts id as a new Active track immediately right of from,
// shifting every column right of the insertion point one step right.
// It returns the new track's column.
func (r *Registry) Split(from, id ID) (int, error) {
	col, err := r.column(from)
	if err != nil {
		return 0, err
	}
	if err := r.checkUnused(id); err != nil {
		return 0, err
	}
	r.insert(col+1, id)
	return col + 1, nil
}

// Join retires from by merging it into to.
// from's column is removed and every column right of it shifts left by one;
// to keeps its place in the column order.
func (r *Registry) Join(from, to ID) (JoinResult, error) {
	fromCol, err := r.column(from)
	if err != nil {
		return JoinResult{}, err
	}
	toCol, err := r.column(to)
	if err != nil {
		return JoinResult{}, err
	}
	if from == to {
		return JoinResult{}, metroerrors.Wrap(metroerrors.ErrCodeSelfJoin, ErrSelfJoin, "track %d", from)
	}

	r.status[from] = Joined
	delete(r.index, from)
	r.remove(fromCol)

	return JoinResult{From: fromCol, To: toCol, Distance: max(fromCol, toCol) - min(fromCol, toCol)}, nil
}

// Stop retires id and removes its column.
func (r *Registry) Stop(id ID) (StopResult, error) {
	col, err := r.column(id)
	if err != nil {
		return StopResult{}, err
	}
	shifted := len(r.columns) - 1 - col
	r.status[id] = Stopped
	delete(r.index, id)
	r.remove(col)
	return StopResult{Column: col, Shifted: shifted}, nil
}

// StationColumn returns the column of an Active track.
func (r *Registry) StationColumn(id ID) (int, error) {
	return r.column(id)
}

// ActiveColumns returns the Active ids ordered by column.
// The returned slice is a copy.
func (r *Registry) ActiveColumns() []ID { return slices.Clone(r.columns) }

// Len returns the number of Active tracks.
func (r *Registry) Len() int { return len(r.columns) }

// Seen returns the number of distinct ids ever registered or split.
func (r *Registry) Seen() int { return len(r.status) }

// Count returns the number of seen tracks with the given status.
func (r *Registry) Count(s Status) int {
	n := 0
	for _, st := range r.status {
		if st == s {
			n++
		}
	}
	return n
}

// Track returns the state of id and true, or a zero Track and false if the
// id was never seen.
func (r *Registry) Track(id ID) (Track, bool) {
	st, ok := r.status[id]
	if !ok {
		return Track{}, false
	}
	col := -1
	if st == Active {
		col = r.index[id]
	}
	return Track{ID: id, Column: col, Status: st}, true
}

// IsActive reports whether id currently occupies a column.
func (r *Registry) IsActive(id ID) bool {
	_, ok := r.index[id]
	return ok
}

func (r *Registry) column(id ID) (int, error) {
	if col, ok := r.index[id]; ok {
		return col, nil
	}
	if st, seen := r.status[id]; seen {
		return 0, metroerrors.Wrap(metroerrors.ErrCodeMissingTrack, ErrMissingTrack, "track %d is %s", id, st)
	}
	return 0, metroerrors.Wrap(metroerrors.ErrCodeMissingTrack, ErrMissingTrack, "track %d was never registered", id)
}

func (r *Registry) checkUnused(id ID) error {
	if st, seen := r.status[id]; seen {
		return metroerrors.Wrap(metroerrors.ErrCodeDuplicateTrack, ErrDuplicateTrack, "track %d is already %s", id, st)
	}
	return nil
}

func (r *Registry) insert(col int, id ID) {
	r.columns = slices.Insert(r.columns, col, id)
	r.status[id] = Active
	r.reindex(col)
}

// remove deletes the slot at col. The caller owns the index entry of the id
// that occupied it.
func (r *Registry) remove(col int) {
	r.columns = slices.Delete(r.columns, col, col+1)
	r.reindex(col)
}

func (r *Registry) reindex(from int) {
	for c := from; c < len(r.columns); c++ {
		r.index[r.columns[c]] = c
	}
}
