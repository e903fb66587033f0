package track

import (
	"errors"
	"slices"
	"testing"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
)

func mustRegistry(t *testing.T, ids ...ID) *Registry {
	t.Helper()
	r := New()
	for _, id := range ids {
		if err := r.Register(id); err != nil {
			t.Fatalf("Register(%d): %v", id, err)
		}
	}
	return r
}

// checkConsistent verifies that the id->column map and the column->id slice
// describe the same bijection.
func checkConsistent(t *testing.T, r *Registry) {
	t.Helper()
	if len(r.index) != len(r.columns) {
		t.Fatalf("index has %d entries, columns has %d", len(r.index), len(r.columns))
	}
	for c, id := range r.columns {
		if got := r.index[id]; got != c {
			t.Fatalf("index[%d] = %d, want %d", id, got, c)
		}
		if r.status[id] != Active {
			t.Fatalf("track %d in column %d has status %s", id, c, r.status[id])
		}
	}
}

func TestRegister(t *testing.T) {
	r := mustRegistry(t, 0, 7, 3)

	if got, want := r.ActiveColumns(), []ID{0, 7, 3}; !slices.Equal(got, want) {
		t.Errorf("ActiveColumns() = %v, want %v", got, want)
	}
	checkConsistent(t, r)

	err := r.Register(7)
	if !errors.Is(err, ErrDuplicateTrack) {
		t.Fatalf("Register(7) error = %v, want ErrDuplicateTrack", err)
	}
	if !metroerrors.Is(err, metroerrors.ErrCodeDuplicateTrack) {
		t.Errorf("Register(7) code = %v, want %v", metroerrors.GetCode(err), metroerrors.ErrCodeDuplicateTrack)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d after failed Register, want 3", r.Len())
	}
}

func TestRegisterAll(t *testing.T) {
	r := mustRegistry(t, 0)

	if err := r.RegisterAll(4, 5); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if got, want := r.ActiveColumns(), []ID{0, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("ActiveColumns() = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		ids  []ID
	}{
		{"known id", []ID{6, 4}},
		{"repeated in batch", []ID{6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.RegisterAll(tt.ids...)
			if !errors.Is(err, ErrDuplicateTrack) {
				t.Fatalf("RegisterAll(%v) error = %v, want ErrDuplicateTrack", tt.ids, err)
			}
			if r.Len() != 3 || r.IsActive(6) {
				t.Errorf("RegisterAll(%v) mutated the registry: %v", tt.ids, r.ActiveColumns())
			}
			checkConsistent(t, r)
		})
	}
}

func TestSplit(t *testing.T) {
	r := mustRegistry(t, 0, 1, 2)

	col, err := r.Split(1, 9)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if col != 2 {
		t.Errorf("Split column = %d, want 2", col)
	}
	if got, want := r.ActiveColumns(), []ID{0, 1, 9, 2}; !slices.Equal(got, want) {
		t.Errorf("ActiveColumns() = %v, want %v", got, want)
	}
	checkConsistent(t, r)

	// Splitting the rightmost track appends.
	col, err = r.Split(2, 10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if col != 4 {
		t.Errorf("Split column = %d, want 4", col)
	}
	checkConsistent(t, r)
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name    string
		from    ID
		id      ID
		wantErr error
	}{
		{"missing parent", 42, 5, ErrMissingTrack},
		{"duplicate child", 0, 1, ErrDuplicateTrack},
		{"child is parent", 0, 0, ErrDuplicateTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRegistry(t, 0, 1)
			if _, err := r.Split(tt.from, tt.id); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Split(%d, %d) error = %v, want %v", tt.from, tt.id, err, tt.wantErr)
			}
			if got, want := r.ActiveColumns(), []ID{0, 1}; !slices.Equal(got, want) {
				t.Errorf("ActiveColumns() = %v after failure, want %v", got, want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		ids      []ID
		from, to ID
		want     JoinResult
		after    []ID
	}{
		{
			name:  "adjacent right into left",
			ids:   []ID{0, 1, 2},
			from:  1,
			to:    0,
			want:  JoinResult{From: 1, To: 0, Distance: 1},
			after: []ID{0, 2},
		},
		{
			name:  "distant right into left",
			ids:   []ID{0, 1, 2, 3, 4, 5},
			from:  4,
			to:    0,
			want:  JoinResult{From: 4, To: 0, Distance: 4},
			after: []ID{0, 1, 2, 3, 5},
		},
		{
			name:  "left into right removes the left column",
			ids:   []ID{0, 1, 2, 3},
			from:  0,
			to:    3,
			want:  JoinResult{From: 0, To: 3, Distance: 3},
			after: []ID{1, 2, 3},
		},
		{
			name:  "left into right keeps tracks in between in order",
			ids:   []ID{0, 1, 2},
			from:  0,
			to:    2,
			want:  JoinResult{From: 0, To: 2, Distance: 2},
			after: []ID{1, 2},
		},
		{
			name:  "adjacent left into right",
			ids:   []ID{0, 1, 2},
			from:  1,
			to:    2,
			want:  JoinResult{From: 1, To: 2, Distance: 1},
			after: []ID{0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRegistry(t, tt.ids...)
			got, err := r.Join(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Join: %v", err)
			}
			if got != tt.want {
				t.Errorf("Join() = %+v, want %+v", got, tt.want)
			}
			if cols := r.ActiveColumns(); !slices.Equal(cols, tt.after) {
				t.Errorf("ActiveColumns() = %v, want %v", cols, tt.after)
			}
			if tr, _ := r.Track(tt.from); tr.Status != Joined || tr.Column != -1 {
				t.Errorf("Track(%d) = %+v, want joined with column -1", tt.from, tr)
			}
			checkConsistent(t, r)
		})
	}
}

func TestJoinErrors(t *testing.T) {
	tests := []struct {
		name     string
		from, to ID
		wantErr  error
		wantCode metroerrors.Code
	}{
		{"self join", 1, 1, ErrSelfJoin, metroerrors.ErrCodeSelfJoin},
		{"missing from", 8, 0, ErrMissingTrack, metroerrors.ErrCodeMissingTrack},
		{"missing to", 1, 8, ErrMissingTrack, metroerrors.ErrCodeMissingTrack},
		{"self join of unknown", 8, 8, ErrMissingTrack, metroerrors.ErrCodeMissingTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRegistry(t, 0, 1)
			_, err := r.Join(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Join(%d, %d) error = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			if !metroerrors.Is(err, tt.wantCode) {
				t.Errorf("Join(%d, %d) code = %v, want %v", tt.from, tt.to, metroerrors.GetCode(err), tt.wantCode)
			}
			if r.Len() != 2 || r.Count(Joined) != 0 {
				t.Errorf("failed Join mutated the registry: %v", r.ActiveColumns())
			}
		})
	}
}

func TestStop(t *testing.T) {
	r := mustRegistry(t, 0, 1, 2, 3)

	got, err := r.Stop(1)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if want := (StopResult{Column: 1, Shifted: 2}); got != want {
		t.Errorf("Stop() = %+v, want %+v", got, want)
	}
	if cols, want := r.ActiveColumns(), []ID{0, 2, 3}; !slices.Equal(cols, want) {
		t.Errorf("ActiveColumns() = %v, want %v", cols, want)
	}
	checkConsistent(t, r)

	got, err = r.Stop(3)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if want := (StopResult{Column: 2, Shifted: 0}); got != want {
		t.Errorf("Stop() = %+v, want %+v", got, want)
	}

	if _, err := r.Stop(3); !errors.Is(err, ErrMissingTrack) {
		t.Errorf("second Stop(3) error = %v, want ErrMissingTrack", err)
	}
}

func TestRetiredIDs(t *testing.T) {
	r := mustRegistry(t, 0, 1, 2)
	if _, err := r.Stop(1); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Join(2, 0); err != nil {
		t.Fatal(err)
	}

	for _, id := range []ID{1, 2} {
		if _, err := r.StationColumn(id); !errors.Is(err, ErrMissingTrack) {
			t.Errorf("StationColumn(%d) error = %v, want ErrMissingTrack", id, err)
		}
		if err := r.Register(id); !errors.Is(err, ErrDuplicateTrack) {
			t.Errorf("Register(%d) error = %v, want ErrDuplicateTrack", id, err)
		}
		if _, err := r.Split(0, id); !errors.Is(err, ErrDuplicateTrack) {
			t.Errorf("Split(0, %d) error = %v, want ErrDuplicateTrack", id, err)
		}
	}
}

func TestColumnAccounting(t *testing.T) {
	r := New()
	steps := []func() error{
		func() error { return r.Register(0) },
		func() error { _, err := r.Split(0, 1); return err },
		func() error { _, err := r.Split(1, 2); return err },
		func() error { return r.RegisterAll(3, 4) },
		func() error { _, err := r.Join(2, 0); return err },
		func() error { _, err := r.Stop(3); return err },
		func() error { _, err := r.Split(4, 5); return err },
		func() error { _, err := r.Join(0, 5); return err },
		func() error { _, err := r.Stop(1); return err },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		want := r.Seen() - r.Count(Joined) - r.Count(Stopped)
		if got := len(r.ActiveColumns()); got != want || got < 0 {
			t.Fatalf("step %d: %d active columns, want %d", i, got, want)
		}
		checkConsistent(t, r)
	}
}

func TestTrack(t *testing.T) {
	r := mustRegistry(t, 0, 1)

	if _, ok := r.Track(9); ok {
		t.Error("Track(9) found an unknown id")
	}
	tr, ok := r.Track(1)
	if !ok || tr != (Track{ID: 1, Column: 1, Status: Active}) {
		t.Errorf("Track(1) = %+v, %v", tr, ok)
	}
	if _, err := r.Stop(1); err != nil {
		t.Fatal(err)
	}
	tr, _ = r.Track(1)
	if tr.Status != Stopped || tr.Status.String() != "stopped" {
		t.Errorf("Track(1).Status = %v, want stopped", tr.Status)
	}
}
