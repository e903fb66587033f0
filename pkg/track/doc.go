// Package track owns the column assignment of a metro diagram.
//
// # Overview
//
// A [Registry] tracks every track id a render pass has seen, its [Status],
// and the column each Active track occupies. Columns of Active tracks always
// form the contiguous range [0, Len()); the column order is the left-to-right
// order of rails in every rendered row.
//
// # Operations
//
//   - [Registry.Register] adds a track at the rightmost column
//   - [Registry.Split] inserts a track right of an existing one
//   - [Registry.Join] retires a track by merging it into another
//   - [Registry.Stop] retires a track without merging
//   - [Registry.StationColumn] and [Registry.ActiveColumns] read the layout
//
// Every operation fails fast: when it returns an error the registry is
// unchanged. Errors are coded [errors.Error] values wrapping one of
// [ErrDuplicateTrack], [ErrMissingTrack] or [ErrSelfJoin], so both
// errors.Is(err, track.ErrMissingTrack) and
// errors.Is(err, errors.ErrCodeMissingTrack) (from pkg/errors) work.
//
// # Id reuse
//
// An id that has been Joined or Stopped stays retired: registering or
// splitting into it again fails with [ErrDuplicateTrack].
//
// # Concurrency
//
// A Registry is owned by a single render pass and is not safe for
// concurrent use. Independent passes use independent registries.
//
// [errors.Error]: github.com/matzehuels/metro/pkg/errors.Error
package track
