// Package io reads and writes metro event scripts.
//
// # Overview
//
// An event script is a document listing the events of one diagram in
// order. Scripts can be written as JSON, YAML or TOML; all three describe
// the same structure and render identically.
//
// # JSON Format
//
//	{
//	  "events": [
//	    {"kind": "station", "track": 0, "text": "Depot"},
//	    {"kind": "split", "from": 0, "to": 1},
//	    {"kind": "station", "track": 1, "text": "Harbour"},
//	    {"kind": "join", "from": 1, "to": 0},
//	    {"kind": "station", "track": 0, "text": "Terminus"}
//	  ]
//	}
//
// # TOML Format
//
//	[[events]]
//	kind = "station"
//	track = 0
//	text = "Depot"
//
//	[[events]]
//	kind = "split"
//	from = 0
//	to = 1
//
// # Event Fields
//
//   - station: track, text
//   - note: text (a line that belongs to no track)
//   - split: from (existing track), to (new track)
//   - join: from (retired track), to (surviving track)
//   - stop: track
//   - start: track, or tracks for several at once
//   - noop: no fields (a spacer row)
//
// Unknown fields, unknown kinds and missing required fields fail with
// [ErrInvalidScript], naming the index of the offending record.
package io
