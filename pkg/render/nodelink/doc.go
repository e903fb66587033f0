// Package nodelink renders metro events as node-link diagrams.
//
// # Overview
//
// Instead of a column of glyphs, this package draws every station as a box
// and every track segment as an arrow, using Graphviz for layout. It is
// useful when a diagram grows too wide for a terminal.
//
// # Usage
//
// Convert an event sequence to DOT, then render to SVG:
//
//	dot, err := nodelink.ToDOT(events, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] runs the layout engine over the events first, so a sequence that
// would fail to render as text fails here with the same error.
//
// # Edge styles
//
//   - solid: consecutive stations of one track
//   - dashed: a split, from the parent's last station
//   - dotted: a join, into the surviving track's next station
//
// Notes are drawn as grey dashed boxes without edges.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
