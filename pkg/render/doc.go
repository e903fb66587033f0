// Package render turns layout rows into diagram text.
//
// # Overview
//
// Each [layout.Row] becomes one line: its glyph run in ascending column
// order, then, for rows that carry text, a single space and the literal
// text. Trailing whitespace is trimmed from every line, including
// whitespace at the end of the text itself.
//
//	rows, err := layout.Run(events, layout.Options{})
//	text := render.String(rows)
//
// [Lines], [String], [Bytes] and [WriteTo] produce the same bytes: lines are
// joined by a single "\n" with no leading or trailing blank line and no
// trailing separator.
//
// # Tooling output
//
// [JSON] encodes rows together with their kind and rendered line for
// programs that post-process diagrams.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same events as a Graphviz graph of
// stations.
//
// [layout.Row]: github.com/matzehuels/metro/pkg/layout.Row
// [nodelink]: github.com/matzehuels/metro/pkg/render/nodelink
package render
