// Package pkg provides the libraries behind the metro diagram renderer.
//
// # Overview
//
// Metro turns a sequence of track events into a text diagram of parallel
// tracks, in the style of git log --graph. The pkg directory is organized
// in layers:
//
//  1. [track] and [event] - the track registry and the event vocabulary
//  2. [layout] - the engine that turns events into glyph rows
//  3. [render] - row text, row JSON, and Graphviz node-link output
//  4. [metro] - the convenience API and the incremental builder
//  5. [io] - JSON, YAML and TOML script files
//  6. [pipeline] - orchestration (decode → layout → render) with caching
//  7. [cache], [observability], [errors], [buildinfo] - infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Script file (JSON/YAML/TOML)
//	         ↓
//	    [io] package (decode events)
//	         ↓
//	    [layout] package (assign columns, draw rows)
//	         ↓
//	    [render] package (text, JSON, DOT, SVG)
//
// # Quick Start
//
//	import "github.com/matzehuels/metro/pkg/metro"
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
// For file based workflows use [pipeline.Runner], which decodes a script,
// lays it out and renders every requested format, caching the results.
//
// [track]: github.com/matzehuels/metro/pkg/track
// [event]: github.com/matzehuels/metro/pkg/event
// [layout]: github.com/matzehuels/metro/pkg/layout
// [render]: github.com/matzehuels/metro/pkg/render
// [metro]: github.com/matzehuels/metro/pkg/metro
// [io]: github.com/matzehuels/metro/pkg/io
// [pipeline]: github.com/matzehuels/metro/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/metro/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/metro/pkg/cache
// [observability]: github.com/matzehuels/metro/pkg/observability
// [errors]: github.com/matzehuels/metro/pkg/errors
// [buildinfo]: github.com/matzehuels/metro/pkg/buildinfo
package pkg
