package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/track"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Layout is used to validate the event sequence before conversion.
	Layout layout.Options
	// Detailed adds the track id to station labels.
	Detailed bool
}

type node struct {
	id    string
	label string
	track track.ID
	note  bool
}

type edge struct {
	from, to string
	style    string // "" for a track edge
}

// ToDOT converts an event sequence to Graphviz DOT format.
//
// Every station and note becomes a node. Consecutive stations of a track are
// connected, a split connects the parent's last station to the first station
// of the new track, and a join connects the retired track's last station to
// the next station of the surviving one. The sequence is validated with the
// layout engine first, so invalid sequences fail with the same errors.
func ToDOT(events []event.Event, opts Options) (string, error) {
	if _, err := layout.Run(events, opts.Layout); err != nil {
		return "", err
	}

	nodes, edges := build(events)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.style == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=%s];\n", e.from, e.to, e.style)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// build walks a valid event sequence and collects stations and their
// connections.
func build(events []event.Event) ([]node, []edge) {
	var (
		nodes   []node
		edges   []edge
		last    = map[track.ID]string{}
		pending = map[track.ID][]pendingEdge{}
	)

	sources := func(id track.ID) []pendingEdge {
		if n, ok := last[id]; ok {
			return []pendingEdge{{from: n}}
		}
		return pending[id]
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case event.Station:
			n := node{id: fmt.Sprintf("s%d", len(nodes)), label: ev.Text, track: ev.Track}
			nodes = append(nodes, n)
			if prev, ok := last[ev.Track]; ok {
				edges = append(edges, edge{from: prev, to: n.id})
			}
			for _, p := range pending[ev.Track] {
				edges = append(edges, edge{from: p.from, to: n.id, style: p.style()})
			}
			delete(pending, ev.Track)
			last[ev.Track] = n.id

		case event.Note:
			nodes = append(nodes, node{id: fmt.Sprintf("s%d", len(nodes)), label: ev.Text, note: true})

		case event.SplitTrack:
			for _, p := range sources(ev.From) {
				pending[ev.New] = append(pending[ev.New], pendingEdge{from: p.from, split: true})
			}

		case event.JoinTrack:
			for _, p := range sources(ev.From) {
				pending[ev.To] = append(pending[ev.To], pendingEdge{from: p.from, join: true})
			}
			delete(last, ev.From)
			delete(pending, ev.From)

		case event.StopTrack:
			delete(last, ev.Track)
			delete(pending, ev.Track)
		}
	}
	return nodes, edges
}

type pendingEdge struct {
	from        string
	split, join bool
}

func (p pendingEdge) style() string {
	switch {
	case p.split:
		return "dashed"
	case p.join:
		return "dotted"
	}
	return ""
}

func fmtAttrs(n node, detailed bool) []string {
	label := n.label
	if detailed && !n.note {
		label = fmt.Sprintf("%s\ntrack: %d", n.label, n.track)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.note {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
