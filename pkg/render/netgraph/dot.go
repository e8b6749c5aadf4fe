// Package netgraph renders design connectivity as Graphviz diagrams.
// Components appear as boxes and nets as labeled edges, giving a ratsnest
// view of the design before any geometry exists.
package netgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/nets"
)

// Options configures ratsnest rendering.
type Options struct {
	// Detailed includes footprint names and pin numbers in the diagram.
	// When false, only component and net names are shown.
	Detailed bool
}

// classColors maps net classes to edge colors. Unclassified nets fall back
// to the signal color.
var classColors = map[nets.Class]string{
	nets.Power:        "firebrick",
	nets.Ground:       "dimgray",
	nets.Signal:       "steelblue",
	nets.Clock:        "darkorange",
	nets.HighSpeed:    "purple",
	nets.Differential: "darkgreen",
	nets.Analog:       "teal",
}

// ToDOT converts a design's connectivity to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Edges are colored by net class so power distribution and high-speed
// signals stand out from ordinary signal wiring.
func ToDOT(d *board.Design, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph ratsnest {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, c := range d.Components {
		label := fmtLabel(c, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Name, label)
	}

	buf.WriteString("\n")
	for _, conn := range d.Connections {
		name := nets.NetName(conn)
		color := classColors[nets.Classify(name)]
		if color == "" {
			color = classColors[nets.Signal]
		}
		label := name
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s - %s", name, conn.From.Pin, conn.To.Pin)
		}
		fmt.Fprintf(&buf, "  %q -- %q [label=%q, color=%q, fontsize=10];\n",
			conn.From.Component, conn.To.Component, label, color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c board.Component, detailed bool) string {
	if !detailed || c.Footprint == "" {
		return c.Name
	}
	return c.Name + "\n" + c.Footprint
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG, nil)
}

func renderFormat(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header so the diagram scales
// cleanly when embedded.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
