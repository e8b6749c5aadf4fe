// Package render provides visualization rendering for board layouts.
//
// # Overview
//
// This package contains the renderers that turn pipeline outputs into
// visual artifacts:
//
//   - Board previews (in [boardsvg] subpackage)
//   - Ratsnest connectivity diagrams (in [netgraph] subpackage)
//
// # Board Previews
//
// The [boardsvg] subpackage draws a finished layout as an SVG: board
// outline, component bodies, routed copper colored by net class, pads,
// and mounting holes.
//
//	svg := boardsvg.Render(layout, boardsvg.WithLabels())
//
// # Ratsnest Diagrams
//
// The [netgraph] subpackage renders the design's connectivity as a
// Graphviz diagram. Components appear as boxes connected by net edges,
// which is useful before placement when no geometry exists yet.
//
//	dot := netgraph.ToDOT(design, netgraph.Options{})
//	svg, err := netgraph.RenderSVG(dot)
//
// [boardsvg]: github.com/pcbforge/pcbforge/pkg/render/boardsvg
// [netgraph]: github.com/pcbforge/pcbforge/pkg/render/netgraph
package render
