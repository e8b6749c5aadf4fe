// Package pkg provides the core libraries for pcbforge, an automated
// printed-circuit-board placement and routing engine.
//
// # Overview
//
// pcbforge takes a board design (components, pin-to-pin connections, board
// bounds, default manufacturing limits) and produces a finished layout:
// optimized component positions, routed copper paths, and a design-rule
// report. The pkg directory is organized by pipeline stage:
//
//	Design (JSON)
//	     ↓
//	[board]    typed design model, import/export
//	     ↓
//	[place]    component placement (annealing, force-directed, orientation)
//	     ↓
//	[nets]     net classification, routing rules, diff pairs, length matching
//	     ↓
//	[route]    grid model, A* router, path simplification, trace marking
//	     ↓
//	[drc]      design-rule checks over the realized geometry
//	     ↓
//	Layout artifact (JSON) + DRC report
//
// # Main Packages
//
// [board] - The design data model: board spec, components, connections,
// pads, tracks, drills, and the Layout output artifact.
//
// [place] - Placement optimization driven by a Manhattan wirelength cost
// function: simulated annealing, force-directed relaxation, greedy
// orientation search, and a grid auto-spacing fallback.
//
// [nets] - Net classification by name keywords, per-class routing rules,
// differential-pair detection, bus grouping, priority routing order, and
// serpentine length matching.
//
// [route] - Discretized obstacle grid over the board with an 8-connected
// A* pathfinder, Douglas-Peucker path simplification, Bresenham trace
// marking, and a multi-layer fallback.
//
// [drc] - Post-hoc design-rule checking: track widths, clearances, drill
// sizes, annular rings, outline presence, and net connectivity.
//
// [pipeline] - Orchestration of the complete place → classify → route →
// check run used by the CLI, with per-stage caching.
//
// # Infrastructure
//
// [cache] - Cache interface with file, Redis, and null backends plus
// deterministic content-hash keying of pipeline stages.
//
// [store] - Optional MongoDB archive for finished runs (layout + report).
//
// [render/netgraph] - Ratsnest (net connectivity) diagrams via Graphviz.
//
// [render/boardsvg] - SVG previews of the placed and routed board.
//
// [errors] - Structured error codes shared by CLI and pipeline.
//
// [observability] - Hook interfaces for instrumenting pipeline stages and
// cache operations without hard backend dependencies.
//
// [board]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/board
// [place]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/place
// [nets]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/nets
// [route]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/route
// [drc]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/drc
// [pipeline]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/cache
// [store]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/store
// [render/netgraph]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/render/netgraph
// [render/boardsvg]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/render/boardsvg
// [errors]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pcbforge/pcbforge/pkg/observability
package pkg
