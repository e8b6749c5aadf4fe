// Package board defines the data model for a PCB design and its realized
// layout.
//
// A [Design] is the engine's input: board bounds, manufacturing defaults,
// components, pin-to-pin connections, and mounting drills. Designs are
// imported from JSON with [ReadDesign] and validated for referential
// integrity (every connection endpoint must name a known component).
//
// A [Layout] is the engine's output: final component positions, one routed
// path per connection together with the net it was routed under, the
// realized copper tracks and pads, and the design-rule report. Layouts
// serialize to JSON for downstream sinks and carry bson tags so runs can be
// archived.
//
// The geometry primitives ([Point], [Path]) use millimeters throughout.
package board
