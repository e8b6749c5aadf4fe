// Package route implements grid-based trace routing for PCB layouts.
//
// A [Grid] discretizes the board into cells at a configurable resolution.
// Component footprints become impassable obstacle cells surrounded by a
// cost-penalized clearance band. [Grid.Route] runs an 8-connected A* search
// between two board points, simplifies the raw cell path with a recursive
// max-deviation pass, and returns waypoints in millimeters.
// [Grid.MarkTrace] commits an accepted path back onto the grid so that
// later routes treat it as a soft obstacle - routing order therefore
// matters, and is driven by net priority upstream.
//
// [MultiLayerGrid] holds one independent grid per copper layer and falls
// back to alternate layers when the preferred one has no path. True
// multi-layer routing with via costs is not implemented; when every layer
// fails the caller applies a direct-line fallback.
package route
