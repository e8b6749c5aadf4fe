// Package drc validates finished layouts against manufacturing design
// rules: track width bounds, copper clearance, drill sizes, annular rings,
// board outline presence and unconnected nets. Rules load from a TOML file
// and fall back to standard fab-house defaults. Checks only read the
// layout; fixing violations is up to the caller.
package drc
