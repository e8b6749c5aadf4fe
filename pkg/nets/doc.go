// Package nets groups connections into electrical nets and decides how
// each net wants to be routed.
//
// A [Manager] assigns every connection to a named net, classifies the net
// from name keywords (power, ground, clock, high-speed, signal), attaches
// the per-class routing [Rule], detects differential pairs from _P/_N and
// +/- suffixes, and produces the priority-ordered routing sequence.
// [AddMeander] lengthens a routed path with a serpentine pattern so both
// members of a pair end up length-matched.
package nets
