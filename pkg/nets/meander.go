package nets

import (
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// MeanderAmplitude is the perpendicular wave amplitude in millimeters.
const MeanderAmplitude = 1.0

// AddMeander lengthens a path by splicing a serpentine pattern into its
// longest segment. extra is the additional length wanted in millimeters;
// zero or negative extra returns the path unchanged, as does a path with
// fewer than two waypoints. Endpoints never move.
func AddMeander(path board.Path, extra float64) board.Path {
	if extra <= 0 || len(path) < 2 {
		return path
	}

	longest := 0
	longestLen := 0.0
	for i := 0; i < len(path)-1; i++ {
		if l := path[i].Dist(path[i+1]); l > longestLen {
			longestLen = l
			longest = i
		}
	}

	meander := generateMeander(path[longest], path[longest+1], extra)

	out := make(board.Path, 0, len(path)+len(meander)-2)
	out = append(out, path[:longest]...)
	out = append(out, meander...)
	out = append(out, path[longest+2:]...)
	return out
}

// generateMeander replaces the straight run start-end with a zig-zag whose
// interior points alternate MeanderAmplitude to either side of the line.
// The cycle count is sized so a tight serpentine adds roughly extra
// millimeters; on long segments the zig-zag is shallower and adds less,
// which callers compensate for by re-measuring afterwards.
func generateMeander(start, end board.Point, extra float64) board.Path {
	dx := end.X - start.X
	dy := end.Y - start.Y
	direct := math.Hypot(dx, dy)
	if direct == 0 {
		return board.Path{start, end}
	}

	perpX := -dy / direct
	perpY := dx / direct

	cycles := int(extra/(4*MeanderAmplitude)) + 1
	points := board.Path{start}

	for i := 1; i < cycles*2; i++ {
		t := float64(i) / float64(cycles*2)
		offset := MeanderAmplitude
		if i%2 == 0 {
			offset = -MeanderAmplitude
		}
		points = append(points, board.Point{
			X: start.X + dx*t + perpX*offset,
			Y: start.Y + dy*t + perpY*offset,
		})
	}

	return append(points, end)
}
