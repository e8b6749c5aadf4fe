package route

import "github.com/pcbforge/pcbforge/pkg/board"

// Simplify reduces a polyline with recursive max-deviation simplification
// (Douglas-Peucker): the point farthest from the chord between the segment
// endpoints is kept if its distance exceeds tol, and both halves are
// simplified recursively; otherwise the whole segment collapses to its two
// endpoints. The simplified path deviates from the original by at most tol
// at any point, and the first and last waypoints are preserved exactly.
func Simplify(path board.Path, tol float64) board.Path {
	if len(path) < 3 {
		return path
	}
	return simplifyRange(path, 0, len(path)-1, tol)
}

func simplifyRange(points board.Path, start, end int, tol float64) board.Path {
	if end <= start+1 {
		return board.Path{points[start], points[end]}
	}

	maxDist := 0.0
	maxIdx := start
	for i := start + 1; i < end; i++ {
		if d := board.SegmentDistance(points[i], points[start], points[end]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tol {
		return board.Path{points[start], points[end]}
	}

	left := simplifyRange(points, start, maxIdx, tol)
	right := simplifyRange(points, maxIdx, end, tol)
	return append(left[:len(left)-1], right...)
}
