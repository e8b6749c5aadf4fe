package board

import "math"

// Point is a location on the board in millimeters. The origin is the
// board's top-left corner; X grows rightward and Y grows downward.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// ManhattanDist returns the Manhattan (taxicab) distance to q.
func (p Point) ManhattanDist(q Point) float64 {
	return math.Abs(q.X-p.X) + math.Abs(q.Y-p.Y)
}

// Path is an ordered sequence of waypoints realizing one connection.
type Path []Point

// Length returns the total polyline length of the path in millimeters.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].Dist(p[i])
	}
	return total
}

// Start returns the first waypoint. It panics on an empty path.
func (p Path) Start() Point { return p[0] }

// End returns the last waypoint. It panics on an empty path.
func (p Path) End() Point { return p[len(p)-1] }

// SegmentDistance returns the distance from pt to the line segment a-b.
// Degenerate segments (a == b) fall back to the point distance.
func SegmentDistance(pt, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return pt.Dist(a)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	proj := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return pt.Dist(proj)
}

// MaxDeviation returns the maximum perpendicular distance of any point in p
// from the polyline q. It is used to verify simplification tolerances.
func (p Path) MaxDeviation(q Path) float64 {
	var worst float64
	for _, pt := range p {
		best := math.Inf(1)
		for i := 1; i < len(q); i++ {
			if d := SegmentDistance(pt, q[i-1], q[i]); d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}
