package place

import (
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

const (
	// edgeMargin keeps component centers this far from every board edge.
	edgeMargin = 5.0
	// overlapMargin is the minimum center spacing on both axes. A pair
	// closer than this on X and Y at once counts as overlapping.
	overlapMargin = 5.0
)

// Method selects a placement strategy.
type Method string

const (
	MethodAnneal Method = "anneal"
	MethodForce  Method = "force"
	MethodBoth   Method = "both" // short force-directed pass, then annealing
	MethodGrid   Method = "grid"
)

// Optimizer holds the immutable inputs of a placement run. Strategies
// never mutate the design; they return a fresh component slice.
type Optimizer struct {
	components  []board.Component
	connections []board.Connection
	width       float64
	height      float64
}

// New builds an optimizer over the design's components and connections.
func New(d *board.Design) *Optimizer {
	return &Optimizer{
		components:  d.Components,
		connections: d.Connections,
		width:       d.Board.Width,
		height:      d.Board.Height,
	}
}

// WireLength returns the total Manhattan distance between the centers of
// every connected component pair. Pin offsets are ignored at this stage;
// the router works at pin granularity later.
func (o *Optimizer) WireLength(components []board.Component) float64 {
	pos := make(map[string]board.Point, len(components))
	for _, c := range components {
		pos[c.Name] = c.Position
	}

	var total float64
	for _, conn := range o.connections {
		from, okFrom := pos[conn.From.Component]
		to, okTo := pos[conn.To.Component]
		if okFrom && okTo {
			total += from.ManhattanDist(to)
		}
	}
	return total
}

// Overlaps reports whether any component pair sits closer than the
// overlap margin on both axes.
func (o *Optimizer) Overlaps(components []board.Component) bool {
	for i := range components {
		for j := i + 1; j < len(components); j++ {
			dx := math.Abs(components[i].Position.X - components[j].Position.X)
			dy := math.Abs(components[i].Position.Y - components[j].Position.Y)
			if dx < overlapMargin && dy < overlapMargin {
				return true
			}
		}
	}
	return false
}

// clamp keeps a point at least edgeMargin away from every board edge.
func (o *Optimizer) clamp(p board.Point) board.Point {
	p.X = math.Max(edgeMargin, math.Min(o.width-edgeMargin, p.X))
	p.Y = math.Max(edgeMargin, math.Min(o.height-edgeMargin, p.Y))
	return p
}

// snapshot returns a copy of the input components to mutate.
func (o *Optimizer) snapshot() []board.Component {
	out := make([]board.Component, len(o.components))
	copy(out, o.components)
	return out
}

func clone(components []board.Component) []board.Component {
	out := make([]board.Component, len(components))
	copy(out, components)
	return out
}
