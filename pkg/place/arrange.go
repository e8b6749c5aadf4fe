package place

import (
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// rotations tried by the orientation pass, in degrees.
var rotations = [4]float64{0, 90, 180, 270}

// OptimizeOrientation greedily picks the best rotation out of 0/90/180/270
// for each component in turn, keeping a rotation only when it strictly
// lowers the wirelength of the whole placement. Components are evaluated
// in input order with earlier decisions already applied.
func (o *Optimizer) OptimizeOrientation(components []board.Component) []board.Component {
	out := clone(components)
	bestCost := o.WireLength(out)

	for i := range out {
		original := out[i].Rotation
		bestRotation := original

		for _, r := range rotations {
			out[i].Rotation = r
			if cost := o.WireLength(out); cost < bestCost {
				bestCost = cost
				bestRotation = r
			}
		}
		out[i].Rotation = bestRotation
	}
	return out
}

// DefaultGridSpacing is the center-to-center pitch used by AutoSpace.
const DefaultGridSpacing = 10.0

// AutoSpace arranges components on a near-square grid starting at (10,10).
// It is the fallback when there are no connections to optimize against and
// a reasonable starting point before annealing.
func (o *Optimizer) AutoSpace(spacing float64) []board.Component {
	if spacing <= 0 {
		spacing = DefaultGridSpacing
	}
	components := o.snapshot()
	if len(components) == 0 {
		return components
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(components)))))
	for i := range components {
		row := i / cols
		col := i % cols
		components[i].Position = board.Point{
			X: 10 + float64(col)*spacing,
			Y: 10 + float64(row)*spacing,
		}
	}
	return components
}
