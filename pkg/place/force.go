package place

import (
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

const (
	springConstant = 0.1  // attraction per mm of separation on connected pairs
	repelConstant  = 50.0 // repulsion numerator for close pairs
	repelRange     = 15.0 // mm, pairs further apart do not repel
	damping        = 0.9
	repelSoftening = 0.1 // keeps the force finite at zero separation
)

// ForceDirected relaxes the placement for a fixed number of iterations:
// connected components attract with a linear spring, any pair closer than
// 15mm repels with an inverse-square force, and damped net forces move the
// components each step. There is no convergence check; the iteration budget
// is the only stop condition.
func (o *Optimizer) ForceDirected(iterations int) []board.Component {
	components := o.snapshot()
	index := make(map[string]int, len(components))
	for i, c := range components {
		index[c.Name] = i
	}

	for iter := 0; iter < iterations; iter++ {
		fx := make([]float64, len(components))
		fy := make([]float64, len(components))

		// Attraction along connections.
		for _, conn := range o.connections {
			i, okFrom := index[conn.From.Component]
			j, okTo := index[conn.To.Component]
			if !okFrom || !okTo || i == j {
				continue
			}
			dx := components[j].Position.X - components[i].Position.X
			dy := components[j].Position.Y - components[i].Position.Y
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			force := springConstant * dist
			fx[i] += force * dx / dist
			fy[i] += force * dy / dist
			fx[j] -= force * dx / dist
			fy[j] -= force * dy / dist
		}

		// Repulsion between close pairs, connected or not.
		for i := range components {
			for j := i + 1; j < len(components); j++ {
				dx := components[j].Position.X - components[i].Position.X
				dy := components[j].Position.Y - components[i].Position.Y
				dist := math.Hypot(dx, dy)
				if dist >= repelRange {
					continue
				}
				force := repelConstant / (dist*dist + repelSoftening)
				fx[i] -= force * dx / (dist + repelSoftening)
				fy[i] -= force * dy / (dist + repelSoftening)
				fx[j] += force * dx / (dist + repelSoftening)
				fy[j] += force * dy / (dist + repelSoftening)
			}
		}

		for i := range components {
			p := components[i].Position
			p.X += fx[i] * damping
			p.Y += fy[i] * damping
			components[i].Position = o.clamp(p)
		}
	}

	return components
}
