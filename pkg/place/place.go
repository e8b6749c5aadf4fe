package place

import (
	"math/rand"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// Result is the outcome of a full placement run.
type Result struct {
	Components []board.Component
	Method     Method
	Initial    float64 // wirelength before optimization, mm
	Final      float64 // wirelength after, mm
	Trace      []float64
}

// Improvement returns the relative wirelength reduction in percent.
func (r *Result) Improvement() float64 {
	if r.Initial == 0 {
		return 0
	}
	return (r.Initial - r.Final) / r.Initial * 100
}

// Summarize condenses the annealing cost trace for reporting. Methods
// without a trace (force, grid) report zero statistics.
func (r *Result) Summarize() Summary {
	return summarize(r.Initial, r.Final, r.Trace)
}

// Run executes the chosen strategy followed by the orientation pass.
// Iteration budgets per method: anneal 1000 (or the given override), force
// 100, combined mode 50 force then 500 annealing. A design without
// connections has nothing to optimize against and falls back to grid
// arrangement.
func (o *Optimizer) Run(method Method, iterations int, rng *rand.Rand) *Result {
	result := &Result{
		Method:  method,
		Initial: o.WireLength(o.components),
	}

	if len(o.connections) == 0 {
		method = MethodGrid
		result.Method = MethodGrid
	}

	var placed []board.Component
	switch method {
	case MethodAnneal:
		if iterations <= 0 {
			iterations = 1000
		}
		ar := o.Anneal(AnnealConfig{Iterations: iterations, Rand: rng})
		placed = ar.Components
		result.Trace = ar.Trace

	case MethodForce:
		if iterations <= 0 {
			iterations = 100
		}
		placed = o.ForceDirected(iterations)

	case MethodBoth:
		seeded := o.ForceDirected(50)
		cfg := AnnealConfig{Iterations: 500, Rand: rng}
		cfg.setDefaults()
		ar := o.annealFrom(seeded, cfg)
		placed = ar.Components
		result.Trace = ar.Trace

	default:
		placed = o.AutoSpace(DefaultGridSpacing)
	}

	placed = o.OptimizeOrientation(placed)

	result.Components = placed
	result.Final = o.WireLength(placed)
	return result
}
