package place

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// AnnealConfig tunes the simulated annealing schedule. The zero value is
// usable; missing fields are filled with the defaults below.
type AnnealConfig struct {
	Iterations int     // default 1000
	TempStart  float64 // default 100
	TempEnd    float64 // default 0.1
	Rand       *rand.Rand
}

// maxMove is the perturbation radius at full temperature, in millimeters.
// Moves shrink linearly with temperature.
const maxMove = 5.0

func (c *AnnealConfig) setDefaults() {
	if c.Iterations <= 0 {
		c.Iterations = 1000
	}
	if c.TempStart <= 0 {
		c.TempStart = 100
	}
	if c.TempEnd <= 0 {
		c.TempEnd = 0.1
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(1))
	}
}

// AnnealResult carries the optimized placement and the per-iteration cost
// trace for reporting.
type AnnealResult struct {
	Components []board.Component
	Initial    float64
	Best       float64
	Trace      []float64
}

// Summary condenses the cost trace for log output.
type Summary struct {
	Initial float64
	Best    float64
	Mean    float64
	StdDev  float64
}

// Summarize computes trace statistics.
func (r *AnnealResult) Summarize() Summary {
	return summarize(r.Initial, r.Best, r.Trace)
}

func summarize(initial, best float64, trace []float64) Summary {
	s := Summary{Initial: initial, Best: best}
	if len(trace) > 0 {
		s.Mean = stat.Mean(trace, nil)
		s.StdDev = stat.StdDev(trace, nil)
	}
	return s
}

// Anneal runs simulated annealing over component positions. Each iteration
// perturbs one random component by up to 5mm scaled by the current
// temperature, clamps it inside the board margins, rejects overlapping
// candidates outright, and otherwise applies the Metropolis criterion.
// Temperature decays geometrically from TempStart to TempEnd over the
// iteration budget. The best placement seen anywhere in the walk is
// returned, not the final one.
func (o *Optimizer) Anneal(cfg AnnealConfig) *AnnealResult {
	cfg.setDefaults()
	return o.annealFrom(o.snapshot(), cfg)
}

func (o *Optimizer) annealFrom(start []board.Component, cfg AnnealConfig) *AnnealResult {
	current := start
	currentCost := o.WireLength(current)

	best := clone(current)
	bestCost := currentCost

	result := &AnnealResult{
		Initial: currentCost,
		Trace:   make([]float64, 0, cfg.Iterations),
	}
	if len(current) == 0 {
		result.Components = current
		result.Best = currentCost
		return result
	}

	temp := cfg.TempStart
	coolingRate := math.Pow(cfg.TempStart/cfg.TempEnd, 1.0/float64(cfg.Iterations))

	for i := 0; i < cfg.Iterations; i++ {
		// Cooling runs every iteration, rejected moves included, so the
		// schedule reaches TempEnd after the full budget.
		candidate := o.perturb(current, temp, cfg)

		if !o.Overlaps(candidate) {
			candidateCost := o.WireLength(candidate)
			delta := candidateCost - currentCost

			if delta < 0 || cfg.Rand.Float64() < math.Exp(-delta/temp) {
				current = candidate
				currentCost = candidateCost

				if currentCost < bestCost {
					best = clone(current)
					bestCost = currentCost
				}
			}
		}

		result.Trace = append(result.Trace, currentCost)
		temp /= coolingRate
	}

	result.Components = best
	result.Best = bestCost
	return result
}

// perturb moves one random component by a uniform offset in [-d, d] on
// each axis, where d shrinks with temperature.
func (o *Optimizer) perturb(components []board.Component, temp float64, cfg AnnealConfig) []board.Component {
	candidate := clone(components)
	idx := cfg.Rand.Intn(len(candidate))
	d := maxMove * (temp / cfg.TempStart)

	p := candidate[idx].Position
	p.X += cfg.Rand.Float64()*2*d - d
	p.Y += cfg.Rand.Float64()*2*d - d
	candidate[idx].Position = o.clamp(p)
	return candidate
}
