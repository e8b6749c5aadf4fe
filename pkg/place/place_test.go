package place

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pcbforge/pcbforge/pkg/board"
)

func testDesign() *board.Design {
	return &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "U1", Position: board.Point{X: 10, Y: 10}},
			{Name: "U2", Position: board.Point{X: 40, Y: 40}},
			{Name: "C1", Position: board.Point{X: 10, Y: 40}},
		},
		Connections: []board.Connection{
			{From: board.PinRef{Component: "U1", Pin: "1"}, To: board.PinRef{Component: "U2", Pin: "1"}},
			{From: board.PinRef{Component: "U2", Pin: "2"}, To: board.PinRef{Component: "C1", Pin: "1"}},
		},
	}
}

func TestWireLength(t *testing.T) {
	d := &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "A", Position: board.Point{X: 0, Y: 0}},
			{Name: "B", Position: board.Point{X: 3, Y: 4}},
		},
		Connections: []board.Connection{
			{From: board.PinRef{Component: "A", Pin: "1"}, To: board.PinRef{Component: "B", Pin: "1"}},
		},
	}
	o := New(d)
	if got := o.WireLength(d.Components); got != 7 {
		t.Errorf("WireLength = %v, want 7", got)
	}
}

func TestOverlaps(t *testing.T) {
	o := New(&board.Design{Board: board.Spec{Width: 50, Height: 50}})

	tests := []struct {
		name string
		a, b board.Point
		want bool
	}{
		{"close on both axes", board.Point{X: 10, Y: 10}, board.Point{X: 12, Y: 12}, true},
		{"close on x only", board.Point{X: 10, Y: 10}, board.Point{X: 13, Y: 16}, false},
		{"far apart", board.Point{X: 10, Y: 10}, board.Point{X: 20, Y: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps := []board.Component{
				{Name: "A", Position: tt.a},
				{Name: "B", Position: tt.b},
			}
			if got := o.Overlaps(comps); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnnealNeverWorseThanInitial(t *testing.T) {
	o := New(testDesign())
	r := o.Anneal(AnnealConfig{Iterations: 500, Rand: rand.New(rand.NewSource(7))})

	if r.Best > r.Initial {
		t.Errorf("best cost %.2f exceeds initial cost %.2f", r.Best, r.Initial)
	}
	if len(r.Trace) != 500 {
		t.Errorf("trace length = %d, want 500", len(r.Trace))
	}
}

func TestAnnealRespectsBoundsAndOverlap(t *testing.T) {
	d := testDesign()
	o := New(d)
	r := o.Anneal(AnnealConfig{Iterations: 1000, Rand: rand.New(rand.NewSource(3))})

	for _, c := range r.Components {
		if c.Position.X < edgeMargin || c.Position.X > d.Board.Width-edgeMargin ||
			c.Position.Y < edgeMargin || c.Position.Y > d.Board.Height-edgeMargin {
			t.Errorf("component %s at %v violates the edge margin", c.Name, c.Position)
		}
	}
	if o.Overlaps(r.Components) {
		t.Error("optimized placement contains overlapping components")
	}
}

func TestAnnealDeterministicForSeed(t *testing.T) {
	run := func(seed int64) []board.Component {
		o := New(testDesign())
		return o.Anneal(AnnealConfig{Iterations: 300, Rand: rand.New(rand.NewSource(seed))}).Components
	}

	if !reflect.DeepEqual(run(42), run(42)) {
		t.Error("same seed produced different placements")
	}
}

func TestAnnealDoesNotMutateInput(t *testing.T) {
	d := testDesign()
	before := d.Components[0].Position

	New(d).Anneal(AnnealConfig{Iterations: 100, Rand: rand.New(rand.NewSource(1))})

	if d.Components[0].Position != before {
		t.Errorf("input component moved from %v to %v", before, d.Components[0].Position)
	}
}

func TestForceDirectedPullsConnectedPairCloser(t *testing.T) {
	d := &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "A", Position: board.Point{X: 10, Y: 25}},
			{Name: "B", Position: board.Point{X: 40, Y: 25}},
		},
		Connections: []board.Connection{
			{From: board.PinRef{Component: "A", Pin: "1"}, To: board.PinRef{Component: "B", Pin: "1"}},
		},
	}
	o := New(d)
	placed := o.ForceDirected(10)

	before := d.Components[0].Position.Dist(d.Components[1].Position)
	after := placed[0].Position.Dist(placed[1].Position)
	if after >= before {
		t.Errorf("connected pair did not move closer: %.2f -> %.2f", before, after)
	}
}

func TestForceDirectedPushesClosePairApart(t *testing.T) {
	d := &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "A", Position: board.Point{X: 20, Y: 20}},
			{Name: "B", Position: board.Point{X: 22, Y: 20}},
		},
	}
	o := New(d)
	placed := o.ForceDirected(5)

	before := d.Components[0].Position.Dist(d.Components[1].Position)
	after := placed[0].Position.Dist(placed[1].Position)
	if after <= before {
		t.Errorf("unconnected close pair did not separate: %.2f -> %.2f", before, after)
	}
}

func TestAutoSpaceGrid(t *testing.T) {
	d := &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"},
		},
	}
	placed := New(d).AutoSpace(10)

	want := []board.Point{
		{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 30, Y: 10},
		{X: 10, Y: 20}, {X: 20, Y: 20},
	}
	for i, c := range placed {
		if c.Position != want[i] {
			t.Errorf("component %d at %v, want %v", i, c.Position, want[i])
		}
	}
}

func TestOptimizeOrientationNeverIncreasesCost(t *testing.T) {
	o := New(testDesign())
	placed := o.snapshot()

	oriented := o.OptimizeOrientation(placed)
	if got, prev := o.WireLength(oriented), o.WireLength(placed); got > prev {
		t.Errorf("orientation pass increased wirelength: %.2f -> %.2f", prev, got)
	}
	if len(oriented) != len(placed) {
		t.Fatalf("component count changed: %d -> %d", len(placed), len(oriented))
	}
}

func TestSummarizeTraceStatistics(t *testing.T) {
	r := &AnnealResult{Initial: 3, Best: 1, Trace: []float64{1, 2, 3}}
	s := r.Summarize()
	if s.Initial != 3 || s.Best != 1 {
		t.Errorf("summary endpoints = %v/%v, want 3/1", s.Initial, s.Best)
	}
	if s.Mean != 2 {
		t.Errorf("mean = %v, want 2", s.Mean)
	}
	if s.StdDev != 1 {
		t.Errorf("stddev = %v, want 1", s.StdDev)
	}

	// A run without a trace reports zero statistics.
	empty := (&Result{Initial: 5, Final: 4}).Summarize()
	if empty.Mean != 0 || empty.StdDev != 0 {
		t.Errorf("traceless summary = %+v, want zero mean and stddev", empty)
	}
}

func TestRunAnnealImproves(t *testing.T) {
	o := New(testDesign())
	r := o.Run(MethodAnneal, 500, rand.New(rand.NewSource(11)))

	if r.Final > r.Initial {
		t.Errorf("final wirelength %.2f exceeds initial %.2f", r.Final, r.Initial)
	}
	if r.Improvement() < 0 {
		t.Errorf("negative improvement: %.1f%%", r.Improvement())
	}
}

func TestRunFallsBackToGridWithoutConnections(t *testing.T) {
	d := &board.Design{
		Board: board.Spec{Width: 50, Height: 50},
		Components: []board.Component{
			{Name: "A", Position: board.Point{X: 33, Y: 7}},
			{Name: "B", Position: board.Point{X: 12, Y: 41}},
		},
	}
	r := New(d).Run(MethodAnneal, 100, rand.New(rand.NewSource(1)))

	if r.Method != MethodGrid {
		t.Errorf("method = %q, want fallback to %q", r.Method, MethodGrid)
	}
	if r.Components[0].Position != (board.Point{X: 10, Y: 10}) {
		t.Errorf("first component at %v, want grid origin (10,10)", r.Components[0].Position)
	}
}
