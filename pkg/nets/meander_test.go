package nets

import (
	"math"
	"reflect"
	"testing"

	"github.com/pcbforge/pcbforge/pkg/board"
)

func TestAddMeanderNoExtraUnchanged(t *testing.T) {
	path := board.Path{{X: 0, Y: 0}, {X: 10, Y: 0}}
	for _, extra := range []float64{0, -3} {
		if got := AddMeander(path, extra); !reflect.DeepEqual(got, path) {
			t.Errorf("AddMeander(extra=%v) = %v, want unchanged", extra, got)
		}
	}
}

func TestAddMeanderShortPathUnchanged(t *testing.T) {
	path := board.Path{{X: 5, Y: 5}}
	if got := AddMeander(path, 4); !reflect.DeepEqual(got, path) {
		t.Errorf("AddMeander on single point = %v, want unchanged", got)
	}
}

func TestAddMeanderLengthens(t *testing.T) {
	path := board.Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 9, Y: 0}, {X: 10, Y: 0}}
	got := AddMeander(path, 4)

	if got.Length() <= path.Length() {
		t.Errorf("meandered length %.2f not longer than original %.2f", got.Length(), path.Length())
	}
	if got.Start() != path.Start() || got.End() != path.End() {
		t.Errorf("endpoints moved: %v, %v", got.Start(), got.End())
	}
}

func TestAddMeanderTightSerpentineAddsRequestedExtra(t *testing.T) {
	// On a segment short relative to the requested extra, the serpentine
	// is near-vertical and delivers the full extra length.
	path := board.Path{{X: 0, Y: 0}, {X: 2, Y: 0}}
	const extra = 8.0
	got := AddMeander(path, extra)

	if got.Length() < path.Length()+extra {
		t.Errorf("length %.2f, want at least %.2f", got.Length(), path.Length()+extra)
	}
}

func TestAddMeanderStaysWithinAmplitude(t *testing.T) {
	path := board.Path{{X: 0, Y: 0}, {X: 20, Y: 0}}
	got := AddMeander(path, 6)

	for _, p := range got {
		if math.Abs(p.Y) > MeanderAmplitude+1e-9 {
			t.Errorf("point %v strays beyond the meander amplitude", p)
		}
	}
}
