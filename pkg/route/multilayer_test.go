package route

import (
	"errors"
	"testing"

	"github.com/pcbforge/pcbforge/pkg/board"
)

func TestNewMultiLayerGridRejectsZeroLayers(t *testing.T) {
	if _, err := NewMultiLayerGrid(20, 20, 0.1, 0); err == nil {
		t.Fatal("NewMultiLayerGrid with 0 layers succeeded, want error")
	}
}

func TestMultiLayerFallsBackToFreeLayer(t *testing.T) {
	m, err := NewMultiLayerGrid(20, 20, 0.1, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Wall on layer 0 only; layer 1 stays open.
	m.Layer(0).AddObstacle(9, 0, 2, 20, 0)

	path, layer, err := m.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10}, 0)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if layer != 1 {
		t.Errorf("layer = %d, want fallback to 1", layer)
	}
	if len(path) < 2 {
		t.Errorf("path too short: %v", path)
	}
}

func TestMultiLayerPrefersRequestedLayer(t *testing.T) {
	m, err := NewMultiLayerGrid(20, 20, 0.1, 2)
	if err != nil {
		t.Fatal(err)
	}

	_, layer, err := m.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10}, 1)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if layer != 1 {
		t.Errorf("layer = %d, want preferred layer 1", layer)
	}
}

func TestMultiLayerOutOfRangePreferredClamps(t *testing.T) {
	m, err := NewMultiLayerGrid(20, 20, 0.1, 2)
	if err != nil {
		t.Fatal(err)
	}

	_, layer, err := m.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10}, 7)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if layer != 0 {
		t.Errorf("layer = %d, want 0 for out-of-range preference", layer)
	}
}

func TestMultiLayerAllLayersBlocked(t *testing.T) {
	m, err := NewMultiLayerGrid(20, 20, 0.1, 2)
	if err != nil {
		t.Fatal(err)
	}
	// AddObstacle on the multi-layer grid walls every layer.
	m.AddObstacle(9, 0, 2, 20, 0)

	_, _, err = m.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10}, 0)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("Route error = %v, want ErrNoPath", err)
	}
}

func TestMultiLayerMarkTraceIsPerLayer(t *testing.T) {
	m, err := NewMultiLayerGrid(20, 20, 0.1, 2)
	if err != nil {
		t.Fatal(err)
	}
	m.MarkTrace(0, board.Path{{X: 5, Y: 10}, {X: 15, Y: 10}}, 0.4)

	p := board.Point{X: 10, Y: 10}
	if !m.Layer(0).IsClearance(p) {
		t.Error("trace should be marked on layer 0")
	}
	if m.Layer(1).IsClearance(p) {
		t.Error("trace must not leak onto layer 1")
	}
}
