package route

import (
	"testing"

	"github.com/pcbforge/pcbforge/pkg/board"
)

func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, res  float64
	}{
		{"zero width", 0, 20, 0.1},
		{"negative height", 30, -5, 0.1},
		{"zero resolution", 30, 20, 0},
		{"negative resolution", 30, 20, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.w, tt.h, tt.res); err == nil {
				t.Fatalf("NewGrid(%v, %v, %v) succeeded, want error", tt.w, tt.h, tt.res)
			}
		})
	}
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		w, h, res  float64
		cols, rows int
	}{
		{30, 20, 0.1, 300, 200},
		{10, 10, 0.25, 40, 40},
		{5, 3, 1.0, 5, 3},
	}
	for _, tt := range tests {
		g, err := NewGrid(tt.w, tt.h, tt.res)
		if err != nil {
			t.Fatalf("NewGrid(%v, %v, %v): %v", tt.w, tt.h, tt.res, err)
		}
		cols, rows := g.Size()
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("Size() = %dx%d, want %dx%d", cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestAddObstacleMarksFootprintAndBand(t *testing.T) {
	g, err := NewGrid(30, 20, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	g.AddObstacle(10, 10, 5, 5, 1)

	if !g.IsObstacle(board.Point{X: 12, Y: 12}) {
		t.Error("interior of footprint should be an obstacle")
	}
	if g.IsObstacle(board.Point{X: 9.5, Y: 12}) {
		t.Error("clearance band should not be an obstacle")
	}
	if !g.IsClearance(board.Point{X: 9.5, Y: 12}) {
		t.Error("band around footprint should be clearance")
	}
	if g.IsObstacle(board.Point{X: 5, Y: 5}) || g.IsClearance(board.Point{X: 5, Y: 5}) {
		t.Error("cells far from the footprint should stay free")
	}
}

func TestAddObstacleClipsToBounds(t *testing.T) {
	g, err := NewGrid(30, 20, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	// Footprint hanging off the top-left corner must not panic and must
	// still mark the in-bounds part.
	g.AddObstacle(-5, -5, 8, 8, 1)

	if !g.IsObstacle(board.Point{X: 1, Y: 1}) {
		t.Error("in-bounds part of an off-board footprint should be marked")
	}
}

func TestObstaclePrecedenceOverClearance(t *testing.T) {
	g, err := NewGrid(30, 20, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	g.AddObstacle(10, 10, 2, 2, 0)
	// Second footprint whose clearance band overlaps the first footprint.
	g.AddObstacle(13, 10, 2, 2, 2)

	if !g.IsObstacle(board.Point{X: 11.5, Y: 11}) {
		t.Error("obstacle cell must stay impassable after an overlapping clearance band")
	}
}

func TestMarkTrace(t *testing.T) {
	g, err := NewGrid(30, 20, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	path := board.Path{{X: 5, Y: 10}, {X: 15, Y: 10}}
	g.MarkTrace(path, 0.4)

	for _, x := range []float64{5, 8, 10, 12, 15} {
		p := board.Point{X: x, Y: 10}
		if !g.IsClearance(p) {
			t.Errorf("cell at %v should be clearance after MarkTrace", p)
		}
		if g.IsObstacle(p) {
			t.Errorf("MarkTrace must not create obstacles, got one at %v", p)
		}
	}
	if g.IsClearance(board.Point{X: 10, Y: 15}) {
		t.Error("cells far from the trace should stay free")
	}
}

func TestMarkTraceIgnoresDegeneratePaths(t *testing.T) {
	g, err := NewGrid(30, 20, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	g.MarkTrace(nil, 0.4)
	g.MarkTrace(board.Path{{X: 5, Y: 5}}, 0.4)

	if g.IsClearance(board.Point{X: 5, Y: 5}) {
		t.Error("single-point path should mark nothing")
	}
}
