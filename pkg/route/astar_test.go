package route

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pcbforge/pcbforge/pkg/board"
)

func mustGrid(t *testing.T, w, h float64) *Grid {
	t.Helper()
	g, err := NewGrid(w, h, DefaultResolution)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestRouteStraightLine(t *testing.T) {
	g := mustGrid(t, 20, 20)

	path, err := g.Route(board.Point{X: 1, Y: 1}, board.Point{X: 5, Y: 1})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	want := board.Path{{X: 1, Y: 1}, {X: 5, Y: 1}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("Route = %v, want %v", path, want)
	}
}

func TestRouteDiagonal(t *testing.T) {
	g := mustGrid(t, 20, 20)

	path, err := g.Route(board.Point{X: 1, Y: 1}, board.Point{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if path.Start() != (board.Point{X: 1, Y: 1}) || path.End() != (board.Point{X: 5, Y: 5}) {
		t.Errorf("endpoints = %v, %v, want (1,1), (5,5)", path.Start(), path.End())
	}
	// A collinear diagonal run collapses to its endpoints.
	if len(path) != 2 {
		t.Errorf("len(path) = %d, want 2", len(path))
	}
}

func TestRouteDetoursAroundObstacle(t *testing.T) {
	g := mustGrid(t, 20, 20)
	// Wall from the top edge down to y=15, forcing the route below it.
	g.AddObstacle(8, 0, 4, 15, 0)

	start := board.Point{X: 2, Y: 7.5}
	end := board.Point{X: 18, Y: 7.5}
	path, err := g.Route(start, end)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if path.Start() != start || path.End() != end {
		t.Errorf("endpoints = %v, %v, want %v, %v", path.Start(), path.End(), start, end)
	}
	if path.Length() <= start.Dist(end) {
		t.Errorf("detour length %.2f should exceed direct distance %.2f", path.Length(), start.Dist(end))
	}
	for _, p := range path {
		if g.IsObstacle(p) {
			t.Errorf("waypoint %v lies inside an obstacle", p)
		}
	}
}

func TestRouteDeterministic(t *testing.T) {
	build := func() *Grid {
		g := mustGrid(t, 20, 20)
		g.AddObstacle(8, 0, 4, 15, 1)
		return g
	}

	first, err := build().Route(board.Point{X: 2, Y: 7.5}, board.Point{X: 18, Y: 7.5})
	if err != nil {
		t.Fatalf("first Route: %v", err)
	}
	second, err := build().Route(board.Point{X: 2, Y: 7.5}, board.Point{X: 18, Y: 7.5})
	if err != nil {
		t.Fatalf("second Route: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different paths:\n%v\n%v", first, second)
	}
}

func TestRouteNoPathThroughWall(t *testing.T) {
	g := mustGrid(t, 20, 20)
	// Full-height wall splitting the board in two.
	g.AddObstacle(9, 0, 2, 20, 0)

	_, err := g.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10})
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("Route error = %v, want ErrNoPath", err)
	}
}

func TestRouteEndpointInsideObstacle(t *testing.T) {
	g := mustGrid(t, 20, 20)
	g.AddObstacle(9, 9, 2, 2, 0)

	tests := []struct {
		name       string
		start, end board.Point
	}{
		{"start blocked", board.Point{X: 10, Y: 10}, board.Point{X: 18, Y: 10}},
		{"end blocked", board.Point{X: 2, Y: 10}, board.Point{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Route(tt.start, tt.end); !errors.Is(err, ErrNoPath) {
				t.Fatalf("Route error = %v, want ErrNoPath", err)
			}
		})
	}
}

func TestRouteAvoidsClearanceWhenFreePathExists(t *testing.T) {
	g := mustGrid(t, 20, 20)
	// Committed trace across the middle; a later route between the same
	// endpoints is still found, it just pays a penalty crossing it.
	g.MarkTrace(board.Path{{X: 10, Y: 0}, {X: 10, Y: 20}}, 0.4)

	path, err := g.Route(board.Point{X: 2, Y: 10}, board.Point{X: 18, Y: 10})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if path.Start() != (board.Point{X: 2, Y: 10}) || path.End() != (board.Point{X: 18, Y: 10}) {
		t.Errorf("unexpected endpoints: %v, %v", path.Start(), path.End())
	}
}
