package route

import (
	"container/heap"
	"errors"
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// ErrNoPath is returned by Route when no path exists between the endpoints,
// including when either endpoint lies inside an obstacle. Callers recover
// by falling back to a direct straight-line trace.
var ErrNoPath = errors.New("no path found")

// DefaultSimplifyTolerance is the maximum deviation, in millimeters,
// allowed between a simplified path and the raw cell-by-cell path.
const DefaultSimplifyTolerance = 0.5

// clearancePenalty doubles the move cost when stepping into a clearance
// cell, steering routes away from committed copper without forbidding it.
const clearancePenalty = 2.0

// 8-connected neighborhood: N, S, E, W, then the four diagonals.
var neighborSteps = [8]struct {
	dx, dy int
	cost   float64
}{
	{0, 1, 1}, {0, -1, 1}, {1, 0, 1}, {-1, 0, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// Route finds a path from start to end in board coordinates using A* over
// the 8-connected grid, then simplifies it with the default tolerance.
// The first and last waypoints are grid-aligned versions of start and end.
//
// The heuristic is Manhattan distance. For 8-connected movement with
// diagonal cost sqrt(2) this slightly overestimates and the search may not
// return the true shortest path; the approximation is kept deliberately
// because consumers depend on its output shape.
func (g *Grid) Route(start, end board.Point) (board.Path, error) {
	raw, err := g.search(g.toCell(start), g.toCell(end))
	if err != nil {
		return nil, err
	}
	return Simplify(raw, DefaultSimplifyTolerance), nil
}

// search runs A* from start to goal and returns the raw cell path in
// board coordinates.
func (g *Grid) search(start, goal cell) (board.Path, error) {
	if g.obstacles[start] || g.obstacles[goal] {
		return nil, ErrNoPath
	}

	gScore := map[cell]float64{start: 0}
	cameFrom := make(map[cell]cell)

	// Ties in f-score break by insertion order via a monotone counter,
	// keeping the search deterministic.
	counter := 0
	frontier := &frontierQueue{{f: g.heuristic(start, goal), seq: counter, pos: start}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(frontierNode).pos

		if current == goal {
			return g.reconstruct(cameFrom, start, goal), nil
		}

		for _, step := range neighborSteps {
			next := cell{current.x + step.dx, current.y + step.dy}
			if !g.inBounds(next) || g.obstacles[next] {
				continue
			}
			moveCost := step.cost
			if g.clearance[next] {
				moveCost *= clearancePenalty
			}

			tentative := gScore[current] + moveCost
			if prev, seen := gScore[next]; !seen || tentative < prev {
				gScore[next] = tentative
				cameFrom[next] = current
				counter++
				heap.Push(frontier, frontierNode{
					f:   tentative + g.heuristic(next, goal),
					seq: counter,
					pos: next,
				})
			}
		}
	}

	return nil, ErrNoPath
}

// heuristic is the Manhattan distance between two cells.
func (g *Grid) heuristic(a, b cell) float64 {
	return float64(abs(a.x-b.x) + abs(a.y-b.y))
}

// reconstruct walks the cameFrom chain from goal back to start and returns
// the path in board coordinates, start first.
func (g *Grid) reconstruct(cameFrom map[cell]cell, start, goal cell) board.Path {
	var path board.Path
	for c := goal; c != start; c = cameFrom[c] {
		path = append(path, g.toPoint(c))
	}
	path = append(path, g.toPoint(start))
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// frontierNode is an entry in the A* priority queue.
type frontierNode struct {
	f   float64
	seq int // insertion order, breaks f ties deterministically
	pos cell
}

// frontierQueue implements heap.Interface ordered by f-score then
// insertion order.
type frontierQueue []frontierNode

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontierQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierQueue) Push(x any) { *q = append(*q, x.(frontierNode)) }

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
