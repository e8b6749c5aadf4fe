package route

import (
	"fmt"
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// DefaultResolution is the grid cell size in millimeters. Smaller cells
// route more accurately but cost more memory and search time.
const DefaultResolution = 0.1

// cell is a grid coordinate (column, row).
type cell struct {
	x, y int
}

// Grid is a discretized obstacle map over the board area. Cells are either
// free, obstacle (impassable), or clearance (passable at doubled cost).
// A cell requested as both obstacle and clearance stays an obstacle.
//
// Grid is mutated in place by AddObstacle and MarkTrace and is not safe for
// concurrent use.
type Grid struct {
	width      float64 // board width, mm
	height     float64 // board height, mm
	resolution float64 // mm per cell
	cols       int
	rows       int

	obstacles map[cell]bool
	clearance map[cell]bool
}

// NewGrid creates a grid over a width x height millimeter board at the
// given resolution. All three values must be positive.
func NewGrid(width, height, resolution float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board size must be positive (got %.2fx%.2f)", width, height)
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("grid resolution must be positive (got %.3f)", resolution)
	}
	return &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		cols:       int(math.Ceil(width / resolution)),
		rows:       int(math.Ceil(height / resolution)),
		obstacles:  make(map[cell]bool),
		clearance:  make(map[cell]bool),
	}, nil
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// toCell converts board coordinates (mm) to a grid cell.
func (g *Grid) toCell(p board.Point) cell {
	return cell{x: int(p.X / g.resolution), y: int(p.Y / g.resolution)}
}

// toPoint converts a grid cell back to board coordinates (mm).
func (g *Grid) toPoint(c cell) board.Point {
	return board.Point{X: float64(c.x) * g.resolution, Y: float64(c.y) * g.resolution}
}

// inBounds reports whether c lies on the grid.
func (g *Grid) inBounds(c cell) bool {
	return c.x >= 0 && c.x < g.cols && c.y >= 0 && c.y < g.rows
}

// IsObstacle reports whether the cell containing p is impassable.
func (g *Grid) IsObstacle(p board.Point) bool {
	return g.obstacles[g.toCell(p)]
}

// IsClearance reports whether the cell containing p is cost-penalized.
func (g *Grid) IsClearance(p board.Point) bool {
	return g.clearance[g.toCell(p)]
}

// AddObstacle marks a rectangular region (a component footprint) at x,y
// with the given extent as impassable, surrounded by a clearance band of
// penalized cells. Everything is clipped to board bounds.
func (g *Grid) AddObstacle(x, y, width, height, clearance float64) {
	origin := g.toCell(board.Point{X: x, Y: y})
	gw := int(width / g.resolution)
	gh := int(height / g.resolution)
	gc := int(clearance / g.resolution)

	for cx := origin.x - gc; cx < origin.x+gw+gc; cx++ {
		for cy := origin.y - gc; cy < origin.y+gh+gc; cy++ {
			c := cell{cx, cy}
			if !g.inBounds(c) {
				continue
			}
			inBand := gc > 0 && (cx < origin.x || cx >= origin.x+gw || cy < origin.y || cy >= origin.y+gh)
			if inBand {
				g.clearance[c] = true
			} else {
				g.obstacles[c] = true
			}
		}
	}
}

// MarkTrace commits an accepted path: every cell touched by the path, plus
// a disk of radius width/2 around it, becomes clearance-penalized so later
// routes avoid the copper. Segments are rasterized with Bresenham's line
// algorithm. This must run before the next connection is routed.
func (g *Grid) MarkTrace(path board.Path, width float64) {
	if len(path) < 2 {
		return
	}
	radius := int((width / 2) / g.resolution)

	for i := 0; i < len(path)-1; i++ {
		g.rasterizeSegment(g.toCell(path[i]), g.toCell(path[i+1]), radius)
	}
}

// rasterizeSegment walks the line from a to b cell by cell, marking a disk
// of the given radius around each visited cell.
func (g *Grid) rasterizeSegment(a, b cell, radius int) {
	dx := abs(b.x - a.x)
	dy := abs(b.y - a.y)
	sx := 1
	if a.x > b.x {
		sx = -1
	}
	sy := 1
	if a.y > b.y {
		sy = -1
	}
	err := dx - dy

	x, y := a.x, a.y
	for {
		g.markDisk(cell{x, y}, radius)
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// markDisk marks all in-bounds cells within radius of center as clearance.
// Obstacle cells keep precedence; they are already impassable.
func (g *Grid) markDisk(center cell, radius int) {
	for ox := -radius; ox <= radius; ox++ {
		for oy := -radius; oy <= radius; oy++ {
			if ox*ox+oy*oy > radius*radius {
				continue
			}
			c := cell{center.x + ox, center.y + oy}
			if g.inBounds(c) {
				g.clearance[c] = true
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
