package route

import (
	"fmt"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// MultiLayerGrid routes across multiple copper layers, each with its own
// independent obstacle grid. There is no cost model tying layers together:
// a route lives entirely on one layer, and layers are simply tried in turn.
type MultiLayerGrid struct {
	layers []*Grid
}

// NewMultiLayerGrid creates numLayers independent grids over the same
// board area.
func NewMultiLayerGrid(width, height, resolution float64, numLayers int) (*MultiLayerGrid, error) {
	if numLayers < 1 {
		return nil, fmt.Errorf("layer count must be at least 1 (got %d)", numLayers)
	}
	layers := make([]*Grid, numLayers)
	for i := range layers {
		g, err := NewGrid(width, height, resolution)
		if err != nil {
			return nil, err
		}
		layers[i] = g
	}
	return &MultiLayerGrid{layers: layers}, nil
}

// NumLayers returns the number of copper layers.
func (m *MultiLayerGrid) NumLayers() int { return len(m.layers) }

// Layer returns the grid for the given layer index.
func (m *MultiLayerGrid) Layer(i int) *Grid { return m.layers[i] }

// AddObstacle marks a footprint on every layer. Through-hole parts block
// all copper layers.
func (m *MultiLayerGrid) AddObstacle(x, y, width, height, clearance float64) {
	for _, g := range m.layers {
		g.AddObstacle(x, y, width, height, clearance)
	}
}

// Route tries the preferred layer first, then each remaining layer in
// order. It returns the path and the layer it was found on. When no layer
// has a path it returns ErrNoPath; the caller is expected to fall back to
// a direct straight-line trace. Via-based multi-layer routing is not
// implemented.
func (m *MultiLayerGrid) Route(start, end board.Point, preferred int) (board.Path, int, error) {
	if preferred < 0 || preferred >= len(m.layers) {
		preferred = 0
	}
	if path, err := m.layers[preferred].Route(start, end); err == nil {
		return path, preferred, nil
	}
	for i, g := range m.layers {
		if i == preferred {
			continue
		}
		if path, err := g.Route(start, end); err == nil {
			return path, i, nil
		}
	}
	return nil, -1, ErrNoPath
}

// MarkTrace commits a path on the given layer only.
func (m *MultiLayerGrid) MarkTrace(layer int, path board.Path, width float64) {
	if layer >= 0 && layer < len(m.layers) {
		m.layers[layer].MarkTrace(path, width)
	}
}
