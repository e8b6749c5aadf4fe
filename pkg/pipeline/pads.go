package pipeline

import (
	"math"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// Pad geometry defaults, applied when the design gives no footprint detail.
const (
	defaultFootprint = 5.0  // body extent per side, mm
	padPitch         = 1.27 // vertical spacing between pins on one side, mm
	padStandoff      = 1.0  // distance from body edge to pad center, mm
	defaultPadSize   = 1.7  // copper diameter, mm
	defaultPadDrill  = 1.0  // hole diameter, mm
)

// footprintExtent returns the component's routing footprint, substituting
// the default body size for missing dimensions and swapping the axes for
// 90/270 degree rotations.
func footprintExtent(c *board.Component) (w, h float64) {
	w, h = c.Width, c.Height
	if w <= 0 {
		w = defaultFootprint
	}
	if h <= 0 {
		h = defaultFootprint
	}
	rot := math.Mod(c.Rotation, 180)
	if rot < 0 {
		rot += 180
	}
	if rot == 90 {
		w, h = h, w
	}
	return w, h
}

// padTable synthesizes pad positions for every pin a design's connections
// reference. Designs carry no footprint pin maps, so pins are laid out
// deterministically: alternating right/left body edges in first-seen order,
// stepping down one pitch per row. Pads sit one standoff outside the body
// so they land beyond the obstacle rectangle and stay reachable.
type padTable struct {
	pads  map[string]*board.Pad // keyed by "component:pin"
	order []string
	slots map[string]int // next pin slot per component
}

func newPadTable() *padTable {
	return &padTable{
		pads:  make(map[string]*board.Pad),
		slots: make(map[string]int),
	}
}

// resolve returns the pad for a pin, creating it on first reference.
func (t *padTable) resolve(c *board.Component, pin string) *board.Pad {
	key := c.Name + ":" + pin
	if p, ok := t.pads[key]; ok {
		return p
	}

	slot := t.slots[c.Name]
	t.slots[c.Name] = slot + 1

	w, h := footprintExtent(c)
	x := c.Position.X + w/2 + padStandoff
	if slot%2 == 1 {
		x = c.Position.X - w/2 - padStandoff
	}
	y := c.Position.Y - h/2 + float64(slot/2)*padPitch

	p := &board.Pad{
		Component: c.Name,
		Name:      pin,
		Position:  board.Point{X: x, Y: y},
		Size:      defaultPadSize,
		Drill:     defaultPadDrill,
	}
	t.pads[key] = p
	t.order = append(t.order, key)
	return p
}

// list returns all pads in creation order.
func (t *padTable) list() []board.Pad {
	out := make([]board.Pad, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.pads[key])
	}
	return out
}
