package board

import (
	"fmt"
	"math"
	"strings"

	pcberrors "github.com/pcbforge/pcbforge/pkg/errors"
)

// =============================================================================
// Design - Engine Input
// =============================================================================

// Spec describes the physical board: outer dimensions and manufacturing
// defaults applied to nets that carry no class-specific rule.
type Spec struct {
	Width      float64 `json:"width" bson:"width"`             // mm
	Height     float64 `json:"height" bson:"height"`           // mm
	TrackWidth float64 `json:"track_width" bson:"track_width"` // default track width, mm
	Clearance  float64 `json:"clearance" bson:"clearance"`     // default clearance, mm
	MinDrill   float64 `json:"min_drill" bson:"min_drill"`     // minimum drill diameter, mm
	Layers     int     `json:"layers,omitempty" bson:"layers,omitempty"`
}

// Component is a placed part. Position and Rotation are mutated in place by
// the placement optimizer and read-only afterward.
type Component struct {
	Name      string  `json:"name" bson:"name"`
	Footprint string  `json:"footprint,omitempty" bson:"footprint,omitempty"`
	Position  Point   `json:"position" bson:"position"`
	Rotation  float64 `json:"rotation,omitempty" bson:"rotation,omitempty"` // degrees, one of 0/90/180/270 after optimization
	Width     float64 `json:"width,omitempty" bson:"width,omitempty"`       // footprint extent, mm
	Height    float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// PinRef identifies one endpoint of a connection as "component:pin".
type PinRef struct {
	Component string `json:"component" bson:"component"`
	Pin       string `json:"pin" bson:"pin"`
}

// String returns the "component:pin" form.
func (r PinRef) String() string { return r.Component + ":" + r.Pin }

// ParsePinRef parses a "component:pin" reference.
func ParsePinRef(s string) (PinRef, error) {
	comp, pin, ok := strings.Cut(s, ":")
	if !ok || comp == "" || pin == "" {
		return PinRef{}, fmt.Errorf("invalid pin reference %q (want \"component:pin\")", s)
	}
	return PinRef{Component: comp, Pin: pin}, nil
}

// Connection is one required electrical link between two pins. Net and
// Class may be empty; the net manager synthesizes a net name and classifies
// it from keywords when absent.
type Connection struct {
	From  PinRef `json:"from" bson:"from"`
	To    PinRef `json:"to" bson:"to"`
	Net   string `json:"net,omitempty" bson:"net,omitempty"`
	Class string `json:"class,omitempty" bson:"class,omitempty"` // upstream hint only
}

// Drill is a mounting hole.
type Drill struct {
	Position Point   `json:"position" bson:"position"`
	Diameter float64 `json:"diameter" bson:"diameter"` // mm
}

// Design is the engine's input document.
type Design struct {
	Name        string       `json:"name,omitempty" bson:"name,omitempty"`
	Board       Spec         `json:"board" bson:"board"`
	Components  []Component  `json:"components" bson:"components"`
	Connections []Connection `json:"connections" bson:"connections"`
	Drills      []Drill      `json:"drills,omitempty" bson:"drills,omitempty"`
}

// Component returns the named component, or nil if it does not exist.
func (d *Design) Component(name string) *Component {
	for i := range d.Components {
		if d.Components[i].Name == name {
			return &d.Components[i]
		}
	}
	return nil
}

// Validate checks the design preconditions: positive board dimensions
// (after inference), well-formed component and net names, and referential
// integrity of every connection. A connection naming an unknown component
// is a hard input error.
func (d *Design) Validate() error {
	if d.Board.Width <= 0 || d.Board.Height <= 0 {
		return fmt.Errorf("board dimensions must be positive (got %.1fx%.1f)", d.Board.Width, d.Board.Height)
	}
	known := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		if err := pcberrors.ValidateComponentName(c.Name); err != nil {
			return err
		}
		if known[c.Name] {
			return fmt.Errorf("duplicate component name %q", c.Name)
		}
		known[c.Name] = true
	}
	for _, conn := range d.Connections {
		if conn.Net != "" {
			if err := pcberrors.ValidateNetName(conn.Net); err != nil {
				return err
			}
		}
		if !known[conn.From.Component] {
			return fmt.Errorf("connection %s -> %s references unknown component %q",
				conn.From, conn.To, conn.From.Component)
		}
		if !known[conn.To.Component] {
			return fmt.Errorf("connection %s -> %s references unknown component %q",
				conn.From, conn.To, conn.To.Component)
		}
	}
	return nil
}

// InferBounds fills in missing board dimensions from component extents:
// min/max positions with a 10mm margin on each side, floored at 30x20mm.
// Components are shifted so the populated area starts at (5,5). It returns
// an error when no dimensions are given and there are no components to
// infer them from.
func (d *Design) InferBounds() error {
	if d.Board.Width > 0 && d.Board.Height > 0 {
		return nil
	}
	if len(d.Components) == 0 {
		return fmt.Errorf("board dimensions missing and no components to infer them from")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range d.Components {
		minX = math.Min(minX, c.Position.X)
		minY = math.Min(minY, c.Position.Y)
		maxX = math.Max(maxX, c.Position.X)
		maxY = math.Max(maxY, c.Position.Y)
	}

	d.Board.Width = math.Max((maxX-minX)+20, 30)
	d.Board.Height = math.Max((maxY-minY)+20, 20)

	// Shift everything so the populated area starts at (5,5).
	dx := 5 - minX
	dy := 5 - minY
	for i := range d.Components {
		d.Components[i].Position.X += dx
		d.Components[i].Position.Y += dy
	}
	for i := range d.Drills {
		d.Drills[i].Position.X += dx
		d.Drills[i].Position.Y += dy
	}
	return nil
}

// =============================================================================
// Layout - Engine Output
// =============================================================================

// Track is one straight copper segment realized on the board.
type Track struct {
	Net   string  `json:"net" bson:"net"`
	Width float64 `json:"width" bson:"width"` // mm
	Layer int     `json:"layer" bson:"layer"` // 0 = front copper
	Start Point   `json:"start" bson:"start"`
	End   Point   `json:"end" bson:"end"`
}

// Pad is a component pin's copper landing, used by the DRC checker.
type Pad struct {
	Component string  `json:"component" bson:"component"`
	Name      string  `json:"name" bson:"name"`
	Position  Point   `json:"position" bson:"position"`
	Size      float64 `json:"size" bson:"size"`                       // copper diameter, mm
	Drill     float64 `json:"drill,omitempty" bson:"drill,omitempty"` // hole diameter, 0 for SMD
	Net       string  `json:"net,omitempty" bson:"net,omitempty"`
}

// Route is one routed connection in the finished layout.
type Route struct {
	Connection Connection `json:"connection" bson:"connection"`
	Net        string     `json:"net" bson:"net"`
	Class      string     `json:"class" bson:"class"`
	TrackWidth float64    `json:"track_width" bson:"track_width"`
	Layer      int        `json:"layer" bson:"layer"`
	Path       Path       `json:"path" bson:"path"`
	Fallback   bool       `json:"fallback,omitempty" bson:"fallback,omitempty"` // direct line after routing failure
}

// Layout is the engine's output artifact consumed by downstream sinks.
type Layout struct {
	RunID      string      `json:"run_id" bson:"run_id"`
	Design     string      `json:"design,omitempty" bson:"design,omitempty"`
	Board      Spec        `json:"board" bson:"board"`
	Components []Component `json:"components" bson:"components"`
	Routes     []Route     `json:"routes" bson:"routes"`
	Tracks     []Track     `json:"tracks" bson:"tracks"`
	Pads       []Pad       `json:"pads,omitempty" bson:"pads,omitempty"`
	Drills     []Drill     `json:"drills,omitempty" bson:"drills,omitempty"`
	HasOutline bool        `json:"has_outline" bson:"has_outline"`
}
