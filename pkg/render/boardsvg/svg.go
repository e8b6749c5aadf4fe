// Package boardsvg draws finished layouts as SVG board previews.
package boardsvg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/nets"
)

// DefaultScale is the rendering scale in pixels per millimeter.
const DefaultScale = 10.0

// classColors maps net classes to copper colors. The palette matches the
// ratsnest renderer so the two views read the same.
var classColors = map[string]string{
	string(nets.Power):        "firebrick",
	string(nets.Ground):       "dimgray",
	string(nets.Signal):       "steelblue",
	string(nets.Clock):        "darkorange",
	string(nets.HighSpeed):    "purple",
	string(nets.Differential): "darkgreen",
	string(nets.Analog):       "teal",
}

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	scale  float64
	labels bool
}

// WithScale sets the pixels-per-millimeter scale.
func WithScale(scale float64) Option {
	return func(r *renderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithLabels draws component names on their bodies.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// Render draws the layout as a standalone SVG document: board outline,
// component bodies, routed copper colored by net class, pads, and
// mounting holes. Fallback routes are drawn dashed so unroutable
// connections are visible at a glance.
func Render(layout *board.Layout, opts ...Option) []byte {
	r := renderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	w := layout.Board.Width * r.scale
	h := layout.Board.Height * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.renderOutline(&buf, w, h)
	r.renderComponents(&buf, layout)
	r.renderRoutes(&buf, layout)
	r.renderPads(&buf, layout)
	r.renderDrills(&buf, layout)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteFile renders the layout and writes it to path.
func WriteFile(path string, layout *board.Layout, opts ...Option) error {
	return os.WriteFile(path, Render(layout, opts...), 0644)
}

func (r *renderer) renderOutline(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="board" x="0" y="0" width="%.1f" height="%.1f" fill="#0a3d0a" stroke="goldenrod" stroke-width="%.1f"/>`+"\n",
		w, h, 0.2*r.scale)
}

func (r *renderer) renderComponents(buf *bytes.Buffer, layout *board.Layout) {
	for _, c := range layout.Components {
		cw, ch := c.Width, c.Height
		if cw <= 0 {
			cw = 5
		}
		if ch <= 0 {
			ch = 5
		}
		if rot := int(c.Rotation) % 180; rot == 90 {
			cw, ch = ch, cw
		}
		x := (c.Position.X - cw/2) * r.scale
		y := (c.Position.Y - ch/2) * r.scale
		fmt.Fprintf(buf, `  <rect class="component" id="comp-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#d9d9d9" stroke="black" stroke-width="1" opacity="0.9"/>`+"\n",
			c.Name, x, y, cw*r.scale, ch*r.scale)
		if r.labels {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-family="monospace">%s</text>`+"\n",
				c.Position.X*r.scale, c.Position.Y*r.scale, 1.5*r.scale, c.Name)
		}
	}
}

func (r *renderer) renderRoutes(buf *bytes.Buffer, layout *board.Layout) {
	for _, rt := range layout.Routes {
		if len(rt.Path) < 2 {
			continue
		}
		color := classColors[rt.Class]
		if color == "" {
			color = classColors[string(nets.Signal)]
		}
		var pts bytes.Buffer
		for i, p := range rt.Path {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.1f,%.1f", p.X*r.scale, p.Y*r.scale)
		}
		dash := ""
		if rt.Fallback {
			dash = ` stroke-dasharray="6,4"`
		}
		fmt.Fprintf(buf, `  <polyline class="route" data-net="%s" points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round" stroke-linejoin="round"%s/>`+"\n",
			rt.Net, pts.String(), color, rt.TrackWidth*r.scale, dash)
	}
}

func (r *renderer) renderPads(buf *bytes.Buffer, layout *board.Layout) {
	for _, p := range layout.Pads {
		fmt.Fprintf(buf, `  <circle class="pad" cx="%.1f" cy="%.1f" r="%.1f" fill="goldenrod" stroke="black" stroke-width="0.5"/>`+"\n",
			p.Position.X*r.scale, p.Position.Y*r.scale, p.Size/2*r.scale)
		if p.Drill > 0 {
			fmt.Fprintf(buf, `  <circle class="drill" cx="%.1f" cy="%.1f" r="%.1f" fill="#0a3d0a"/>`+"\n",
				p.Position.X*r.scale, p.Position.Y*r.scale, p.Drill/2*r.scale)
		}
	}
}

func (r *renderer) renderDrills(buf *bytes.Buffer, layout *board.Layout) {
	for _, d := range layout.Drills {
		fmt.Fprintf(buf, `  <circle class="mounting-hole" cx="%.1f" cy="%.1f" r="%.1f" fill="white" stroke="goldenrod" stroke-width="1"/>`+"\n",
			d.Position.X*r.scale, d.Position.Y*r.scale, d.Diameter/2*r.scale)
	}
}
