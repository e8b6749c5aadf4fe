package drc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// Code identifies a violation category.
type Code string

const (
	CodeTrackWidthTooSmall  Code = "TRACK_WIDTH_TOO_SMALL"
	CodeTrackWidthTooLarge  Code = "TRACK_WIDTH_TOO_LARGE"
	CodeClearanceViolation  Code = "CLEARANCE_VIOLATION"
	CodeDrillTooSmall       Code = "DRILL_TOO_SMALL"
	CodeAnnularRingTooSmall Code = "ANNULAR_RING_TOO_SMALL"
	CodeNoBoardOutline      Code = "NO_BOARD_OUTLINE"
	CodeUnconnectedNet      Code = "UNCONNECTED_NET"
)

// Violation is one design rule breach. Position is nil for board-level
// findings like a missing outline.
type Violation struct {
	Code     Code         `json:"code" bson:"code"`
	Message  string       `json:"message" bson:"message"`
	Position *board.Point `json:"position,omitempty" bson:"position,omitempty"`
}

// checker accumulates violations over one layout. The layout is never
// mutated.
type checker struct {
	layout     *board.Layout
	rules      Rules
	violations []Violation
}

// Check runs every rule against the layout and returns the full report.
// All checks always run; an early failure never masks later findings.
func Check(layout *board.Layout, rules Rules) *Report {
	c := &checker{layout: layout, rules: rules}

	c.checkTrackWidths()
	c.checkClearances()
	c.checkDrillSizes()
	c.checkAnnularRings()
	c.checkBoardOutline()
	c.checkUnconnectedNets()

	return c.report()
}

func (c *checker) add(code Code, message string, pos *board.Point) {
	c.violations = append(c.violations, Violation{Code: code, Message: message, Position: pos})
}

func (c *checker) checkTrackWidths() {
	for _, t := range c.layout.Tracks {
		pos := t.Start
		if t.Width < c.rules.MinTrackWidth {
			c.add(CodeTrackWidthTooSmall,
				fmt.Sprintf("track width %.3fmm < minimum %.3fmm on net %s", t.Width, c.rules.MinTrackWidth, t.Net),
				&pos)
		}
		if t.Width > c.rules.MaxTrackWidth {
			c.add(CodeTrackWidthTooLarge,
				fmt.Sprintf("track width %.3fmm > maximum %.3fmm on net %s", t.Width, c.rules.MaxTrackWidth, t.Net),
				&pos)
		}
	}
}

// copperItem is a track endpoint or pad center participating in the
// pairwise clearance scan.
type copperItem struct {
	pos board.Point
	net string
}

// checkClearances runs the pairwise scan over all copper items. Distances
// are center-to-center, which understates the true edge clearance for wide
// items; a geometric check would need real outlines. Same-net pairs are
// exempt.
func (c *checker) checkClearances() {
	var items []copperItem
	for _, t := range c.layout.Tracks {
		items = append(items, copperItem{pos: t.Start, net: t.Net})
	}
	for _, p := range c.layout.Pads {
		items = append(items, copperItem{pos: p.Position, net: p.Net})
	}

	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].net != "" && items[i].net == items[j].net {
				continue
			}
			if d := items[i].pos.Dist(items[j].pos); d < c.rules.MinClearance {
				pos := items[i].pos
				c.add(CodeClearanceViolation,
					fmt.Sprintf("clearance %.3fmm < minimum %.3fmm", d, c.rules.MinClearance),
					&pos)
			}
		}
	}
}

func (c *checker) checkDrillSizes() {
	for _, p := range c.layout.Pads {
		if p.Drill > 0 && p.Drill < c.rules.MinDrill {
			pos := p.Position
			c.add(CodeDrillTooSmall,
				fmt.Sprintf("drill %.3fmm < minimum %.3fmm at %s:%s", p.Drill, c.rules.MinDrill, p.Component, p.Name),
				&pos)
		}
	}
	for _, d := range c.layout.Drills {
		if d.Diameter < c.rules.MinDrill {
			pos := d.Position
			c.add(CodeDrillTooSmall,
				fmt.Sprintf("mounting hole %.3fmm < minimum %.3fmm", d.Diameter, c.rules.MinDrill),
				&pos)
		}
	}
}

func (c *checker) checkAnnularRings() {
	for _, p := range c.layout.Pads {
		if p.Drill <= 0 {
			continue
		}
		ring := (p.Size - p.Drill) / 2
		if ring < c.rules.MinAnnularRing {
			pos := p.Position
			c.add(CodeAnnularRingTooSmall,
				fmt.Sprintf("annular ring %.3fmm < minimum %.3fmm at %s:%s", ring, c.rules.MinAnnularRing, p.Component, p.Name),
				&pos)
		}
	}
}

func (c *checker) checkBoardOutline() {
	if !c.layout.HasOutline {
		c.add(CodeNoBoardOutline, "no board outline defined", nil)
	}
}

// checkUnconnectedNets flags nets that land on two or more pads but have
// no copper realizing them.
func (c *checker) checkUnconnectedNets() {
	padsByNet := make(map[string][]board.Pad)
	for _, p := range c.layout.Pads {
		if p.Net != "" {
			padsByNet[p.Net] = append(padsByNet[p.Net], p)
		}
	}
	trackedNets := make(map[string]bool)
	for _, t := range c.layout.Tracks {
		trackedNets[t.Net] = true
	}

	nets := make([]string, 0, len(padsByNet))
	for net := range padsByNet {
		nets = append(nets, net)
	}
	sort.Strings(nets)

	for _, net := range nets {
		pads := padsByNet[net]
		if len(pads) < 2 || trackedNets[net] {
			continue
		}
		refs := make([]string, len(pads))
		for i, p := range pads {
			refs[i] = p.Component + ":" + p.Name
		}
		pos := pads[0].Position
		c.add(CodeUnconnectedNet,
			fmt.Sprintf("net %s has no tracks connecting pads %s", net, strings.Join(refs, ", ")),
			&pos)
	}
}
