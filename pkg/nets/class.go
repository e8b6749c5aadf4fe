package nets

import "strings"

// Class is a net's routing classification.
type Class string

const (
	Power        Class = "power"
	Ground       Class = "ground"
	Signal       Class = "signal"
	Clock        Class = "clock"
	HighSpeed    Class = "high_speed"
	Differential Class = "differential"
	Analog       Class = "analog"
)

// Rule is the routing profile attached to a net class. Dimensions are in
// millimeters; lower Priority routes earlier.
type Rule struct {
	TrackWidth       float64 `json:"track_width" bson:"track_width"`
	Clearance        float64 `json:"clearance" bson:"clearance"`
	ViaSize          float64 `json:"via_size" bson:"via_size"`
	Priority         int     `json:"priority" bson:"priority"`
	CoupledSpacing   float64 `json:"coupled_spacing,omitempty" bson:"coupled_spacing,omitempty"`
	LengthMatching   bool    `json:"length_matching,omitempty" bson:"length_matching,omitempty"`
	ImpedanceControl bool    `json:"impedance_control,omitempty" bson:"impedance_control,omitempty"`
	PourCopper       bool    `json:"pour_copper,omitempty" bson:"pour_copper,omitempty"`
	SeparateGround   bool    `json:"separate_ground,omitempty" bson:"separate_ground,omitempty"`
}

// ruleTemplates carries the fixed per-class routing profiles. Power and
// ground route first and widest; differential pairs are the narrowest and
// carry a coupled spacing.
var ruleTemplates = map[Class]Rule{
	Power: {
		TrackWidth: 0.5,
		Clearance:  0.3,
		Priority:   1,
		ViaSize:    0.8,
	},
	Ground: {
		TrackWidth: 0.5,
		Clearance:  0.3,
		Priority:   1,
		ViaSize:    0.8,
		PourCopper: true,
	},
	Signal: {
		TrackWidth: 0.25,
		Clearance:  0.2,
		Priority:   5,
		ViaSize:    0.6,
	},
	Clock: {
		TrackWidth:     0.25,
		Clearance:      0.3,
		Priority:       2,
		ViaSize:        0.6,
		LengthMatching: true,
	},
	HighSpeed: {
		TrackWidth:       0.2,
		Clearance:        0.3,
		Priority:         2,
		ViaSize:          0.5,
		ImpedanceControl: true,
		LengthMatching:   true,
	},
	Differential: {
		TrackWidth:       0.15,
		Clearance:        0.3,
		Priority:         2,
		ViaSize:          0.5,
		CoupledSpacing:   0.15,
		ImpedanceControl: true,
	},
	Analog: {
		TrackWidth:     0.25,
		Clearance:      0.4,
		Priority:       3,
		ViaSize:        0.6,
		SeparateGround: true,
	},
}

// RuleFor returns the routing rule template for a class. Unknown classes
// fall back to the signal profile.
func RuleFor(c Class) Rule {
	if r, ok := ruleTemplates[c]; ok {
		return r
	}
	return ruleTemplates[Signal]
}

// classKeywords is checked in order; the first class whose keyword appears
// in the upper-cased net name wins.
var classKeywords = []struct {
	class    Class
	keywords []string
}{
	{Power, []string{"VCC", "VDD", "POWER", "+5V", "+3V3", "+12V"}},
	{Ground, []string{"GND", "GROUND", "VSS"}},
	{Clock, []string{"CLK", "CLOCK", "OSC"}},
	{HighSpeed, []string{"USB", "HDMI", "PCIE", "SATA", "ETH"}},
}

// Classify derives a net's class from keywords in its name. Names that
// match nothing are plain signals.
func Classify(name string) Class {
	upper := strings.ToUpper(name)
	for _, entry := range classKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(upper, kw) {
				return entry.class
			}
		}
	}
	return Signal
}
