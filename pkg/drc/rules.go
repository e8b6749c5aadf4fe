package drc

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Rules are the manufacturing limits a layout must satisfy. All values
// are millimeters.
type Rules struct {
	MinTrackWidth   float64 `toml:"min_track_width" json:"min_track_width"`
	MaxTrackWidth   float64 `toml:"max_track_width" json:"max_track_width"`
	MinClearance    float64 `toml:"min_clearance" json:"min_clearance"`
	MinDrill        float64 `toml:"min_drill" json:"min_drill"`
	MinAnnularRing  float64 `toml:"min_annular_ring" json:"min_annular_ring"`
	MinHoleToHole   float64 `toml:"min_hole_to_hole" json:"min_hole_to_hole"`
	MinSilkWidth    float64 `toml:"min_silk_width" json:"min_silk_width"`
	MinSilkTextSize float64 `toml:"min_silk_text_size" json:"min_silk_text_size"`
}

// DefaultRules returns standard fab-house manufacturing limits
// (6 mil track and ring, 8 mil clearance, 12 mil drill).
func DefaultRules() Rules {
	return Rules{
		MinTrackWidth:   0.15,
		MaxTrackWidth:   5.0,
		MinClearance:    0.2,
		MinDrill:        0.3,
		MinAnnularRing:  0.15,
		MinHoleToHole:   0.5,
		MinSilkWidth:    0.15,
		MinSilkTextSize: 0.8,
	}
}

// LoadRules reads a TOML rules file. Keys absent from the file keep their
// default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return Rules{}, fmt.Errorf("loading design rules from %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("design rules in %s: %w", path, err)
	}
	return rules, nil
}

// Validate rejects non-positive limits and inverted track width bounds.
func (r Rules) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"min_track_width", r.MinTrackWidth},
		{"max_track_width", r.MaxTrackWidth},
		{"min_clearance", r.MinClearance},
		{"min_drill", r.MinDrill},
		{"min_annular_ring", r.MinAnnularRing},
		{"min_hole_to_hole", r.MinHoleToHole},
		{"min_silk_width", r.MinSilkWidth},
		{"min_silk_text_size", r.MinSilkTextSize},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive (got %v)", c.name, c.value)
		}
	}
	if r.MaxTrackWidth <= r.MinTrackWidth {
		return fmt.Errorf("max_track_width %v must exceed min_track_width %v", r.MaxTrackWidth, r.MinTrackWidth)
	}
	return nil
}
