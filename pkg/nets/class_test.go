package nets

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Class
	}{
		{"VCC", Power},
		{"VDD_CORE", Power},
		{"+3V3", Power},
		{"GND", Ground},
		{"gnd_analog", Ground},
		{"VSS", Ground},
		{"SYS_CLK", Clock},
		{"OSC_IN", Clock},
		{"USB_DP", HighSpeed},
		{"HDMI_TX0", HighSpeed},
		{"DATA0", Signal},
		{"U1_TX_to_U2_RX", Signal},
		// Power keywords outrank high-speed ones.
		{"USB_VCC", Power},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRuleFor(t *testing.T) {
	power := RuleFor(Power)
	if power.TrackWidth != 0.5 || power.Priority != 1 {
		t.Errorf("power rule = %+v, want 0.5mm track at priority 1", power)
	}
	ground := RuleFor(Ground)
	if !ground.PourCopper {
		t.Error("ground rule should request a copper pour")
	}
	diff := RuleFor(Differential)
	if diff.CoupledSpacing != 0.15 || !diff.ImpedanceControl {
		t.Errorf("differential rule = %+v, want coupled spacing 0.15 with impedance control", diff)
	}
	if RuleFor(Class("bogus")) != RuleFor(Signal) {
		t.Error("unknown class should fall back to the signal rule")
	}
}
