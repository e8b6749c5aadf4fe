package errors

import "testing"

func TestValidateComponentName(t *testing.T) {
	valid := []string{"U1", "R12", "SW_3", "led-driver"}
	for _, name := range valid {
		if err := ValidateComponentName(name); err != nil {
			t.Errorf("ValidateComponentName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "1U", "U 1", "U1;drop"}
	for _, name := range invalid {
		if err := ValidateComponentName(name); err == nil {
			t.Errorf("ValidateComponentName(%q) accepted", name)
		}
	}
}

func TestValidateNetName(t *testing.T) {
	valid := []string{"VCC", "+3V3", "CLK_P", "D-", "USB/DP"}
	for _, name := range valid {
		if err := ValidateNetName(name); err != nil {
			t.Errorf("ValidateNetName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "NET WITH SPACE", "bad\x00net"}
	for _, name := range invalid {
		if err := ValidateNetName(name); err == nil {
			t.Errorf("ValidateNetName(%q) accepted", name)
		}
	}
}

func TestValidatePinRef(t *testing.T) {
	valid := []string{"U1:1", "SW_3:A", "R12:anode"}
	for _, ref := range valid {
		if err := ValidatePinRef(ref); err != nil {
			t.Errorf("ValidatePinRef(%q) = %v, want nil", ref, err)
		}
	}

	invalid := []string{"", "U1", "U1:", ":1"}
	for _, ref := range invalid {
		if err := ValidatePinRef(ref); err == nil {
			t.Errorf("ValidatePinRef(%q) accepted", ref)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	valid := []string{"layout.json", "out/board.svg", "reports/drc_report.json"}
	for _, path := range valid {
		if err := ValidateOutputPath(path); err != nil {
			t.Errorf("ValidateOutputPath(%q) = %v, want nil", path, err)
		}
	}

	invalid := []string{"", "../escape.json", "bad\x00path"}
	for _, path := range invalid {
		if err := ValidateOutputPath(path); err == nil {
			t.Errorf("ValidateOutputPath(%q) accepted", path)
		}
	}
}
