package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// componentNameRegex matches reference designators like U1, R12, SW_3.
var componentNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateComponentName validates a reference designator. Names must start
// with a letter and use only letters, digits, underscores and dashes.
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDesign, "component name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidDesign, "component name too long (max 64 characters)")
	}
	if !componentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDesign, "invalid component name: %q", name)
	}
	return nil
}

// ValidateNetName validates a net name. Nets allow the characters common
// in electrical naming conventions: +3V3, CLK_P, D-, USB/DP.
func ValidateNetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidNet, "net name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidNet, "net name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidNet, "net name contains whitespace or control characters: %q", name)
		}
	}
	return nil
}

// ValidatePinRef validates a "component:pin" reference without resolving
// it against a design.
func ValidatePinRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidPinRef, "pin reference cannot be empty")
	}
	comp, pin, ok := strings.Cut(ref, ":")
	if !ok || comp == "" || pin == "" {
		return New(ErrCodeInvalidPinRef, "pin reference must be \"component:pin\": %q", ref)
	}
	if err := ValidateComponentName(comp); err != nil {
		return err
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path. It
// prevents path traversal out of the working tree and rejects unprintable
// characters.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidOption, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidOption, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidOption, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}
