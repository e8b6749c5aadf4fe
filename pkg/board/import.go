package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	pcberrors "github.com/pcbforge/pcbforge/pkg/errors"
)

// MarshalJSON encodes the reference in its wire form, "component:pin".
func (r PinRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a "component:pin" string.
func (r *PinRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if err := pcberrors.ValidatePinRef(s); err != nil {
		return err
	}
	ref, err := ParsePinRef(s)
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// ReadDesign decodes a JSON design document from r, infers missing board
// bounds from component extents, and validates the result. The returned
// design is ready to feed into the pipeline.
func ReadDesign(r io.Reader) (*Design, error) {
	var d Design
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode design: %w", err)
	}
	if err := d.InferBounds(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadDesignFile reads a design from a JSON file at path.
// This is a convenience wrapper around [ReadDesign] for file-based input.
func ReadDesignFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadDesign(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return d, nil
}
