package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pcbforge/pcbforge/pkg/board"
	pcberrors "github.com/pcbforge/pcbforge/pkg/errors"
)

// loadDesign reads, validates, and bounds-infers a design document from a
// JSON file. Errors carry machine-readable codes for the CLI's exit paths.
func loadDesign(path string) (*board.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pcberrors.New(pcberrors.ErrCodeFileNotFound, "design file %q not found", path)
		}
		return nil, fmt.Errorf("reading design: %w", err)
	}
	defer f.Close()

	d, err := board.ReadDesign(f)
	if err != nil {
		return nil, pcberrors.Wrap(pcberrors.ErrCodeInvalidDesign, err, "parsing %s", path)
	}
	return d, nil
}

// loadLayout reads a finished layout from a JSON file.
func loadLayout(path string) (*board.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pcberrors.New(pcberrors.ErrCodeFileNotFound, "layout file %q not found", path)
		}
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	var l board.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &l, nil
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	if err := pcberrors.ValidateOutputPath(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// cacheDir returns the pcbforge result cache directory, creating nothing.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pcbforge"), nil
}
