package drc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Report is the outcome of a full DRC run.
type Report struct {
	RunID      string       `json:"run_id,omitempty" bson:"run_id,omitempty"`
	Total      int          `json:"total_violations" bson:"total_violations"`
	ByCode     map[Code]int `json:"violations_by_type" bson:"violations_by_type"`
	Violations []Violation  `json:"violations" bson:"violations"`
	Passed     bool         `json:"passed" bson:"passed"`
}

func (c *checker) report() *Report {
	r := &Report{
		Total:      len(c.violations),
		ByCode:     make(map[Code]int),
		Violations: c.violations,
		Passed:     len(c.violations) == 0,
	}
	for _, v := range c.violations {
		r.ByCode[v.Code]++
	}
	return r
}

// Write serializes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding drc report: %w", err)
	}
	return nil
}

// WriteFile writes the report to a JSON file.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating drc report file: %w", err)
	}
	defer f.Close()
	return r.Write(f)
}
