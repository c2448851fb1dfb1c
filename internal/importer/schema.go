package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ImportSchema is the top-level JSON structure for plan import.
type ImportSchema struct {
	Plan     PlanImport      `json:"plan"`
	Phases   []PhaseImport   `json:"phases"`
	Features []FeatureImport `json:"features,omitempty"`
}

// PlanImport defines the plan-level fields in the import file.
type PlanImport struct {
	ShortID   string `json:"short_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status,omitempty"`
	Product   string `json:"product,omitempty"`
}

// PhaseImport defines one phase. Ref is local to the file and lets
// features point at their phase before IDs exist.
type PhaseImport struct {
	Ref       string `json:"ref"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Color     string `json:"color,omitempty"`
	Order     int    `json:"order"`
}

// FeatureImport defines a feature, optionally scheduled into a phase.
type FeatureImport struct {
	Title    string  `json:"title"`
	PhaseRef *string `json:"phase_ref,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// LoadImportSchema reads and parses a plan import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeImportSchema(f)
}

// DecodeImportSchema parses an import document from r.
func DecodeImportSchema(r io.Reader) (*ImportSchema, error) {
	var schema ImportSchema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
