package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Plan: PlanImport{
			ShortID:   "WEB-3",
			Name:      "Web 3.0",
			StartDate: "2025-01-01",
			EndDate:   "2025-03-31",
		},
		Phases: []PhaseImport{
			{Ref: "design", Title: "Design", StartDate: "2025-01-06", EndDate: "2025-01-31"},
		},
		Features: []FeatureImport{
			{Title: "Dark mode", PhaseRef: ptrStr("design")},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_MissingPlanFields(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	msgs := joinErrs(errs)
	assert.Contains(t, msgs, "plan.short_id is required")
	assert.Contains(t, msgs, "plan.name is required")
	assert.Contains(t, msgs, "plan.start_date is required")
	assert.Contains(t, msgs, "plan.end_date is required")
}

func TestValidateImportSchema_PlanEndBeforeStart(t *testing.T) {
	schema := validMinimalSchema()
	schema.Plan.EndDate = "2024-12-31"
	schema.Phases = nil
	schema.Features = nil

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must not be before start_date")
}

func TestValidateImportSchema_BadDateFormat(t *testing.T) {
	schema := validMinimalSchema()
	schema.Phases[0].StartDate = "06/01/2025"

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "phases[0].start_date: invalid date format")
}

func TestValidateImportSchema_PhaseOutsidePlan(t *testing.T) {
	schema := validMinimalSchema()
	schema.Phases[0].EndDate = "2025-04-02"

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "outside the plan window")
}

func TestValidateImportSchema_PhaseRefs(t *testing.T) {
	schema := validMinimalSchema()
	schema.Phases = append(schema.Phases, PhaseImport{Ref: "design", Title: "Again", StartDate: "2025-02-01", EndDate: "2025-02-02"})
	schema.Features = append(schema.Features, FeatureImport{Title: "Ghost", PhaseRef: ptrStr("qa")})

	msgs := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msgs, `duplicate ref "design"`)
	assert.Contains(t, msgs, `ref "qa" not found in phases`)
}

func TestValidateImportSchema_InvalidEnums(t *testing.T) {
	schema := validMinimalSchema()
	schema.Plan.Status = "frozen"
	schema.Phases[0].Color = "teal"
	schema.Features[0].Status = "maybe"

	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 3)
}

func TestDecodeImportSchema_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeImportSchema(strings.NewReader(`{"plan":{"name":"x"},"milestones":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func joinErrs(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
