package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalPlan(t *testing.T) {
	gen, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	assert.NotEmpty(t, gen.Plan.ID)
	assert.Equal(t, "WEB-3", gen.Plan.ShortID)
	assert.Equal(t, domain.PlanActive, gen.Plan.Status)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), gen.Plan.StartDate)
	assert.Empty(t, gen.Product)

	require.Len(t, gen.Phases, 1)
	assert.Equal(t, gen.Plan.ID, gen.Phases[0].PlanID)
	assert.Equal(t, "Design", gen.Phases[0].Title)

	require.Len(t, gen.Features, 1)
	require.NotNil(t, gen.Features[0].PhaseID)
	assert.Equal(t, gen.Phases[0].ID, *gen.Features[0].PhaseID)
	assert.Equal(t, domain.FeatureProposed, gen.Features[0].Status)
}

func TestConvert_UppercasesShortIDAndKeepsStatus(t *testing.T) {
	schema := validMinimalSchema()
	schema.Plan.ShortID = "web-4"
	schema.Plan.Status = "draft"
	schema.Plan.Product = "  Web  "
	schema.Features = []FeatureImport{{Title: "Unscheduled", Status: "committed"}}

	gen, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, "WEB-4", gen.Plan.ShortID)
	assert.Equal(t, domain.PlanDraft, gen.Plan.Status)
	assert.Equal(t, "Web", gen.Product)
	assert.Nil(t, gen.Features[0].PhaseID)
	assert.Equal(t, domain.FeatureCommitted, gen.Features[0].Status)
}

func TestConvert_UnknownPhaseRef(t *testing.T) {
	schema := validMinimalSchema()
	schema.Features[0].PhaseRef = ptrStr("nope")

	_, err := Convert(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `phase_ref "nope" not found`)
}

func TestLoadImportSchema_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	doc := `{
  "plan": {"short_id": "APP24", "name": "App 24", "start_date": "2025-01-01", "end_date": "2025-02-28"},
  "phases": [{"ref": "b", "title": "Build", "start_date": "2025-01-01", "end_date": "2025-02-14", "color": "#fabd2f"}]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "APP24", schema.Plan.ShortID)
	require.Len(t, schema.Phases, 1)
	assert.Equal(t, "#fabd2f", schema.Phases[0].Color)
	assert.Empty(t, ValidateImportSchema(schema))
}
