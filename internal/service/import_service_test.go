package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tempo/internal/importer"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Plan: importer.PlanImport{
			ShortID:   "APP24",
			Name:      "App 2024",
			StartDate: "2025-01-01",
			EndDate:   "2025-03-31",
			Product:   "Mobile",
		},
		Phases: []importer.PhaseImport{
			{Ref: "design", Title: "Design", StartDate: "2025-01-01", EndDate: "2025-01-31"},
			{Ref: "build", Title: "Build", StartDate: "2025-02-01", EndDate: "2025-03-15", Order: 1},
		},
		Features: []importer.FeatureImport{
			{Title: "Onboarding", PhaseRef: strPtr("design")},
			{Title: "Sync", PhaseRef: strPtr("build"), Status: "committed"},
			{Title: "Widgets"},
		},
	}
}

func TestImportService_ImportsEverything(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	buf, obs := logBuffer()
	svc := NewImportService(env.uow, obs)

	result, err := svc.ImportPlanFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, result.PhaseCount)
	assert.Equal(t, 3, result.FeatureCount)
	require.NotNil(t, result.Plan.ProductID)

	plan, err := env.plans.GetByShortID(ctx, "APP24")
	require.NoError(t, err)
	phases, err := env.phases.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, phases, 2)
	features, err := env.features.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, features, 3)

	// A second plan for the same product reuses it.
	second := validImportSchema()
	second.Plan.ShortID = "APP25"
	second.Plan.Product = "mobile"
	result2, err := svc.ImportPlanFromSchema(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, *result.Plan.ProductID, *result2.Plan.ProductID)

	products, err := env.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Contains(t, buf.String(), "use_case=import-plan")
}

func TestImportService_ValidationErrors(t *testing.T) {
	env := setupEnv(t)
	svc := NewImportService(env.uow)

	schema := validImportSchema()
	schema.Phases[1].EndDate = "2025-05-01"
	schema.Features[0].PhaseRef = strPtr("qa")

	_, err := svc.ImportPlanFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
}

func TestImportService_RejectsBadShortID(t *testing.T) {
	env := setupEnv(t)
	svc := NewImportService(env.uow)

	schema := validImportSchema()
	schema.Plan.ShortID = "release"
	_, err := svc.ImportPlanFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short ID")
}

func TestImportService_RollbackOnPhaseCreateFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	// ExecContext calls: #1 product, #2 plan, #3 phase "Design", #4 phase "Build".
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 4,
		Err:    fmt.Errorf("injected phase create failure"),
	}
	svc := NewImportService(failUoW)

	_, err := svc.ImportPlanFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected phase create failure")

	plans, err := env.plans.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, plans, "plan rolled back")
	products, err := env.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "product rolled back")
}

func TestImportService_ImportPlanFromFile(t *testing.T) {
	env := setupEnv(t)
	svc := NewImportService(env.uow)

	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "plan": {"short_id": "WEB-9", "name": "Web 9", "start_date": "2025-06-01", "end_date": "2025-06-30"},
  "phases": [{"ref": "p", "title": "Polish", "start_date": "2025-06-10", "end_date": "2025-06-20"}]
}`), 0o644))

	result, err := svc.ImportPlan(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "WEB-9", result.Plan.ShortID)
	assert.Nil(t, result.Plan.ProductID)

	_, err = svc.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
