package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/alexanderramin/tempo/internal/uistate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	productRepo := repository.NewSQLiteProductRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	featureRepo := repository.NewSQLiteFeatureRepo(database)
	uow := testutil.NewTestUoW(database)
	state := uistate.NewMemoryStore()

	return &App{
		Products: service.NewProductService(productRepo),
		Plans:    service.NewPlanService(planRepo, uow, state),
		Phases:   service.NewPhaseService(phaseRepo, planRepo, uow),
		Features: service.NewFeatureService(featureRepo, phaseRepo, planRepo),
		Timeline: service.NewTimelineService(planRepo, phaseRepo, featureRepo, state),
		Layout:   service.NewLayoutService(planRepo, state),
		Import:   service.NewImportService(uow),
		Store:    state,
		// Config left nil: commands fall back to config.Defaults().
	}
}

// seedPlan creates REL-1 (2025-01-01..2025-01-14) with two phases and a
// feature scheduled into the first one.
func seedPlan(t *testing.T, app *App) (plan *domain.Plan, design, build *domain.Phase) {
	t.Helper()
	ctx := context.Background()

	plan = testutil.NewTestPlan("January Release",
		testutil.WithShortID("REL-1"),
		testutil.WithRange(testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 14)))
	require.NoError(t, app.Plans.Create(ctx, plan))

	design = testutil.NewTestPhase(plan.ID, "Design", testutil.Date(2025, 1, 1), testutil.Date(2025, 1, 5),
		testutil.WithPhaseColor("#fabd2f"), testutil.WithPhaseOrder(0))
	require.NoError(t, app.Phases.Create(ctx, design))

	build = testutil.NewTestPhase(plan.ID, "Build", testutil.Date(2025, 1, 3), testutil.Date(2025, 1, 12),
		testutil.WithPhaseOrder(1))
	require.NoError(t, app.Phases.Create(ctx, build))

	f := testutil.NewTestFeature(plan.ID, "Dark mode", testutil.WithPhase(design.ID))
	require.NoError(t, app.Features.Create(ctx, f))

	return plan, design, build
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- plan ---

func TestPlanAdd_WithFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "add", "--id", "web-3", "--name", "Web 3", "--start", "2025-02-01", "--end", "2025-02-28")
	require.NoError(t, err)
	assert.Contains(t, out, "Created plan Web 3 [WEB-3]")
	assert.Contains(t, out, "2025-02-01 → 2025-02-28")

	plans, err := app.Plans.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "WEB-3", plans[0].ShortID)
	assert.Equal(t, domain.PlanActive, plans[0].Status)
}

func TestPlanAdd_MissingFlagsNonInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add", "--name", "Web 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "id", "start", "end" not set`)
}

func TestPlanAdd_BadDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add", "--id", "WEB-3", "--name", "Web", "--start", "02/01/2025", "--end", "2025-02-28")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestPlanAdd_EndBeforeStart(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add", "--id", "WEB-3", "--name", "Web", "--start", "2025-03-01", "--end", "2025-02-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestPlanAdd_WithProduct(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "product", "add", "Storefront")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "add", "--id", "SF-1", "--name", "Storefront 1",
		"--start", "2025-01-01", "--end", "2025-01-31", "--product", "storefront", "--status", "draft")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SF-1")
	assert.Contains(t, out, "Storefront")
	assert.Contains(t, out, "Draft")
}

func TestPlanList_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans found.")
}

func TestPlanInspect(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	out, err := executeCmd(t, app, "plan", "inspect", "rel-1")
	require.NoError(t, err)
	assert.Contains(t, out, "January Release")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "Dark mode")
}

func TestPlanInspect_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "inspect", "NOPE-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanUpdate(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)

	out, err := executeCmd(t, app, "plan", "update", "REL-1", "--name", "Renamed", "--end", "2025-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated plan Renamed [REL-1]")

	got, err := app.Plans.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "2025-01-20", got.EndDate.Format("2006-01-02"))
}

func TestPlanUpdate_CannotCutPhases(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "plan", "update", "REL-1", "--end", "2025-01-08")
	require.Error(t, err)
}

func TestPlanStatus(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)

	out, err := executeCmd(t, app, "plan", "status", "REL-1", "Shipped")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan REL-1 is now shipped")

	got, err := app.Plans.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanShipped, got.Status)
}

func TestPlanStatus_Invalid(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "plan", "status", "REL-1", "paused")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestPlanRemove_ForgetsLayout(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)
	require.NoError(t, app.Store.SetLeftPercent(plan.ID, 30))

	out, err := executeCmd(t, app, "plan", "remove", "REL-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed plan REL-1")

	_, err = app.Plans.GetByID(context.Background(), plan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, uistate.DefaultLeftPercent, app.Store.LeftPercent(plan.ID))
}

func TestPlanImport(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "plan": {"short_id": "IMP-1", "name": "Imported", "start_date": "2025-04-01", "end_date": "2025-04-30"},
  "phases": [
    {"ref": "a", "title": "Alpha", "start_date": "2025-04-01", "end_date": "2025-04-10", "order": 0},
    {"ref": "b", "title": "Beta", "start_date": "2025-04-11", "end_date": "2025-04-30", "order": 1}
  ],
  "features": [
    {"title": "Login", "phase_ref": "a"},
    {"title": "Later"}
  ]
}`), 0o644))

	out, err := executeCmd(t, app, "plan", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported plan Imported [IMP-1]: 2 phases, 2 features")

	out, err = executeCmd(t, app, "feature", "list", "IMP-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Login")
	assert.Contains(t, out, "unscheduled")
}

// --- phase ---

func TestPhaseAdd(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	out, err := executeCmd(t, app, "phase", "add", "--plan", "REL-1", "--title", "Launch",
		"--start", "2025-01-13", "--end", "2025-01-14", "--color", "#fb4934")
	require.NoError(t, err)
	assert.Contains(t, out, "Added phase Launch 2025-01-13 → 2025-01-14")

	out, err = executeCmd(t, app, "phase", "list", "REL-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
}

func TestPhaseAdd_OutsidePlan(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "phase", "add", "--plan", "REL-1", "--title", "Late",
		"--start", "2025-01-10", "--end", "2025-02-10")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestPhaseAdd_RequiresFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "phase", "add", "--plan", "REL-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestPhaseShift_ByPrefix(t *testing.T) {
	app := testApp(t)
	_, design, _ := seedPlan(t, app)

	out, err := executeCmd(t, app, "phase", "shift", design.ID[:8], "--by", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved phase Design to 2025-01-03 → 2025-01-07")
}

func TestPhaseShift_ClampsToPlan(t *testing.T) {
	app := testApp(t)
	_, _, build := seedPlan(t, app)

	out, err := executeCmd(t, app, "phase", "shift", build.ID, "--by", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-05 → 2025-01-14")
}

func TestPhaseResize(t *testing.T) {
	app := testApp(t)
	_, design, _ := seedPlan(t, app)

	out, err := executeCmd(t, app, "phase", "resize", design.ID, "--by", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Resized phase Design to 2025-01-01 → 2025-01-08")

	out, err = executeCmd(t, app, "phase", "resize", design.ID, "--edge", "start", "--by", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-03 → 2025-01-08")
}

func TestPhaseResize_BadEdge(t *testing.T) {
	app := testApp(t)
	_, design, _ := seedPlan(t, app)

	_, err := executeCmd(t, app, "phase", "resize", design.ID, "--edge", "middle", "--by", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `must be "start" or "end"`)
}

func TestPhaseRemove_UnschedulesFeatures(t *testing.T) {
	app := testApp(t)
	plan, design, _ := seedPlan(t, app)

	_, err := executeCmd(t, app, "phase", "remove", design.ID)
	require.NoError(t, err)

	features, err := app.Features.ListByPlan(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Nil(t, features[0].PhaseID)
}

// --- feature ---

func TestFeatureAddAndSchedule(t *testing.T) {
	app := testApp(t)
	plan, _, build := seedPlan(t, app)
	ctx := context.Background()

	out, err := executeCmd(t, app, "feature", "add", "--plan", "REL-1", "--title", "Search")
	require.NoError(t, err)
	assert.Contains(t, out, "Added feature Search")

	features, err := app.Features.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	var search *domain.Feature
	for _, f := range features {
		if f.Title == "Search" {
			search = f
		}
	}
	require.NotNil(t, search)
	assert.Equal(t, domain.FeatureProposed, search.Status)
	assert.Nil(t, search.PhaseID)

	out, err = executeCmd(t, app, "feature", "schedule", search.ID[:8], "--phase", build.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Scheduled feature")

	got, err := app.Features.GetByID(ctx, search.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PhaseID)
	assert.Equal(t, build.ID, *got.PhaseID)

	out, err = executeCmd(t, app, "feature", "schedule", search.ID, "--unschedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Unscheduled feature")

	got, err = app.Features.GetByID(ctx, search.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PhaseID)
}

func TestFeatureSchedule_NeedsTarget(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "feature", "schedule", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --phase or --unschedule")
}

func TestFeatureStatus(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)
	features, err := app.Features.ListByPlan(context.Background(), plan.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "feature", "status", features[0].ID, "in_progress")
	require.NoError(t, err)
	assert.Contains(t, out, "in progress")
}

func TestFeatureList_ByPhase(t *testing.T) {
	app := testApp(t)
	_, design, build := seedPlan(t, app)

	out, err := executeCmd(t, app, "feature", "list", "REL-1", "--phase", design.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Dark mode")

	out, err = executeCmd(t, app, "feature", "list", "REL-1", "--phase", build.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "No features found.")
}

// --- product ---

func TestProductLifecycle(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")

	out, err = executeCmd(t, app, "product", "add", "Storefront")
	require.NoError(t, err)
	assert.Contains(t, out, "Created product Storefront")

	out, err = executeCmd(t, app, "product", "rename", "storefront", "Shop")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed product to Shop")

	out, err = executeCmd(t, app, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Shop")

	_, err = executeCmd(t, app, "product", "remove", "Shop")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "product", "remove", "Shop")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- timeline ---

func TestTimelineCmd(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	out, err := executeCmd(t, app, "timeline", "REL-1", "--today", "2025-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "January Release")
	assert.Contains(t, out, "2025-01-01 → 2025-01-14 (14d)")
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "▲ today")
	assert.Contains(t, out, "PHASE")
}

func TestTimelineCmd_WindowWithoutLegend(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	out, err := executeCmd(t, app, "timeline", "REL-1", "--from", "2025-01-10", "--days", "3",
		"--legend=false", "--today", "2025-01-03")
	require.NoError(t, err)
	assert.NotContains(t, out, "PHASE")
	assert.NotContains(t, out, "▲ today")
}

func TestTimelineCmd_RejectsZeroCells(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "timeline", "REL-1", "--cells", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--cells must be at least 1")
}

// --- layout ---

func TestLayoutGetSet(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	out, err := executeCmd(t, app, "layout", "get", "REL-1")
	require.NoError(t, err)
	assert.Contains(t, out, "left 50%  right 50%  expanded")

	out, err = executeCmd(t, app, "layout", "set", "REL-1", "--left", "30", "--expanded=false")
	require.NoError(t, err)
	assert.Contains(t, out, "left 30%  right 70%  compact")

	out, err = executeCmd(t, app, "layout", "set", "REL-1", "--left", "140")
	require.NoError(t, err)
	assert.Contains(t, out, "left 100%  right 0%")
}

func TestLayoutSet_RejectsNaN(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)
	require.NoError(t, app.Store.SetLeftPercent(plan.ID, 30))

	_, err := executeCmd(t, app, "layout", "set", "REL-1", "--left", "NaN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left percent must be a number")
	assert.Equal(t, 30.0, app.Store.LeftPercent(plan.ID))
}

func TestLayoutSet_NothingToChange(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "layout", "set", "REL-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestLayoutNudgeAndToggle(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)

	out, err := executeCmd(t, app, "layout", "nudge", "REL-1", "--by", "-10")
	require.NoError(t, err)
	assert.Contains(t, out, "left 40%")

	out, err = executeCmd(t, app, "layout", "toggle", "REL-1")
	require.NoError(t, err)
	assert.Contains(t, out, "left 0%  right 100%")
	assert.Equal(t, 0.0, app.Store.LeftPercent(plan.ID))

	// The width saved by a collapse lives only as long as the controller,
	// so a fresh toggle restores the default.
	out, err = executeCmd(t, app, "layout", "toggle", "REL-1")
	require.NoError(t, err)
	assert.Contains(t, out, "left 50%")
}

// --- serve ---

func TestServeCmd_StopsWithContext(t *testing.T) {
	app := testApp(t)

	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"serve", "--listen", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, root.ExecuteContext(ctx))
	assert.Contains(t, buf.String(), "Serving tempo API on http://127.0.0.1:")
}

// --- tui ---

func TestTUICmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app)

	_, err := executeCmd(t, app, "tui", "REL-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `use "tempo timeline REL-1" instead`)
}

// --- resolve ---

func TestResolvePlanID(t *testing.T) {
	app := testApp(t)
	plan, _, _ := seedPlan(t, app)
	ctx := context.Background()

	id, err := resolvePlanID(ctx, app, "rel-1")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, id)

	id, err = resolvePlanID(ctx, app, plan.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, plan.ID, id)

	_, err = resolvePlanID(ctx, app, "")
	assert.Error(t, err)
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}
	idOf := func(s string) string { return s }

	got, err := matchID(ids, idOf, "xyz789", "plan")
	require.NoError(t, err)
	assert.Equal(t, "xyz789", got)

	got, err = matchID(ids, idOf, "abc", "plan")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = matchID(ids, idOf, "ab", "plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous (2 matches)")

	_, err = matchID(ids, idOf, "q", "phase")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `phase not found: "q"`)
}
