package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Spring release",
		testutil.WithRange(testutil.Date(2025, 1, 30), testutil.Date(2025, 4, 15)))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, "Spring release", fetched.Name)
	assert.Equal(t, domain.PlanActive, fetched.Status)
	assert.Equal(t, testutil.Date(2025, 1, 30), fetched.StartDate)
	assert.Equal(t, testutil.Date(2025, 4, 15), fetched.EndDate)
	assert.Nil(t, fetched.ProductID)
	assert.True(t, plan.CreatedAt.Equal(fetched.CreatedAt))
}

func TestPlanRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Web", testutil.WithShortID("WEB-3"))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByShortID(ctx, "web-3")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
}

func TestPlanRepo_ShortIDUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan("A", testutil.WithShortID("APP1"))))
	err := repo.Create(ctx, testutil.NewTestPlan("B", testutil.WithShortID("app1")))
	require.Error(t, err)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "plan not found")
}

func TestPlanRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	late := testutil.NewTestPlan("Late", testutil.WithRange(testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 30)))
	early := testutil.NewTestPlan("Early", testutil.WithRange(testutil.Date(2025, 2, 1), testutil.Date(2025, 2, 28)))
	old := testutil.NewTestPlan("Old", testutil.WithPlanStatus(domain.PlanArchived))
	for _, p := range []*domain.Plan{late, early, old} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Name, "ordered by start date")

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPlanRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Draft")
	require.NoError(t, repo.Create(ctx, plan))

	plan.Name = "Renamed"
	plan.EndDate = testutil.Date(2025, 5, 31)
	plan.Status = domain.PlanShipped
	require.NoError(t, repo.Update(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.Equal(t, domain.PlanShipped, fetched.Status)
	assert.Equal(t, testutil.Date(2025, 5, 31), fetched.EndDate)

	require.NoError(t, repo.Delete(ctx, plan.ID))
	assert.ErrorIs(t, repo.Delete(ctx, plan.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, plan), domain.ErrNotFound)
}

func TestPlanRepo_ListByProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	products := NewSQLiteProductRepo(db)
	plans := NewSQLitePlanRepo(db)

	prod := testutil.NewTestProduct("Mobile")
	require.NoError(t, products.Create(ctx, prod))
	require.NoError(t, plans.Create(ctx, testutil.NewTestPlan("iOS", testutil.WithProduct(prod.ID))))
	require.NoError(t, plans.Create(ctx, testutil.NewTestPlan("Other")))

	list, err := plans.ListByProduct(ctx, prod.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ProductID)
	assert.Equal(t, prod.ID, *list[0].ProductID)

	// Deleting the product detaches its plans.
	require.NoError(t, products.Delete(ctx, prod.ID))
	fetched, err := plans.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ProductID)
}
