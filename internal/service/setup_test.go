package service

import (
	"bytes"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/alexanderramin/tempo/internal/uistate"
)

type testEnv struct {
	db       *sql.DB
	products repository.ProductRepo
	plans    repository.PlanRepo
	phases   repository.PhaseRepo
	features repository.FeatureRepo
	uow      db.UnitOfWork
	state    *uistate.MemoryStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		products: repository.NewSQLiteProductRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		phases:   repository.NewSQLitePhaseRepo(database),
		features: repository.NewSQLiteFeatureRepo(database),
		uow:      testutil.NewTestUoW(database),
		state:    uistate.NewMemoryStore(),
	}
}

func strPtr(s string) *string { return &s }

func logBuffer() (*bytes.Buffer, UseCaseObserver) {
	var buf bytes.Buffer
	return &buf, NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))
}

func monthOf(m int) time.Month { return time.Month(m) }
