package service

import (
	"context"

	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/importer"
)

type ProductService interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	ListByProduct(ctx context.Context, productID string) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	SetStatus(ctx context.Context, id string, status domain.PlanStatus) error
	Delete(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	// Shift moves a phase by days, keeping its length, stopping at the
	// plan's edges.
	Shift(ctx context.Context, id string, days int) (*domain.Phase, error)
	// Resize moves one edge of a phase by days. The phase never shrinks
	// below one day or leaves its plan.
	Resize(ctx context.Context, id string, edge domain.ResizeEdge, days int) (*domain.Phase, error)
	Delete(ctx context.Context, id string) error
}

type FeatureService interface {
	Create(ctx context.Context, f *domain.Feature) error
	GetByID(ctx context.Context, id string) (*domain.Feature, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Feature, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Feature, error)
	Update(ctx context.Context, f *domain.Feature) error
	Schedule(ctx context.Context, id string, phaseID *string) error
	SetStatus(ctx context.Context, id string, status domain.FeatureStatus) error
	Delete(ctx context.Context, id string) error
}

type TimelineService interface {
	Build(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineResponse, error)
}

type LayoutService interface {
	Get(ctx context.Context, planID string) (contract.LayoutView, error)
	Update(ctx context.Context, planID string, upd contract.LayoutUpdate) (contract.LayoutView, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plan         *domain.Plan
	PhaseCount   int
	FeatureCount int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
