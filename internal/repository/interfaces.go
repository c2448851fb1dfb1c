package repository

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	ListByProduct(ctx context.Context, productID string) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type FeatureRepo interface {
	Create(ctx context.Context, f *domain.Feature) error
	GetByID(ctx context.Context, id string) (*domain.Feature, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Feature, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Feature, error)
	Update(ctx context.Context, f *domain.Feature) error
	Delete(ctx context.Context, id string) error
}
