package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Date returns local midnight of the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Plan options
type PlanOption func(*domain.Plan)

func WithRange(start, end time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithShortID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ShortID = id
	}
}

func WithProduct(productID string) PlanOption {
	return func(p *domain.Plan) {
		p.ProductID = &productID
	}
}

// NewTestPlan returns a Q1 2025 plan with a unique short ID.
func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Plan{
		ID:        uuid.New().String(),
		ShortID:   fmt.Sprintf("REL-%d", testShortIDCounter.Add(1)),
		Name:      name,
		StartDate: Date(2025, 1, 1),
		EndDate:   Date(2025, 3, 31),
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseColor(c string) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Color = c
	}
}

func WithPhaseOrder(i int) PhaseOption {
	return func(ph *domain.Phase) {
		ph.OrderIndex = i
	}
}

func NewTestPhase(planID, title string, start, end time.Time, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC().Truncate(time.Second)
	ph := &domain.Phase{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}

// Feature options
type FeatureOption func(*domain.Feature)

func WithPhase(phaseID string) FeatureOption {
	return func(f *domain.Feature) {
		f.PhaseID = &phaseID
	}
}

func WithFeatureStatus(s domain.FeatureStatus) FeatureOption {
	return func(f *domain.Feature) {
		f.Status = s
	}
}

func NewTestFeature(planID, title string, opts ...FeatureOption) *domain.Feature {
	now := time.Now().UTC().Truncate(time.Second)
	f := &domain.Feature{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Title:     title,
		Status:    domain.FeatureProposed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func NewTestProduct(name string) *domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
