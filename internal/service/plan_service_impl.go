package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/uistate"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	state    uistate.Store
	observer UseCaseObserver
}

// NewPlanService wires plan use cases. state may be nil; when it
// implements Forget, a deleted plan's layout is dropped too.
func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, state uistate.Store, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		state:    state,
		observer: combineObservers(observers),
	}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if err := validatePlan(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	return s.plans.Create(ctx, p)
}

func validatePlan(p *domain.Plan) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Invalidf("plan name is required")
	}
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.Status != "" && !domain.ValidPlanStatuses[string(p.Status)] {
		return domain.Invalidf("invalid plan status %q", p.Status)
	}
	normalizeRange(&p.StartDate, &p.EndDate)
	return p.ValidateRange()
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error) {
	return s.plans.GetByShortID(ctx, shortID)
}

func (s *planService) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	return s.plans.List(ctx, includeArchived)
}

func (s *planService) ListByProduct(ctx context.Context, productID string) ([]*domain.Plan, error) {
	return s.plans.ListByProduct(ctx, productID)
}

// Update saves plan fields. A new date window must still contain every
// existing phase.
func (s *planService) Update(ctx context.Context, p *domain.Plan) (err error) {
	uc := startUseCase(s.observer, "update-plan", p.ID)
	defer func() { uc.finish(ctx, err) }()

	if err = validatePlan(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		phases, err := repository.NewSQLitePhaseRepo(tx).ListByPlan(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("loading phases: %w", err)
		}
		for _, ph := range phases {
			if err := ph.Validate(p); err != nil {
				return err
			}
		}
		uc.set("phase_count", len(phases))
		return repository.NewSQLitePlanRepo(tx).Update(ctx, p)
	})
}

func (s *planService) SetStatus(ctx context.Context, id string, status domain.PlanStatus) error {
	if !domain.ValidPlanStatuses[string(status)] {
		return domain.Invalidf("invalid plan status %q", status)
	}
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

// Delete removes a plan with its phases and features in one transaction.
func (s *planService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-plan", id)
	defer func() { uc.finish(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFeatures := repository.NewSQLiteFeatureRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		features, err := txFeatures.ListByPlan(ctx, id)
		if err != nil {
			return fmt.Errorf("loading features: %w", err)
		}
		for _, f := range features {
			if err := txFeatures.Delete(ctx, f.ID); err != nil {
				return fmt.Errorf("deleting feature %q: %w", f.Title, err)
			}
		}
		phases, err := txPhases.ListByPlan(ctx, id)
		if err != nil {
			return fmt.Errorf("loading phases: %w", err)
		}
		for _, ph := range phases {
			if err := txPhases.Delete(ctx, ph.ID); err != nil {
				return fmt.Errorf("deleting phase %q: %w", ph.Title, err)
			}
		}
		uc.set("feature_count", len(features))
		uc.set("phase_count", len(phases))
		return repository.NewSQLitePlanRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if f, ok := s.state.(interface{ Forget(string) error }); ok {
		if ferr := f.Forget(id); ferr != nil {
			uc.set("forget_error", ferr.Error())
		}
	}
	return nil
}
