package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type featureService struct {
	features repository.FeatureRepo
	phases   repository.PhaseRepo
	plans    repository.PlanRepo
	observer UseCaseObserver
}

func NewFeatureService(
	features repository.FeatureRepo,
	phases repository.PhaseRepo,
	plans repository.PlanRepo,
	observers ...UseCaseObserver,
) FeatureService {
	return &featureService{
		features: features,
		phases:   phases,
		plans:    plans,
		observer: combineObservers(observers),
	}
}

func (s *featureService) Create(ctx context.Context, f *domain.Feature) (err error) {
	uc := startUseCase(s.observer, "create-feature", f.PlanID)
	defer func() { uc.finish(ctx, err) }()

	if _, err = s.plans.GetByID(ctx, f.PlanID); err != nil {
		return err
	}
	if err = s.validate(ctx, f); err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = domain.FeatureProposed
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	uc.set("feature", f.ID)
	return s.features.Create(ctx, f)
}

func (s *featureService) validate(ctx context.Context, f *domain.Feature) error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return domain.Invalidf("feature title is required")
	}
	if f.Status != "" && !domain.ValidFeatureStatuses[string(f.Status)] {
		return domain.Invalidf("invalid feature status %q", f.Status)
	}
	if f.PhaseID != nil {
		ph, err := s.phases.GetByID(ctx, *f.PhaseID)
		if err != nil {
			return err
		}
		if ph.PlanID != f.PlanID {
			return domain.Invalidf("phase %q belongs to a different plan", ph.Title)
		}
	}
	return nil
}

func (s *featureService) GetByID(ctx context.Context, id string) (*domain.Feature, error) {
	return s.features.GetByID(ctx, id)
}

func (s *featureService) ListByPlan(ctx context.Context, planID string) ([]*domain.Feature, error) {
	return s.features.ListByPlan(ctx, planID)
}

func (s *featureService) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Feature, error) {
	return s.features.ListByPhase(ctx, phaseID)
}

func (s *featureService) Update(ctx context.Context, f *domain.Feature) error {
	if err := s.validate(ctx, f); err != nil {
		return err
	}
	f.UpdatedAt = time.Now().UTC()
	return s.features.Update(ctx, f)
}

// Schedule moves a feature into a phase, or out of any phase when
// phaseID is nil.
func (s *featureService) Schedule(ctx context.Context, id string, phaseID *string) (err error) {
	uc := startUseCase(s.observer, "schedule-feature", "")
	uc.set("feature", id)
	if phaseID != nil {
		uc.set("phase", *phaseID)
	}
	defer func() { uc.finish(ctx, err) }()

	f, err := s.features.GetByID(ctx, id)
	if err != nil {
		return err
	}
	uc.forPlan(f.PlanID)
	f.PhaseID = phaseID
	return s.Update(ctx, f)
}

func (s *featureService) SetStatus(ctx context.Context, id string, status domain.FeatureStatus) (err error) {
	uc := startUseCase(s.observer, "set-feature-status", "")
	uc.set("feature", id)
	uc.set("status", string(status))
	defer func() { uc.finish(ctx, err) }()

	f, err := s.features.GetByID(ctx, id)
	if err != nil {
		return err
	}
	uc.forPlan(f.PlanID)
	f.Status = status
	return s.Update(ctx, f)
}

func (s *featureService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-feature", "")
	uc.set("feature", id)
	defer func() { uc.finish(ctx, err) }()

	return s.features.Delete(ctx, id)
}
