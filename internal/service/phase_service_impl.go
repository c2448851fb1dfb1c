package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type phaseService struct {
	phases   repository.PhaseRepo
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPhaseService(phases repository.PhaseRepo, plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PhaseService {
	return &phaseService{
		phases:   phases,
		plans:    plans,
		uow:      uow,
		observer: combineObservers(observers),
	}
}

func (s *phaseService) Create(ctx context.Context, ph *domain.Phase) error {
	plan, err := s.plans.GetByID(ctx, ph.PlanID)
	if err != nil {
		return err
	}
	ph.Title = strings.TrimSpace(ph.Title)
	normalizeRange(&ph.StartDate, &ph.EndDate)
	if err := ph.Validate(plan); err != nil {
		return err
	}
	if ph.ID == "" {
		ph.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	ph.CreatedAt = now
	ph.UpdatedAt = now
	return s.phases.Create(ctx, ph)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error) {
	return s.phases.ListByPlan(ctx, planID)
}

func (s *phaseService) Update(ctx context.Context, ph *domain.Phase) error {
	plan, err := s.plans.GetByID(ctx, ph.PlanID)
	if err != nil {
		return err
	}
	ph.Title = strings.TrimSpace(ph.Title)
	normalizeRange(&ph.StartDate, &ph.EndDate)
	if err := ph.Validate(plan); err != nil {
		return err
	}
	ph.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, ph)
}

func (s *phaseService) Shift(ctx context.Context, id string, days int) (*domain.Phase, error) {
	return s.adjust(ctx, "shift-phase", id, days, func(ph *domain.Phase, plan *domain.Plan) {
		length := calendar.DaysBetween(ph.StartDate, ph.EndDate)
		start := calendar.AddDays(ph.StartDate, days)
		if start.Before(plan.StartDate) {
			start = plan.StartDate
		}
		end := calendar.AddDays(start, length)
		if end.After(plan.EndDate) {
			end = plan.EndDate
			start = calendar.AddDays(end, -length)
			if start.Before(plan.StartDate) {
				start = plan.StartDate
			}
		}
		ph.StartDate, ph.EndDate = start, end
	})
}

func (s *phaseService) Resize(ctx context.Context, id string, edge domain.ResizeEdge, days int) (*domain.Phase, error) {
	if edge != domain.EdgeStart && edge != domain.EdgeEnd {
		return nil, domain.Invalidf("invalid resize edge %q (use start or end)", edge)
	}
	return s.adjust(ctx, "resize-phase", id, days, func(ph *domain.Phase, plan *domain.Plan) {
		if edge == domain.EdgeStart {
			start := calendar.AddDays(ph.StartDate, days)
			if start.After(ph.EndDate) {
				start = ph.EndDate
			}
			if start.Before(plan.StartDate) {
				start = plan.StartDate
			}
			ph.StartDate = start
			return
		}
		end := calendar.AddDays(ph.EndDate, days)
		if end.Before(ph.StartDate) {
			end = ph.StartDate
		}
		if end.After(plan.EndDate) {
			end = plan.EndDate
		}
		ph.EndDate = end
	})
}

// adjust loads a phase and its plan in one transaction, applies fn and
// saves the result.
func (s *phaseService) adjust(ctx context.Context, name, id string, days int, fn func(ph *domain.Phase, plan *domain.Plan)) (result *domain.Phase, err error) {
	uc := startUseCase(s.observer, name, "")
	uc.set("phase", id)
	uc.set("days", days)
	defer func() { uc.finish(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		ph, err := txPhases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		uc.forPlan(ph.PlanID)
		plan, err := repository.NewSQLitePlanRepo(tx).GetByID(ctx, ph.PlanID)
		if err != nil {
			return err
		}
		if days != 0 {
			fn(ph, plan)
			if err := ph.Validate(plan); err != nil {
				return err
			}
			ph.UpdatedAt = time.Now().UTC()
			if err := txPhases.Update(ctx, ph); err != nil {
				return fmt.Errorf("saving phase %q: %w", ph.Title, err)
			}
		}
		result = ph
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.set("start", calendar.FormatDate(result.StartDate))
	uc.set("end", calendar.FormatDate(result.EndDate))
	return result, nil
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}
