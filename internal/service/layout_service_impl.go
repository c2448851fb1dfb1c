package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/splitpane"
	"github.com/alexanderramin/tempo/internal/uistate"
)

type layoutService struct {
	plans    repository.PlanRepo
	state    uistate.Store
	observer UseCaseObserver
}

func NewLayoutService(plans repository.PlanRepo, state uistate.Store, observers ...UseCaseObserver) LayoutService {
	return &layoutService{plans: plans, state: state, observer: combineObservers(observers)}
}

func (s *layoutService) Get(ctx context.Context, planID string) (contract.LayoutView, error) {
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		return contract.LayoutView{}, err
	}
	return layoutView(s.state, planID), nil
}

// Update saves the fields set in upd. The left percent is clamped to
// [0, 100]; NaN is rejected.
func (s *layoutService) Update(ctx context.Context, planID string, upd contract.LayoutUpdate) (view contract.LayoutView, err error) {
	uc := startUseCase(s.observer, "update-layout", planID)
	defer func() { uc.finish(ctx, err) }()

	if upd.LeftPercent != nil && math.IsNaN(*upd.LeftPercent) {
		return contract.LayoutView{}, domain.Invalidf("left percent must be a number")
	}
	if _, err = s.plans.GetByID(ctx, planID); err != nil {
		return contract.LayoutView{}, err
	}
	if upd.LeftPercent != nil {
		pct := splitpane.Clamp(*upd.LeftPercent)
		uc.set("left_percent", pct)
		if err = s.state.SetLeftPercent(planID, pct); err != nil {
			return contract.LayoutView{}, fmt.Errorf("saving left percent: %w", err)
		}
	}
	if upd.Expanded != nil {
		uc.set("expanded", *upd.Expanded)
		if err = s.state.SetExpanded(planID, *upd.Expanded); err != nil {
			return contract.LayoutView{}, fmt.Errorf("saving expanded state: %w", err)
		}
	}
	return layoutView(s.state, planID), nil
}

func layoutView(state uistate.Store, planID string) contract.LayoutView {
	if state == nil {
		return contract.LayoutView{PlanID: planID, LeftPercent: uistate.DefaultLeftPercent, Expanded: uistate.DefaultExpanded}
	}
	return contract.LayoutView{
		PlanID:      planID,
		LeftPercent: splitpane.Clamp(state.LeftPercent(planID)),
		Expanded:    state.Expanded(planID),
	}
}
