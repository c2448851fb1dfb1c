package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/alexanderramin/tempo/internal/uistate"
)

type timelineService struct {
	plans    repository.PlanRepo
	phases   repository.PhaseRepo
	features repository.FeatureRepo
	state    uistate.Store
	observer UseCaseObserver
}

func NewTimelineService(
	plans repository.PlanRepo,
	phases repository.PhaseRepo,
	features repository.FeatureRepo,
	state uistate.Store,
	observers ...UseCaseObserver,
) TimelineService {
	return &timelineService{
		plans:    plans,
		phases:   phases,
		features: features,
		state:    state,
		observer: combineObservers(observers),
	}
}

func (s *timelineService) Build(ctx context.Context, req contract.TimelineRequest) (resp *contract.TimelineResponse, err error) {
	uc := startUseCase(s.observer, "build-timeline", req.PlanID)
	defer func() { uc.finish(ctx, err) }()

	plan, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if err = plan.ValidateRange(); err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	ppd := req.PixelsPerDay
	if ppd <= 0 {
		ppd = contract.DefaultPixelsPerDay
	}
	geom := req.Geometry
	if geom == (timeline.Geometry{}) {
		geom = timeline.DefaultGeometry
	}

	phases, err := s.phases.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	features, err := s.features.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("loading features: %w", err)
	}

	days := timeline.GridForRange(plan.StartDate, plan.EndDate)
	total := len(days)

	resp = &contract.TimelineResponse{
		GeneratedAt:  now.UTC(),
		PlanID:       plan.ID,
		ShortID:      plan.ShortID,
		PlanName:     plan.Name,
		StartDate:    calendar.FormatDate(plan.StartDate),
		EndDate:      calendar.FormatDate(plan.EndDate),
		TotalDays:    total,
		PixelsPerDay: ppd,
		ContentWidth: float64(total) * ppd,
		Days:         dayViews(days, ppd),
		Months:       segmentViews(timeline.MonthSegments(days), ppd),
		Weeks:        segmentViews(timeline.WeekSegments(days), ppd),
		Layout:       layoutView(s.state, plan.ID),
	}
	if idx, ok := timeline.TodayIndex(plan.StartDate, plan.EndDate, total, now); ok {
		resp.TodayIndex = &idx
	}

	resp.Bars, resp.LaneCount = barViews(plan, phases, featureCounts(features), total, ppd, geom)
	resp.ContentHeight = geom.Height(resp.LaneCount)

	uc.set("total_days", total)
	uc.set("bar_count", len(resp.Bars))
	return resp, nil
}

func dayViews(days []timeline.Day, ppd float64) []contract.DayView {
	out := make([]contract.DayView, len(days))
	for i, d := range days {
		out[i] = contract.DayView{
			Index:   d.Index,
			Date:    calendar.FormatDate(d.Date),
			Weekday: d.Date.Weekday().String()[:3],
			Weekend: d.IsWeekend(),
			Left:    float64(d.Index) * ppd,
		}
	}
	return out
}

func segmentViews(segs []timeline.Segment, ppd float64) []contract.SegmentView {
	out := make([]contract.SegmentView, len(segs))
	for i, s := range segs {
		out[i] = contract.SegmentView{
			StartIndex: s.StartIndex,
			Length:     s.Length,
			Label:      s.Label,
			Start:      calendar.FormatDate(s.Start),
			Left:       float64(s.StartIndex) * ppd,
			Width:      float64(s.Length) * ppd,
		}
	}
	return out
}

func featureCounts(features []*domain.Feature) map[string]int {
	counts := make(map[string]int)
	for _, f := range features {
		if f.PhaseID != nil {
			counts[*f.PhaseID]++
		}
	}
	return counts
}

func barViews(plan *domain.Plan, phases []*domain.Phase, counts map[string]int, total int, ppd float64, geom timeline.Geometry) ([]contract.BarView, int) {
	bars := make([]timeline.Bar, 0, len(phases))
	for _, ph := range phases {
		bars = append(bars, timeline.Bar{ID: ph.ID, Start: ph.StartDate, End: ph.EndDate})
	}
	lanes := timeline.AssignLanes(bars)

	out := make([]contract.BarView, 0, len(phases))
	laneCount := 0
	for _, ph := range phases {
		start, length, ok := timeline.BarSpan(plan.StartDate, ph.StartDate, ph.EndDate, total)
		if !ok {
			continue
		}
		lane := lanes[ph.ID]
		if lane+1 > laneCount {
			laneCount = lane + 1
		}
		out = append(out, contract.BarView{
			PhaseID:      ph.ID,
			Title:        ph.Title,
			Color:        ph.DisplayColor(),
			Start:        calendar.FormatDate(ph.StartDate),
			End:          calendar.FormatDate(ph.EndDate),
			StartIndex:   start,
			Length:       length,
			Lane:         lane,
			Top:          geom.LaneTop(lane),
			Left:         float64(start) * ppd,
			Width:        float64(length) * ppd,
			Height:       geom.TrackHeight,
			FeatureCount: counts[ph.ID],
		})
	}
	return out, laneCount
}
