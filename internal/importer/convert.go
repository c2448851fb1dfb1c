package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

// GeneratedPlan holds the domain objects produced from an import file.
type GeneratedPlan struct {
	Plan     *domain.Plan
	Phases   []*domain.Phase
	Features []*domain.Feature
	// Product is the product name to attach the plan to, if any. The
	// caller resolves or creates it.
	Product string
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedPlan, error) {
	now := time.Now().UTC()

	start, err := calendar.ParseDate(schema.Plan.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing plan start_date: %w", err)
	}
	end, err := calendar.ParseDate(schema.Plan.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing plan end_date: %w", err)
	}

	plan := &domain.Plan{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Plan.ShortID),
		Name:      schema.Plan.Name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.PlanStatus(domain.CoalesceStr(schema.Plan.Status, string(domain.PlanActive))),
		CreatedAt: now,
		UpdatedAt: now,
	}

	refMap := make(map[string]string, len(schema.Phases)) // ref -> UUID

	phases := make([]*domain.Phase, 0, len(schema.Phases))
	for _, ph := range schema.Phases {
		phStart, err := calendar.ParseDate(ph.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing phase %q start_date: %w", ph.Ref, err)
		}
		phEnd, err := calendar.ParseDate(ph.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing phase %q end_date: %w", ph.Ref, err)
		}
		realID := uuid.New().String()
		refMap[ph.Ref] = realID
		phases = append(phases, &domain.Phase{
			ID:         realID,
			PlanID:     plan.ID,
			Title:      ph.Title,
			StartDate:  phStart,
			EndDate:    phEnd,
			Color:      ph.Color,
			OrderIndex: ph.Order,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	features := make([]*domain.Feature, 0, len(schema.Features))
	for _, f := range schema.Features {
		var phaseID *string
		if f.PhaseRef != nil && *f.PhaseRef != "" {
			id, ok := refMap[*f.PhaseRef]
			if !ok {
				return nil, fmt.Errorf("phase_ref %q not found for feature %q", *f.PhaseRef, f.Title)
			}
			phaseID = &id
		}
		features = append(features, &domain.Feature{
			ID:        uuid.New().String(),
			PlanID:    plan.ID,
			PhaseID:   phaseID,
			Title:     f.Title,
			Status:    domain.FeatureStatus(domain.CoalesceStr(f.Status, string(domain.FeatureProposed))),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return &GeneratedPlan{
		Plan:     plan,
		Phases:   phases,
		Features: features,
		Product:  strings.TrimSpace(schema.Plan.Product),
	}, nil
}
