package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// resolvePlanID resolves a plan identifier which can be a short ID
// (case-insensitive), a full UUID or a unique UUID prefix.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := app.Plans.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	return matchID(plans, func(p *domain.Plan) string { return p.ID }, input, "plan")
}

// resolvePhaseID resolves a phase UUID or unique UUID prefix across all plans.
func resolvePhaseID(ctx context.Context, app *App, input string) (string, error) {
	if ph, err := app.Phases.GetByID(ctx, input); err == nil {
		return ph.ID, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	plans, err := app.Plans.List(ctx, true)
	if err != nil {
		return "", err
	}
	var phases []*domain.Phase
	for _, p := range plans {
		list, err := app.Phases.ListByPlan(ctx, p.ID)
		if err != nil {
			return "", err
		}
		phases = append(phases, list...)
	}
	return matchID(phases, func(ph *domain.Phase) string { return ph.ID }, input, "phase")
}

// resolveFeatureID resolves a feature UUID or unique UUID prefix across all plans.
func resolveFeatureID(ctx context.Context, app *App, input string) (string, error) {
	if f, err := app.Features.GetByID(ctx, input); err == nil {
		return f.ID, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	plans, err := app.Plans.List(ctx, true)
	if err != nil {
		return "", err
	}
	var features []*domain.Feature
	for _, p := range plans {
		list, err := app.Features.ListByPlan(ctx, p.ID)
		if err != nil {
			return "", err
		}
		features = append(features, list...)
	}
	return matchID(features, func(f *domain.Feature) string { return f.ID }, input, "feature")
}

// resolveProductID matches a product by name (case-insensitive), UUID or
// unique UUID prefix.
func resolveProductID(ctx context.Context, app *App, input string) (string, error) {
	products, err := app.Products.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	return matchID(products, func(p *domain.Product) string { return p.ID }, input, "product")
}

// matchID finds an exact ID match, then a unique prefix match.
func matchID[T any](items []T, idOf func(T) string, input, kind string) (string, error) {
	for _, it := range items {
		if idOf(it) == input {
			return input, nil
		}
	}

	var matches []string
	for _, it := range items {
		if strings.HasPrefix(idOf(it), input) {
			matches = append(matches, idOf(it))
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
