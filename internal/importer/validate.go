package importer

import (
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	planStart, planEnd, planErrs := validatePlan(&schema.Plan)
	errs = append(errs, planErrs...)

	phaseRefs := make(map[string]bool)
	errs = append(errs, validatePhases(schema.Phases, planStart, planEnd, phaseRefs)...)
	errs = append(errs, validateFeatures(schema.Features, phaseRefs)...)

	return errs
}

func validatePlan(p *PlanImport) (start, end time.Time, errs []error) {
	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("plan.short_id is required"))
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	if p.Status != "" && !domain.ValidPlanStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("plan.status: invalid value %q", p.Status))
	}

	start, startErr := requiredDate("plan.start_date", p.StartDate)
	end, endErr := requiredDate("plan.end_date", p.EndDate)
	errs = append(errs, startErr...)
	errs = append(errs, endErr...)
	if len(startErr) == 0 && len(endErr) == 0 && end.Before(start) {
		errs = append(errs, fmt.Errorf("plan.end_date %q must not be before start_date %q", p.EndDate, p.StartDate))
	}
	return start, end, errs
}

func validatePhases(phases []PhaseImport, planStart, planEnd time.Time, phaseRefs map[string]bool) []error {
	var errs []error
	planKnown := !planStart.IsZero() && !planEnd.IsZero() && !planEnd.Before(planStart)

	for i, ph := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)

		if ph.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if phaseRefs[ph.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, ph.Ref))
		} else {
			phaseRefs[ph.Ref] = true
		}

		if ph.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if ph.Color != "" && !colorPattern.MatchString(ph.Color) {
			errs = append(errs, fmt.Errorf("%s.color: invalid value %q (expected #rrggbb)", prefix, ph.Color))
		}

		start, startErr := requiredDate(prefix+".start_date", ph.StartDate)
		end, endErr := requiredDate(prefix+".end_date", ph.EndDate)
		errs = append(errs, startErr...)
		errs = append(errs, endErr...)
		if len(startErr) > 0 || len(endErr) > 0 {
			continue
		}
		if end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, ph.EndDate, ph.StartDate))
			continue
		}
		if planKnown && (start.Before(planStart) || end.After(planEnd)) {
			errs = append(errs, fmt.Errorf("%s: %s..%s falls outside the plan window", prefix, ph.StartDate, ph.EndDate))
		}
	}

	return errs
}

func validateFeatures(features []FeatureImport, phaseRefs map[string]bool) []error {
	var errs []error

	for i, f := range features {
		prefix := fmt.Sprintf("features[%d]", i)

		if f.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if f.Status != "" && !domain.ValidFeatureStatuses[f.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, f.Status))
		}
		if f.PhaseRef != nil && *f.PhaseRef != "" && !phaseRefs[*f.PhaseRef] {
			errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, *f.PhaseRef))
		}
	}

	return errs
}

func requiredDate(field, value string) (time.Time, []error) {
	if value == "" {
		return time.Time{}, []error{fmt.Errorf("%s is required", field)}
	}
	t, err := time.ParseInLocation(calendar.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return t, nil
}
