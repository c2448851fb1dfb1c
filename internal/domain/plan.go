package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,6}-?[0-9]{1,4}(\.[0-9]{1,3})?$`)

// Plan is a release with a fixed date window.
type Plan struct {
	ID        string
	ShortID   string
	ProductID *string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PlanStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and looks like a
// release tag: 2-6 uppercase letters, an optional dash, a version number
// and an optional minor part (e.g. APP24, WEB-3, CORE-2.1).
func (p *Plan) ValidateShortID() error {
	if p.ShortID == "" {
		return Invalidf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return Invalidf("short ID %q must be 2-6 uppercase letters followed by a version (e.g. WEB-3 or CORE2.1)", p.ShortID)
	}
	return nil
}

// ValidateRange checks that the plan's end date is not before its start.
func (p *Plan) ValidateRange() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("plan %s: start and end dates are required: %w", p.DisplayID(), ErrInvalidRange)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("plan %s ends %s before it starts %s: %w",
			p.DisplayID(), p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"), ErrInvalidRange)
	}
	return nil
}

// Contains reports whether d falls within the plan window, inclusive.
func (p *Plan) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Plan) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
