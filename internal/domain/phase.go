package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultPhaseColor is used when a phase has no color of its own.
const DefaultPhaseColor = "#83a598"

// Phase is a dated stretch of a plan drawn as one bar on the timeline.
type Phase struct {
	ID         string
	PlanID     string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	Color      string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the phase's own fields and that it lies inside plan.
func (ph *Phase) Validate(plan *Plan) error {
	if ph.Title == "" {
		return Invalidf("phase title is required")
	}
	if ph.Color != "" && !colorPattern.MatchString(ph.Color) {
		return Invalidf("phase color %q must be a hex color like #83a598", ph.Color)
	}
	if ph.EndDate.Before(ph.StartDate) {
		return fmt.Errorf("phase %q ends before it starts: %w", ph.Title, ErrInvalidRange)
	}
	if plan != nil && (!plan.Contains(ph.StartDate) || !plan.Contains(ph.EndDate)) {
		return fmt.Errorf("phase %q (%s..%s) is outside plan %s (%s..%s): %w",
			ph.Title,
			ph.StartDate.Format("2006-01-02"), ph.EndDate.Format("2006-01-02"),
			plan.DisplayID(),
			plan.StartDate.Format("2006-01-02"), plan.EndDate.Format("2006-01-02"),
			ErrInvalidRange)
	}
	return nil
}

// DisplayColor returns the phase color or the default.
func (ph *Phase) DisplayColor() string {
	return CoalesceStr(ph.Color, DefaultPhaseColor)
}

// Days returns the inclusive number of days the phase spans.
func (ph *Phase) Days() int {
	return calendar.DaysBetween(ph.StartDate, ph.EndDate) + 1
}
