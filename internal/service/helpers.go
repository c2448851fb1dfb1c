package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

// normalizeRange drops any time-of-day so ranges compare as dates.
func normalizeRange(start, end *time.Time) {
	*start = calendar.DateOnly(*start)
	*end = calendar.DateOnly(*end)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return domain.Invalidf("%s", msg)
}
