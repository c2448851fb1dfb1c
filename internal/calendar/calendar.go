// Package calendar holds the date arithmetic used by the timeline grid.
//
// All functions are pure. Dates are treated as local wall-clock values;
// callers pass date-only values (local midnight) when they want exact
// day counts.
package calendar

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used across tempo.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// DaysBetween returns ceil(|b - a| / 24h). It is symmetric in its
// arguments. b is first moved into a's location, then the difference is
// measured on wall-clock values so a DST transition between a and b does
// not add or remove a day. Equal instants are 0 days apart whatever
// their locations.
func DaysBetween(a, b time.Time) int {
	diff := wallClock(b.In(a.Location())).Sub(wallClock(a))
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(day)))
}

// AddDays returns date offset by n calendar days. n may be negative.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// StartOfWeekMonday returns local midnight of the Monday at or before date.
func StartOfWeekMonday(date time.Time) time.Time {
	d := DateOnly(date)
	// time.Weekday is Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	return AddDays(d, -offset)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses "YYYY-MM-DD" (or an RFC 3339 timestamp, keeping only its
// date part) into local midnight.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
