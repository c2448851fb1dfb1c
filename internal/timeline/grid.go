// Package timeline builds the indexed day grid behind the Gantt view and
// maps pointer coordinates back into that grid.
package timeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
)

// Day is one calendar day of a grid, addressed by its offset from the
// grid's start date.
type Day struct {
	Index int
	Date  time.Time
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Segment is a contiguous run of days sharing a month or a Monday-anchored week.
type Segment struct {
	StartIndex int
	Length     int
	Label      string
	Start      time.Time
}

// End returns the index one past the segment's last day.
func (s Segment) End() int { return s.StartIndex + s.Length }

// BuildDays returns count days starting at start. A non-positive count
// yields an empty grid.
func BuildDays(start time.Time, count int) []Day {
	if count <= 0 {
		return []Day{}
	}
	days := make([]Day, count)
	for i := range days {
		days[i] = Day{Index: i, Date: calendar.AddDays(start, i)}
	}
	return days
}

// GridForRange returns one day per calendar date from start to end inclusive.
func GridForRange(start, end time.Time) []Day {
	start = calendar.DateOnly(start)
	return BuildDays(start, calendar.DaysBetween(start, calendar.DateOnly(end))+1)
}

// MonthSegments groups days into runs sharing the same (year, month).
func MonthSegments(days []Day) []Segment {
	return segment(days, func(d Day) time.Time {
		y, m, _ := d.Date.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, d.Date.Location())
	}, func(key time.Time) string {
		return key.Format("January 2006")
	})
}

// WeekSegments groups days into runs sharing the same Monday week start.
// The first and last segments may be partial weeks.
func WeekSegments(days []Day) []Segment {
	return segment(days, func(d Day) time.Time {
		return calendar.StartOfWeekMonday(d.Date)
	}, func(key time.Time) string {
		_, wk := key.ISOWeek()
		return fmt.Sprintf("W%02d %s", wk, key.Format("Jan 2"))
	})
}

func segment(days []Day, keyOf func(Day) time.Time, label func(time.Time) string) []Segment {
	segments := []Segment{}
	for i, d := range days {
		key := keyOf(d)
		if i > 0 && key.Equal(segments[len(segments)-1].Start) {
			segments[len(segments)-1].Length++
			continue
		}
		segments = append(segments, Segment{
			StartIndex: i,
			Length:     1,
			Label:      label(key),
			Start:      key,
		})
	}
	return segments
}
