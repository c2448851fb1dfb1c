package timeline

import (
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
)

// Geometry holds the fixed sizes of the stacked-lane layout.
type Geometry struct {
	HeaderOffset float64 // reserved above lane 0 for the month/week headers
	TrackHeight  float64
	Gap          float64
}

// DefaultGeometry matches the web client's timeline rows.
var DefaultGeometry = Geometry{HeaderOffset: 56, TrackHeight: 28, Gap: 8}

// LaneTop returns the vertical offset of the lane-th row.
func (g Geometry) LaneTop(lane int) float64 {
	return g.HeaderOffset + float64(lane)*(g.TrackHeight+g.Gap)
}

// Height returns the total height needed to show lanes rows.
func (g Geometry) Height(lanes int) float64 {
	if lanes <= 0 {
		return g.HeaderOffset
	}
	return g.LaneTop(lanes-1) + g.TrackHeight + g.Gap
}

// LaneTop returns the vertical offset of a lane using DefaultGeometry.
func LaneTop(lane int) float64 {
	return DefaultGeometry.LaneTop(lane)
}

// Bar is a dated span to place on the timeline.
type Bar struct {
	ID    string
	Start time.Time
	End   time.Time // inclusive
}

// AssignLanes packs bars into the lowest lane whose previous bar ended
// before this one starts. The result maps bar ID to lane index.
func AssignLanes(bars []Bar) map[string]int {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	lanes := make(map[string]int, len(bars))
	var laneEnds []time.Time
	for _, b := range sorted {
		placed := false
		for i, end := range laneEnds {
			if end.Before(calendar.DateOnly(b.Start)) {
				laneEnds[i] = calendar.DateOnly(b.End)
				lanes[b.ID] = i
				placed = true
				break
			}
		}
		if !placed {
			laneEnds = append(laneEnds, calendar.DateOnly(b.End))
			lanes[b.ID] = len(laneEnds) - 1
		}
	}
	return lanes
}

// BarSpan returns the first grid index and day count a bar covers,
// clipped to a grid of totalDays starting at gridStart. ok is false when
// the bar lies entirely outside the grid.
func BarSpan(gridStart, barStart, barEnd time.Time, totalDays int) (start, length int, ok bool) {
	gridStart = calendar.DateOnly(gridStart)
	first := signedDays(gridStart, calendar.DateOnly(barStart))
	last := signedDays(gridStart, calendar.DateOnly(barEnd))
	if last < 0 || first >= totalDays || last < first {
		return 0, 0, false
	}
	first = clampInt(first, 0, totalDays-1)
	last = clampInt(last, 0, totalDays-1)
	return first, last - first + 1, true
}

func signedDays(from, to time.Time) int {
	n := calendar.DaysBetween(from, to)
	if to.Before(from) {
		return -n
	}
	return n
}
