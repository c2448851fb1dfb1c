package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoWeekTimeline covers Wed 2025-01-01 to Tue 2025-01-14 with two
// overlapping phases on separate lanes.
func twoWeekTimeline(today *int) *contract.TimelineResponse {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	days := timeline.BuildDays(start, 14)

	tl := &contract.TimelineResponse{
		PlanID:     "plan-1",
		ShortID:    "WEB-3",
		PlanName:   "Web 3",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-14",
		TotalDays:  14,
		TodayIndex: today,
		LaneCount:  2,
		Bars: []contract.BarView{
			{PhaseID: "ph-1", Title: "Design", Color: "#83a598", Start: "2025-01-01", End: "2025-01-05", StartIndex: 0, Length: 5, Lane: 0, FeatureCount: 2},
			{PhaseID: "ph-2", Title: "Build", Color: "#8ec07c", Start: "2025-01-03", End: "2025-01-14", StartIndex: 2, Length: 12, Lane: 1},
		},
	}
	for _, d := range days {
		tl.Days = append(tl.Days, contract.DayView{
			Index:   d.Index,
			Date:    calendar.FormatDate(d.Date),
			Weekday: d.Date.Weekday().String()[:3],
			Weekend: d.IsWeekend(),
		})
	}
	for _, s := range timeline.MonthSegments(days) {
		tl.Months = append(tl.Months, contract.SegmentView{StartIndex: s.StartIndex, Length: s.Length, Label: s.Label})
	}
	for _, s := range timeline.WeekSegments(days) {
		tl.Weeks = append(tl.Weeks, contract.SegmentView{StartIndex: s.StartIndex, Length: s.Length, Label: s.Label})
	}
	return tl
}

func ganttLines(t *testing.T, tl *contract.TimelineResponse, opts GanttOptions) []string {
	t.Helper()
	out := stripANSI(RenderGantt(tl, opts))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestRenderGantt_HeaderRows(t *testing.T) {
	lines := ganttLines(t, twoWeekTimeline(nil), GanttOptions{CellsPerDay: 3})
	require.Len(t, lines, 6)

	assert.Equal(t, "Web 3  WEB-3  2025-01-01 → 2025-01-14 (14d)", lines[0])
	assert.Equal(t, fit("│January 2025", 42), lines[1])
	assert.Equal(t, fit("│W01 Dec 30", 15)+fit("│W02 Jan 6", 21)+"│W03 J", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "1  2  3  4  5  6  "), lines[3])
	assert.Len(t, []rune(lines[3]), 42)
}

func TestRenderGantt_LanesFollowGeometry(t *testing.T) {
	lines := ganttLines(t, twoWeekTimeline(nil), GanttOptions{CellsPerDay: 3})

	lane0 := int(TerminalGeometry.LaneTop(0))
	lane1 := int(TerminalGeometry.LaneTop(1))
	assert.Equal(t, fit(" Design", 15), lines[lane0])
	assert.Equal(t, strings.Repeat(" ", 6)+fit(" Build", 36), lines[lane1])
}

func TestRenderGantt_Window(t *testing.T) {
	lines := ganttLines(t, twoWeekTimeline(nil), GanttOptions{CellsPerDay: 3, Offset: 5, Days: 7})

	assert.Equal(t, fit("│January 2025", 21), lines[1])
	assert.Equal(t, fit("│W02 Jan 6", 21), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "6  7  8"), lines[3])
	assert.Empty(t, lines[4], "Design ends before the window")
	assert.Equal(t, fit(" Build", 21), lines[5])
}

func TestRenderGantt_NarrowCellsUseWeekdayInitials(t *testing.T) {
	lines := ganttLines(t, twoWeekTimeline(nil), GanttOptions{CellsPerDay: 1, Days: 7})
	assert.Equal(t, "WTFSSMT", lines[3])
}

func TestRenderGantt_TodayMarker(t *testing.T) {
	today := 2
	lines := ganttLines(t, twoWeekTimeline(&today), GanttOptions{CellsPerDay: 3})
	assert.Equal(t, "      ▲ today", lines[len(lines)-1])

	outside := ganttLines(t, twoWeekTimeline(&today), GanttOptions{CellsPerDay: 3, Offset: 7})
	assert.NotContains(t, strings.Join(outside, "\n"), "today")
}

func TestRenderGantt_Legend(t *testing.T) {
	out := stripANSI(RenderGantt(twoWeekTimeline(nil), GanttOptions{CellsPerDay: 2, Legend: true}))
	assert.Contains(t, out, "PHASE")
	assert.Contains(t, out, "2025-01-01 → 2025-01-05")
	assert.Contains(t, out, "2025-01-03 → 2025-01-14")
}

func TestRenderGantt_Empty(t *testing.T) {
	assert.Empty(t, RenderGantt(nil, GanttOptions{}))

	tl := &contract.TimelineResponse{PlanName: "Empty", ShortID: "E-1"}
	assert.Contains(t, RenderGantt(tl, GanttOptions{}), "No days in range.")
}
