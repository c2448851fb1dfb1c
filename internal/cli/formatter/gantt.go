package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// TerminalGeometry lays lanes out in text rows: title, month, week and
// day rows sit above lane 0, and every lane is one row tall.
var TerminalGeometry = timeline.Geometry{HeaderOffset: 4, TrackHeight: 1, Gap: 0}

var barText = lipgloss.Color("#282828")

// GanttOptions selects the window of days to draw.
type GanttOptions struct {
	CellsPerDay int
	// Offset is the first visible day index.
	Offset int
	// Days is the number of visible days; 0 draws to the end of the plan.
	Days int
	// Selected highlights one day column when non-nil.
	Selected *int
	// Legend appends a table of phases below the chart.
	Legend bool
}

// RenderGantt draws a timeline as text: a title, month/week/day header
// rows, one row per lane and a today marker. Bars are expected to be
// laid out with TerminalGeometry.
func RenderGantt(tl *contract.TimelineResponse, opts GanttOptions) string {
	if tl == nil {
		return ""
	}
	cells := max(opts.CellsPerDay, 1)

	var b strings.Builder
	b.WriteString(StyleHeader.Render(tl.PlanName))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s  %s → %s (%dd)", tl.ShortID, tl.StartDate, tl.EndDate, tl.TotalDays)))
	b.WriteString("\n")

	if tl.TotalDays == 0 {
		b.WriteString(Dim("No days in range."))
		b.WriteString("\n")
		return b.String()
	}

	lo := min(max(opts.Offset, 0), tl.TotalDays-1)
	hi := tl.TotalDays
	if opts.Days > 0 {
		hi = min(lo+opts.Days, tl.TotalDays)
	}

	b.WriteString(segmentRow(tl.Months, lo, hi, cells, StyleHeader))
	b.WriteString("\n")
	b.WriteString(segmentRow(tl.Weeks, lo, hi, cells, StyleDim))
	b.WriteString("\n")
	b.WriteString(dayRow(tl, lo, hi, cells, opts.Selected))
	b.WriteString("\n")

	for lane := 0; lane < tl.LaneCount; lane++ {
		b.WriteString(laneRow(tl.Bars, lane, lo, hi, cells))
		b.WriteString("\n")
	}

	if tl.TodayIndex != nil && *tl.TodayIndex >= lo && *tl.TodayIndex < hi {
		b.WriteString(strings.Repeat(" ", (*tl.TodayIndex-lo)*cells))
		b.WriteString(StyleRed.Render("▲ today"))
		b.WriteString("\n")
	}

	if opts.Legend && len(tl.Bars) > 0 {
		b.WriteString("\n")
		b.WriteString(renderLegend(tl.Bars))
	}
	return b.String()
}

func segmentRow(segs []contract.SegmentView, lo, hi, cells int, style lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		start := max(s.StartIndex, lo)
		end := min(s.StartIndex+s.Length, hi)
		if start >= end {
			continue
		}
		b.WriteString(style.Render(fit("│"+s.Label, (end-start)*cells)))
	}
	return b.String()
}

func dayRow(tl *contract.TimelineResponse, lo, hi, cells int, selected *int) string {
	var b strings.Builder
	for _, d := range tl.Days[lo:hi] {
		label := fit(d.Weekday, 1)
		if cells >= 3 {
			label = dayOfMonth(d.Date)
		}
		cell := fit(label, cells)
		switch {
		case selected != nil && *selected == d.Index:
			cell = lipgloss.NewStyle().Reverse(true).Render(cell)
		case tl.TodayIndex != nil && *tl.TodayIndex == d.Index:
			cell = StyleRed.Render(cell)
		case d.Weekend:
			cell = StyleDim.Render(cell)
		default:
			cell = StyleFg.Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

func laneRow(bars []contract.BarView, lane, lo, hi, cells int) string {
	var inLane []contract.BarView
	for _, bar := range bars {
		if bar.Lane == lane {
			inLane = append(inLane, bar)
		}
	}
	sort.Slice(inLane, func(i, j int) bool { return inLane[i].StartIndex < inLane[j].StartIndex })

	var b strings.Builder
	cursor := lo
	for _, bar := range inLane {
		start := max(bar.StartIndex, cursor)
		end := min(bar.StartIndex+bar.Length, hi)
		if start >= end {
			continue
		}
		b.WriteString(strings.Repeat(" ", (start-cursor)*cells))
		style := lipgloss.NewStyle().Background(lipgloss.Color(bar.Color)).Foreground(barText)
		b.WriteString(style.Render(fit(" "+bar.Title, (end-start)*cells)))
		cursor = end
	}
	return b.String()
}

func renderLegend(bars []contract.BarView) string {
	sorted := make([]contract.BarView, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartIndex < sorted[j].StartIndex })

	rows := make([][]string, 0, len(sorted))
	for _, bar := range sorted {
		rows = append(rows, []string{
			ColorSwatch(bar.Color),
			bar.Title,
			bar.Start + " → " + bar.End,
			strconv.Itoa(bar.Length),
			strconv.Itoa(bar.FeatureCount),
		})
	}
	return Table{
		Headers: []string{"", "PHASE", "DATES", "DAYS", "FEATURES"},
		Rows:    rows,
		Right:   map[int]bool{3: true, 4: true},
	}.Render()
}

func dayOfMonth(date string) string {
	if len(date) < 2 {
		return date
	}
	return strings.TrimPrefix(date[len(date)-2:], "0")
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w {
		r = r[:w]
	}
	return string(r) + strings.Repeat(" ", w-len(r))
}
