package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/splitpane"
	"github.com/alexanderramin/tempo/internal/teatest"
	"github.com/alexanderramin/tempo/internal/testutil"
)

// TimelineDriver wraps teatest.Driver with access to timelineModel
// internals the generic driver can't see.
type TimelineDriver struct {
	*teatest.Driver
}

// NewTimelineDriver builds a timeline model for planID with "now" pinned
// to today, sizes the terminal and drains the initial load.
func NewTimelineDriver(t *testing.T, app *App, planID string, today time.Time, w, h int) *TimelineDriver {
	t.Helper()

	m := newTimelineModel(app, planID)
	m.now = func() time.Time { return today.Add(10 * time.Hour) }
	d := teatest.New(t, m, teatest.WithSize(w, h))
	d.DrainInit()

	return &TimelineDriver{Driver: d}
}

func (d *TimelineDriver) model() *timelineModel {
	return d.Model.(*timelineModel)
}

// DividerX is the column the divider is drawn in.
func (d *TimelineDriver) DividerX() int { return d.model().dividerX() }

// DayX is the first column of day index i in the grid pane, given the
// current scroll.
func (d *TimelineDriver) DayX(i int) int {
	m := d.model()
	return m.pane.left - m.pane.scroll + i*m.cells
}

// LaneY is the screen row of a lane's bars.
func (d *TimelineDriver) LaneY(lane int) int {
	return titleRows + int(formatter.TerminalGeometry.LaneTop(lane))
}

func (d *TimelineDriver) LeftPercent() float64 { return d.model().split.LeftPercent() }

func (d *TimelineDriver) Dragging() bool { return d.model().split.Mode() == splitpane.Dragging }

func (d *TimelineDriver) PointerSubscribed() bool { return d.model().pointer.subscribed() }

func (d *TimelineDriver) Selected() (int, bool) {
	m := d.model()
	if m.selected == nil {
		return 0, false
	}
	return *m.selected, true
}

func (d *TimelineDriver) Status() string { return d.model().status }

// jan pins a test date in January 2025.
func jan(day int) time.Time { return testutil.Date(2025, 1, day) }
