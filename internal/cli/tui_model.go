package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/contract"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/splitpane"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	dividerWidth      = 1
	titleRows         = 1
	footerRows        = 2
	nudgeStep         = 5.0
	doubleClickWindow = 400 * time.Millisecond
)

type timelineLoadedMsg struct {
	tl       *contract.TimelineResponse
	phases   []*domain.Phase
	features []*domain.Feature
	err      error
}

type phaseChangedMsg struct {
	phase *domain.Phase
	err   error
}

type layoutSavedMsg struct {
	view contract.LayoutView
	err  error
}

// barDrag tracks a mouse drag on a phase bar. An empty edge moves the
// whole bar.
type barDrag struct {
	phaseID string
	title   string
	edge    domain.ResizeEdge
	startX  int
	days    int
}

// timelineModel is the split view of one plan: the phase list on the
// left, the day grid on the right, a draggable divider in between.
type timelineModel struct {
	app    *App
	planID string
	cells  int
	now    func() time.Time
	clock  func() time.Time

	tl       *contract.TimelineResponse
	phases   []*domain.Phase
	features []*domain.Feature
	loaded   bool

	split   *splitpane.Controller
	pointer *teaPointer
	screen  *screenBox
	pane    *gridPane

	width, height int
	cursor        int
	selected      *int
	expanded      bool
	drag          *barDrag

	lastDividerClick time.Time
	dividerMoved     bool

	keys     timelineKeyMap
	help     help.Model
	status   string
	quitting bool
}

func newTimelineModel(app *App, planID string) *timelineModel {
	cfg := app.settings()
	m := &timelineModel{
		app:      app,
		planID:   planID,
		cells:    cfg.CellsPerDay,
		now:      time.Now,
		clock:    time.Now,
		pointer:  &teaPointer{},
		screen:   &screenBox{},
		pane:     &gridPane{cells: cfg.CellsPerDay},
		expanded: true,
		keys:     defaultTimelineKeys(),
		help:     help.New(),
	}
	m.split = splitpane.New(planID, app.Store, m.screen, m.pointer,
		splitpane.WithCollapseThreshold(cfg.CollapseThreshold),
		splitpane.WithOnLeftPercentChange(func(float64) { m.layoutPanes() }),
	)
	return m
}

func (m *timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m *timelineModel) load() tea.Cmd {
	app, planID, cells, now := m.app, m.planID, m.cells, m.now()
	return func() tea.Msg {
		ctx := context.Background()
		req := contract.NewTimelineRequest(planID)
		req.PixelsPerDay = float64(cells)
		req.Geometry = formatter.TerminalGeometry
		req.Now = &now

		tl, err := app.Timeline.Build(ctx, req)
		if err != nil {
			return timelineLoadedMsg{err: err}
		}
		phases, err := app.Phases.ListByPlan(ctx, planID)
		if err != nil {
			return timelineLoadedMsg{err: err}
		}
		features, err := app.Features.ListByPlan(ctx, planID)
		if err != nil {
			return timelineLoadedMsg{err: err}
		}
		return timelineLoadedMsg{tl: tl, phases: phases, features: features}
	}
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layoutPanes()
		return m, nil

	case timelineLoadedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		first := !m.loaded
		m.tl, m.phases, m.features, m.loaded = msg.tl, msg.phases, msg.features, true
		m.cursor = min(m.cursor, max(len(m.phases)-1, 0))
		m.layoutPanes()
		if first {
			m.expanded = msg.tl.Layout.Expanded
			if msg.tl.TodayIndex != nil {
				m.jumpToToday()
			}
		}
		return m, nil

	case phaseChangedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s now %s → %s", msg.phase.Title,
			msg.phase.StartDate.Format("2006-01-02"), msg.phase.EndDate.Format("2006-01-02"))
		return m, m.load()

	case layoutSavedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.expanded = msg.view.Expanded
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.split.Cancel()
		m.drag = nil
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.phases)-1, 0))
	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollDays(-1)
	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollDays(1)
	case key.Matches(msg, m.keys.PageLeft):
		m.scrollDays(-7)
	case key.Matches(msg, m.keys.PageRight):
		m.scrollDays(7)
	case key.Matches(msg, m.keys.Today):
		m.jumpToToday()
	case key.Matches(msg, m.keys.Narrower):
		m.nudge(-nudgeStep)
	case key.Matches(msg, m.keys.Wider):
		m.nudge(nudgeStep)
	case key.Matches(msg, m.keys.Collapse):
		m.setStatusErr(m.split.DoubleClick())
	case key.Matches(msg, m.keys.Expand):
		return m, m.toggleExpanded()
	case key.Matches(msg, m.keys.ShiftBack):
		return m, m.adjustCurrent("", -1)
	case key.Matches(msg, m.keys.ShiftFwd):
		return m, m.adjustCurrent("", 1)
	case key.Matches(msg, m.keys.Shrink):
		return m, m.adjustCurrent(domain.EdgeEnd, -1)
	case key.Matches(msg, m.keys.Grow):
		return m, m.adjustCurrent(domain.EdgeEnd, 1)
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	}
	return m, nil
}

func (m *timelineModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelLeft, tea.MouseButtonWheelUp:
			m.scrollDays(-1)
		case tea.MouseButtonWheelRight, tea.MouseButtonWheelDown:
			m.scrollDays(1)
		case tea.MouseButtonLeft:
			m.press(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.split.Mode() == splitpane.Dragging {
			m.dividerMoved = true
			m.pointer.move(msg.X)
			return m, nil
		}
		if m.drag != nil {
			m.drag.days = timeline.DragDays(float64(m.drag.startX), float64(msg.X), float64(m.cells))
			m.status = m.drag.describe()
		}

	case tea.MouseActionRelease:
		if m.pointer.subscribed() {
			m.pointer.release()
			if m.dividerMoved {
				m.lastDividerClick = time.Time{}
			}
			m.setStatusErr(m.split.LastPersistError())
			return m, nil
		}
		if m.drag != nil {
			return m, m.finishDrag()
		}
	}
	return m, nil
}

func (m *timelineModel) press(x, y int) {
	if y < titleRows || y >= m.height-footerRows {
		return
	}
	row := y - titleRows
	div := m.dividerX()

	switch {
	case x == div:
		now := m.clock()
		if !m.lastDividerClick.IsZero() && now.Sub(m.lastDividerClick) <= doubleClickWindow {
			m.lastDividerClick = time.Time{}
			m.setStatusErr(m.split.DoubleClick())
			return
		}
		m.lastDividerClick = now
		m.dividerMoved = false
		m.split.Press()
	case x < div:
		m.selectListRow(row)
	default:
		m.pressGrid(x, row)
	}
}

func (m *timelineModel) pressGrid(x, row int) {
	if m.tl == nil || m.tl.TotalDays == 0 {
		return
	}
	content := gridContent{pane: m.pane, total: m.tl.TotalDays}
	day := timeline.DayIndexFromClientX(float64(x), m.pane, content, float64(m.cells), m.tl.TotalDays-1)

	bar, ok := m.barAt(row, day)
	if !ok {
		m.selected = &day
		d := m.tl.Days[day]
		m.status = fmt.Sprintf("Selected %s %s", d.Weekday, d.Date)
		return
	}

	var edge domain.ResizeEdge
	if bar.Length*m.cells >= 3 {
		switch int(timeline.RelativeClientXToContentX(float64(x), content)) {
		case bar.StartIndex * m.cells:
			edge = domain.EdgeStart
		case (bar.StartIndex+bar.Length)*m.cells - 1:
			edge = domain.EdgeEnd
		}
	}
	m.drag = &barDrag{phaseID: bar.PhaseID, title: bar.Title, edge: edge, startX: x}
	for i, ph := range m.phases {
		if ph.ID == bar.PhaseID {
			m.cursor = i
		}
	}
	m.status = m.drag.describe()
}

// barAt finds the bar drawn at a body row covering day.
func (m *timelineModel) barAt(row, day int) (contract.BarView, bool) {
	for _, bar := range m.tl.Bars {
		if int(bar.Top) == row && day >= bar.StartIndex && day < bar.StartIndex+bar.Length {
			return bar, true
		}
	}
	return contract.BarView{}, false
}

func (m *timelineModel) finishDrag() tea.Cmd {
	d := m.drag
	m.drag = nil
	if d.days == 0 {
		m.status = ""
		return nil
	}
	return m.changePhase(d.phaseID, d.edge, d.days)
}

func (m *timelineModel) adjustCurrent(edge domain.ResizeEdge, days int) tea.Cmd {
	if len(m.phases) == 0 {
		return nil
	}
	return m.changePhase(m.phases[m.cursor].ID, edge, days)
}

func (m *timelineModel) changePhase(phaseID string, edge domain.ResizeEdge, days int) tea.Cmd {
	phases := m.app.Phases
	return func() tea.Msg {
		ctx := context.Background()
		var ph *domain.Phase
		var err error
		if edge == "" {
			ph, err = phases.Shift(ctx, phaseID, days)
		} else {
			ph, err = phases.Resize(ctx, phaseID, edge, days)
		}
		return phaseChangedMsg{phase: ph, err: err}
	}
}

func (m *timelineModel) toggleExpanded() tea.Cmd {
	layout, planID, expanded := m.app.Layout, m.planID, !m.expanded
	return func() tea.Msg {
		view, err := layout.Update(context.Background(), planID, contract.LayoutUpdate{Expanded: &expanded})
		return layoutSavedMsg{view: view, err: err}
	}
}

func (m *timelineModel) nudge(delta float64) {
	if err := m.split.Nudge(delta); err != nil {
		m.setStatusErr(err)
		return
	}
	m.status = fmt.Sprintf("List %.0f%%", m.split.LeftPercent())
}

func (m *timelineModel) jumpToToday() {
	if m.tl == nil || m.tl.TodayIndex == nil {
		m.status = "Today is outside this plan."
		return
	}
	idx := *m.tl.TodayIndex
	x := timeline.ScrollXForDay(idx, float64(m.cells), float64(m.pane.width))
	timeline.SafeScrollToX(m.pane, x, timeline.ScrollSmooth)
	m.selected = &idx
	m.status = "Today " + m.tl.Days[idx].Date
}

func (m *timelineModel) scrollDays(n int) {
	m.pane.SetScrollLeft(float64(m.pane.scroll + n*m.cells))
}

func (m *timelineModel) setStatusErr(err error) {
	if err != nil {
		m.status = "Error: " + err.Error()
	}
}

// layoutPanes recomputes pane geometry from the window size and the
// current split.
func (m *timelineModel) layoutPanes() {
	m.screen.width = max(m.width-dividerWidth, 0)
	left, right := m.split.Split(m.screen.width)
	m.pane.left = left + dividerWidth
	m.pane.width = right
	m.pane.cells = m.cells

	total := 0
	if m.tl != nil {
		total = m.tl.TotalDays
	}
	m.pane.maxScroll = max(total-m.pane.visibleDays(), 0) * m.cells
	m.pane.SetScrollLeft(float64(m.pane.scroll))
}

func (m *timelineModel) dividerX() int {
	left, _ := m.split.Split(m.screen.width)
	return left
}

func (m *timelineModel) selectListRow(row int) {
	_, rows := m.listLines()
	if row >= 0 && row < len(rows) && rows[row] >= 0 {
		m.cursor = rows[row]
	}
}

// listLines renders the left pane. rows maps each line to a phase index,
// or -1 for lines that are not a phase.
func (m *timelineModel) listLines() (lines []string, rows []int) {
	lines = append(lines, formatter.StyleHeader.Render("PHASES"))
	rows = append(rows, -1)

	if len(m.phases) == 0 {
		return append(lines, formatter.Dim("No phases.")), append(rows, -1)
	}

	byPhase := make(map[string][]*domain.Feature)
	unscheduled := 0
	for _, f := range m.features {
		if f.PhaseID == nil {
			unscheduled++
			continue
		}
		byPhase[*f.PhaseID] = append(byPhase[*f.PhaseID], f)
	}

	for i, ph := range m.phases {
		marker := "  "
		title := ph.Title
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
			title = formatter.Bold(title)
		}
		lines = append(lines, marker+formatter.ColorSwatch(ph.DisplayColor())+" "+title)
		rows = append(rows, i)

		if !m.expanded {
			continue
		}
		for _, f := range byPhase[ph.ID] {
			lines = append(lines, "     "+formatter.FeatureStatusIndicator(f.Status)+" "+f.Title)
			rows = append(rows, -1)
		}
	}
	if m.expanded && unscheduled > 0 {
		lines = append(lines, formatter.Dim(fmt.Sprintf("%d unscheduled", unscheduled)))
		rows = append(rows, -1)
	}
	return lines, rows
}

func (m *timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || !m.loaded {
		if m.status != "" {
			return m.status
		}
		return "Loading timeline..."
	}

	bodyH := max(m.height-titleRows-footerRows, 1)
	left := m.dividerX()

	var cols []string
	if left > 0 {
		lines, _ := m.listLines()
		list := lipgloss.NewStyle().MaxWidth(left).Render(strings.Join(lines, "\n"))
		cols = append(cols, lipgloss.NewStyle().Width(left).Height(bodyH).MaxHeight(bodyH).Render(list))
	}

	divStyle := formatter.StyleDim
	if m.split.Mode() == splitpane.Dragging {
		divStyle = formatter.StyleHeader
	}
	cols = append(cols, divStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", bodyH), "\n")))

	if m.pane.width > 0 {
		gantt := formatter.RenderGantt(m.tl, formatter.GanttOptions{
			CellsPerDay: m.cells,
			Offset:      m.pane.firstDay(),
			Days:        m.pane.visibleDays(),
			Selected:    m.selected,
		})
		gantt = lipgloss.NewStyle().MaxWidth(m.pane.width).Render(strings.TrimSuffix(gantt, "\n"))
		cols = append(cols, lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(gantt))
	}

	var b strings.Builder
	b.WriteString(m.titleBar())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *timelineModel) titleBar() string {
	title := formatter.StyleHeader.Render("tempo") + "  " + formatter.Bold(m.tl.PlanName)
	info := fmt.Sprintf("  %s  list %.0f%%", m.tl.ShortID, m.split.LeftPercent())
	if m.split.Collapsed() {
		info += " (collapsed)"
	}
	return title + formatter.Dim(info)
}

func (d *barDrag) describe() string {
	verb := "Move"
	if d.edge != "" {
		verb = "Resize " + string(d.edge) + " of"
	}
	return fmt.Sprintf("%s %s by %+dd", verb, d.title, d.days)
}
