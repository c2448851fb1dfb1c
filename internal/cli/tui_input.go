package cli

import (
	"github.com/alexanderramin/tempo/internal/splitpane"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
)

// timelineKeyMap is the key binding set of the timeline view.
type timelineKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PageLeft    key.Binding
	PageRight   key.Binding
	Today       key.Binding
	Narrower    key.Binding
	Wider       key.Binding
	Collapse    key.Binding
	Expand      key.Binding
	ShiftBack   key.Binding
	ShiftFwd    key.Binding
	Shrink      key.Binding
	Grow        key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev phase")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next phase")),
		ScrollLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll")),
		ScrollRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll")),
		PageLeft:    key.NewBinding(key.WithKeys("pgup", "H"), key.WithHelp("H", "week back")),
		PageRight:   key.NewBinding(key.WithKeys("pgdown", "L"), key.WithHelp("L", "week on")),
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Narrower:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "narrow list")),
		Wider:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "widen list")),
		Collapse:    key.NewBinding(key.WithKeys("\\"), key.WithHelp("\\", "collapse list")),
		Expand:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "features")),
		ShiftBack:   key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "phase -1d")),
		ShiftFwd:    key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "phase +1d")),
		Shrink:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "end -1d")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "end +1d")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Today, k.Narrower, k.Wider, k.Expand, k.ShiftBack, k.ShiftFwd, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ScrollLeft, k.ScrollRight, k.PageLeft, k.PageRight},
		{k.Today, k.Narrower, k.Wider, k.Collapse, k.Expand},
		{k.ShiftBack, k.ShiftFwd, k.Shrink, k.Grow},
		{k.Reload, k.Help, k.Quit},
	}
}

// teaPointer feeds bubbletea mouse events to whoever subscribed. Events
// arriving with no subscriber are dropped.
type teaPointer struct {
	onMove    func(x float64)
	onRelease func()
}

var _ splitpane.PointerSource = (*teaPointer)(nil)

func (p *teaPointer) Subscribe(onMove func(x float64), onRelease func()) func() {
	p.onMove = onMove
	p.onRelease = onRelease
	return func() {
		p.onMove = nil
		p.onRelease = nil
	}
}

func (p *teaPointer) subscribed() bool { return p.onMove != nil || p.onRelease != nil }

func (p *teaPointer) move(x int) {
	if p.onMove != nil {
		p.onMove(float64(x))
	}
}

func (p *teaPointer) release() {
	if p.onRelease != nil {
		p.onRelease()
	}
}

// screenBox is the terminal itself as the split container.
type screenBox struct {
	width int
}

func (s *screenBox) Bounds() splitpane.Bounds {
	return splitpane.Bounds{Left: 0, Width: float64(s.width)}
}

// gridPane is the right-hand viewport onto the day grid, measured in
// terminal columns. Scrolling snaps to whole days.
type gridPane struct {
	left      int
	width     int
	cells     int
	scroll    int
	maxScroll int
}

var _ timeline.Element = (*gridPane)(nil)

func (p *gridPane) Bounds() timeline.Rect {
	return timeline.Rect{Left: float64(p.left), Width: float64(p.width)}
}

func (p *gridPane) ScrollLeft() float64 { return float64(p.scroll) }

func (p *gridPane) SetScrollLeft(x float64) {
	cols := int(x)
	cols -= cols % max(p.cells, 1)
	p.scroll = min(max(cols, 0), p.maxScroll)
}

// firstDay is the index of the leftmost visible day.
func (p *gridPane) firstDay() int { return p.scroll / max(p.cells, 1) }

// visibleDays is how many whole days fit in the pane.
func (p *gridPane) visibleDays() int { return p.width / max(p.cells, 1) }

// gridContent is the full day grid inside gridPane. Its left edge moves
// left as the pane scrolls, which is what pointer mapping measures from.
type gridContent struct {
	pane  *gridPane
	total int
}

var _ timeline.Element = gridContent{}

func (c gridContent) Bounds() timeline.Rect {
	return timeline.Rect{
		Left:  float64(c.pane.left - c.pane.scroll),
		Width: float64(c.total * c.pane.cells),
	}
}

func (c gridContent) ScrollLeft() float64     { return c.pane.ScrollLeft() }
func (c gridContent) SetScrollLeft(x float64) { c.pane.SetScrollLeft(x) }
