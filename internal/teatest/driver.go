// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// drains returned Cmds in place, so key and mouse sequences are
// deterministic. Cmds that block (cursor blinks, tickers) are abandoned
// after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send will follow.
const MaxDrainDepth = 100

// cmdTimeout separates instant Cmds (service calls, message factories)
// from timer-backed ones.
const cmdTimeout = 250 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. Send is a
	// no-op afterwards.
	Quitting bool
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Resize(w, h)
	}
}

// New wraps model. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and feeds every resulting message back through Update.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Resize sends a WindowSizeMsg.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// View returns the model's current render.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── Keys ─────────────────────────────────────────────────────────────────────

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends each rune of s as its own key press.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// PressType sends a special key such as tea.KeyLeft or tea.KeyEsc.
func (d *Driver) PressType(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressEnter sends Enter.
func (d *Driver) PressEnter() { d.T.Helper(); d.PressType(tea.KeyEnter) }

// PressEsc sends Escape.
func (d *Driver) PressEsc() { d.T.Helper(); d.PressType(tea.KeyEsc) }

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() { d.T.Helper(); d.PressType(tea.KeyCtrlC) }

// ── Mouse ────────────────────────────────────────────────────────────────────

// MousePress sends a left-button press at (x, y).
func (d *Driver) MousePress(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

// MouseMotion sends a drag motion with the left button held.
func (d *Driver) MouseMotion(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

// MouseRelease sends a button release at (x, y).
func (d *Driver) MouseRelease(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

// Click presses and releases at the same cell.
func (d *Driver) Click(x, y int) {
	d.T.Helper()
	d.MousePress(x, y)
	d.MouseRelease(x, y)
}

// DoubleClick sends two clicks back to back. Models that time clicks
// see them well inside any double-click window.
func (d *Driver) DoubleClick(x, y int) {
	d.T.Helper()
	d.Click(x, y)
	d.Click(x, y)
}

// Drag presses at (fromX, y), moves one cell at a time to toX and releases.
func (d *Driver) Drag(fromX, toX, y int) {
	d.T.Helper()
	d.MousePress(fromX, y)
	step := 1
	if toX < fromX {
		step = -1
	}
	for x := fromX; x != toX; {
		x += step
		d.MouseMotion(x, y)
	}
	d.MouseRelease(toX, y)
}

// WheelRight sends a horizontal wheel event.
func (d *Driver) WheelRight(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonWheelRight, Action: tea.MouseActionPress})
}

// ── Draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// runWithTimeout returns nil when cmd does not finish within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages from bubbles.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
