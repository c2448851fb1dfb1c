// Package splitpane implements the interaction state machine behind a
// resizable two-pane layout: divider dragging, double-click collapse and
// keyboard nudges, with the committed width share persisted per plan.
package splitpane

import (
	"fmt"
	"math"

	"github.com/alexanderramin/tempo/internal/uistate"
)

const (
	// DefaultCollapseThreshold is the left percent at or below which the
	// pane counts as collapsed for the double-click toggle.
	DefaultCollapseThreshold = 5.0
	// DefaultRestorePercent is used when expanding with nothing saved.
	DefaultRestorePercent = 50.0
)

// Mode is the controller's interaction state.
type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "idle"
}

// LayoutState is the geometry of one plan's split view.
type LayoutState struct {
	LeftPercent float64
	// PreviousPercent holds the width saved by a collapse until the next
	// expand consumes it.
	PreviousPercent *float64
}

// Bounds is the container's horizontal extent in pointer coordinates.
type Bounds struct {
	Left  float64
	Width float64
}

// Container reports where the split layout currently sits.
type Container interface {
	Bounds() Bounds
}

// PointerSource delivers global pointer events. Subscribe registers
// handlers and returns a function that removes them.
type PointerSource interface {
	Subscribe(onMove func(x float64), onRelease func()) (unsubscribe func())
}

// Option configures a Controller.
type Option func(*Controller)

// WithCollapseThreshold overrides DefaultCollapseThreshold.
func WithCollapseThreshold(pct float64) Option {
	return func(c *Controller) { c.collapseThreshold = pct }
}

// WithOnLeftPercentChange registers the callback that receives every
// emitted percent, including intermediate drag values.
func WithOnLeftPercentChange(fn func(pct float64)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller drives one plan's split layout. It is not safe for
// concurrent use; all calls come from the UI event loop.
type Controller struct {
	planID    string
	store     uistate.Store
	container Container
	pointer   PointerSource

	mode        Mode
	layout      LayoutState
	unsubscribe func()

	collapseThreshold float64
	onChange          func(pct float64)
	persistErr        error
}

// New creates a Controller whose initial percent comes from store.
func New(planID string, store uistate.Store, container Container, pointer PointerSource, opts ...Option) *Controller {
	c := &Controller{
		planID:            planID,
		store:             store,
		container:         container,
		pointer:           pointer,
		collapseThreshold: DefaultCollapseThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layout.LeftPercent = DefaultRestorePercent
	if store != nil {
		c.layout.LeftPercent = Clamp(store.LeftPercent(planID))
	}
	return c
}

// Mode returns the current interaction state.
func (c *Controller) Mode() Mode { return c.mode }

// Layout returns a copy of the current layout state.
func (c *Controller) Layout() LayoutState {
	l := c.layout
	if l.PreviousPercent != nil {
		p := *l.PreviousPercent
		l.PreviousPercent = &p
	}
	return l
}

// LeftPercent returns the current left pane share.
func (c *Controller) LeftPercent() float64 { return c.layout.LeftPercent }

// Collapsed reports whether the left pane is at or below the threshold.
func (c *Controller) Collapsed() bool {
	return c.layout.LeftPercent <= c.collapseThreshold
}

// Press starts a divider drag. Pointer listeners are attached only for
// the duration of the drag.
func (c *Controller) Press() {
	if c.mode == Dragging {
		return
	}
	c.mode = Dragging
	if c.pointer != nil {
		c.unsubscribe = c.pointer.Subscribe(c.Move, func() { _ = c.Release() })
	}
}

// Move recomputes the left percent from a pointer X coordinate. It is a
// no-op unless a drag is in progress.
func (c *Controller) Move(pointerX float64) {
	if c.mode != Dragging || c.container == nil {
		return
	}
	b := c.container.Bounds()
	if b.Width <= 0 {
		return
	}
	c.emit(Clamp((pointerX - b.Left) / b.Width * 100))
}

// Release ends a drag and persists the final percent.
func (c *Controller) Release() error {
	if c.mode != Dragging {
		return nil
	}
	c.detach()
	return c.persist()
}

// Cancel ends a drag without persisting, e.g. when the view is torn down.
func (c *Controller) Cancel() {
	if c.mode != Dragging {
		return
	}
	c.detach()
}

// DoubleClick toggles between collapsed and the last expanded width.
func (c *Controller) DoubleClick() error {
	if c.Collapsed() {
		restore := DefaultRestorePercent
		if c.layout.PreviousPercent != nil {
			restore = *c.layout.PreviousPercent
		}
		c.layout.PreviousPercent = nil
		c.emit(restore)
	} else {
		prev := c.layout.LeftPercent
		c.layout.PreviousPercent = &prev
		c.emit(0)
	}
	return c.persist()
}

// Nudge shifts the divider by delta percentage points, as bound to keys.
func (c *Controller) Nudge(delta float64) error {
	c.emit(Clamp(c.layout.LeftPercent + delta))
	return c.persist()
}

// SetLeftPercent applies an absolute percent from outside the gesture
// flow, e.g. a value restored by the API.
func (c *Controller) SetLeftPercent(pct float64) error {
	c.emit(Clamp(pct))
	return c.persist()
}

// Split divides total cells between the panes for the current percent.
func (c *Controller) Split(total int) (left, right int) {
	return Split(total, c.layout.LeftPercent)
}

func (c *Controller) emit(pct float64) {
	c.layout.LeftPercent = pct
	if c.onChange != nil {
		c.onChange(pct)
	}
}

func (c *Controller) detach() {
	c.mode = Idle
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) persist() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.SetLeftPercent(c.planID, c.layout.LeftPercent); err != nil {
		c.persistErr = err
		return fmt.Errorf("saving split for plan %s: %w", c.planID, err)
	}
	return nil
}

// LastPersistError returns the last error from persisting a release that
// was triggered by the pointer source, where no caller can receive it.
func (c *Controller) LastPersistError() error { return c.persistErr }

// Clamp limits pct to [0, 100]. NaN maps to DefaultRestorePercent.
func Clamp(pct float64) float64 {
	if math.IsNaN(pct) {
		return DefaultRestorePercent
	}
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Split divides total cells into a left and right share for pct,
// rounding to the nearest cell so a percent taken from a pointer column
// maps back to that column.
func Split(total int, pct float64) (left, right int) {
	if total <= 0 {
		return 0, 0
	}
	left = int(math.Round(float64(total) * Clamp(pct) / 100))
	return left, total - left
}
