package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
)

// Rect is the horizontal part of an element's bounding box in client
// coordinates.
type Rect struct {
	Left  float64
	Width float64
}

// Element is anything with a bounding box and a horizontal scroll offset:
// a DOM node on the web side, a pane of cells in the terminal.
type Element interface {
	Bounds() Rect
	ScrollLeft() float64
	SetScrollLeft(x float64)
}

// ScrollBehavior mirrors the browser's scroll behaviour option.
type ScrollBehavior string

const (
	ScrollAuto   ScrollBehavior = "auto"
	ScrollSmooth ScrollBehavior = "smooth"
)

// SmoothScroller is implemented by elements with a native scroll API.
type SmoothScroller interface {
	ScrollTo(x float64, behavior ScrollBehavior)
}

// TodayIndex returns the grid index of now's date when it lies within
// [start, end]. ok is false when today is outside the range.
func TodayIndex(start, end time.Time, totalDays int, now time.Time) (index int, ok bool) {
	today := calendar.DateOnly(now)
	start = calendar.DateOnly(start)
	if today.Before(start) || today.After(calendar.DateOnly(end)) {
		return 0, false
	}
	index = calendar.DaysBetween(start, today)
	if index >= totalDays {
		return 0, false
	}
	return index, true
}

// RelativeClientXToContentX converts a client X coordinate into an offset
// from the element's left edge.
func RelativeClientXToContentX(clientX float64, element Element) float64 {
	return clientX - element.Bounds().Left
}

// DayIndexFromClientX resolves a pointer X coordinate to a day index in
// [0, maxIndex]. The content element is the origin, not the container:
// the content moves left as the container scrolls. A nil content falls
// back to the container, which is only correct for unscrolled grids.
func DayIndexFromClientX(clientX float64, container, content Element, pixelsPerDay float64, maxIndex int) int {
	if pixelsPerDay <= 0 || maxIndex < 0 {
		return 0
	}
	origin := content
	if origin == nil {
		origin = container
	}
	if origin == nil {
		return 0
	}
	raw := int(math.Floor(RelativeClientXToContentX(clientX, origin) / pixelsPerDay))
	return clampInt(raw, 0, maxIndex)
}

// DragDays converts a horizontal drag into a whole number of days,
// truncated toward zero so a bar only moves once a full day is crossed.
func DragDays(startClientX, currentClientX, pixelsPerDay float64) int {
	if pixelsPerDay <= 0 {
		return 0
	}
	return int((currentClientX - startClientX) / pixelsPerDay)
}

// SafeScrollToX scrolls element horizontally to x, preferring the native
// scroll API and falling back to assigning the scroll offset.
func SafeScrollToX(element Element, x float64, behavior ScrollBehavior) {
	if element == nil {
		return
	}
	if s, ok := element.(SmoothScroller); ok {
		s.ScrollTo(x, behavior)
		return
	}
	element.SetScrollLeft(x)
}

// ScrollXForDay returns the scroll offset that centres index in a viewport
// of the given width, never negative.
func ScrollXForDay(index int, pixelsPerDay, viewportWidth float64) float64 {
	x := float64(index)*pixelsPerDay - viewportWidth/2 + pixelsPerDay/2
	if x < 0 {
		return 0
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
