package splitpane

import (
	"errors"
	"math"
	"testing"

	"github.com/alexanderramin/tempo/internal/uistate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedContainer Bounds

func (f fixedContainer) Bounds() Bounds { return Bounds(f) }

// fakePointer records subscriptions so tests can dispatch global events.
type fakePointer struct {
	onMove       func(float64)
	onRelease    func()
	subscribes   int
	unsubscribes int
}

func (p *fakePointer) Subscribe(onMove func(float64), onRelease func()) func() {
	p.subscribes++
	p.onMove = onMove
	p.onRelease = onRelease
	return func() {
		p.unsubscribes++
		p.onMove = nil
		p.onRelease = nil
	}
}

func (p *fakePointer) move(x float64) {
	if p.onMove != nil {
		p.onMove(x)
	}
}

func (p *fakePointer) release() {
	if p.onRelease != nil {
		p.onRelease()
	}
}

type failingStore struct{ uistate.Store }

func (failingStore) SetLeftPercent(string, float64) error { return errors.New("disk full") }

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakePointer, *uistate.MemoryStore) {
	t.Helper()
	store := uistate.NewMemoryStore()
	ptr := &fakePointer{}
	c := New("plan-1", store, fixedContainer{Left: 100, Width: 400}, ptr, opts...)
	return c, ptr, store
}

func TestNew_ReadsStoredPercent(t *testing.T) {
	store := uistate.NewMemoryStore()
	require.NoError(t, store.SetLeftPercent("plan-1", 30))

	c := New("plan-1", store, nil, nil)
	assert.Equal(t, 30.0, c.LeftPercent())
	assert.Equal(t, Idle, c.Mode())

	fresh := New("plan-2", store, nil, nil)
	assert.Equal(t, 50.0, fresh.LeftPercent())
}

func TestDrag_UpdatesAndPersistsOnRelease(t *testing.T) {
	var emitted []float64
	c, ptr, store := newTestController(t, WithOnLeftPercentChange(func(p float64) {
		emitted = append(emitted, p)
	}))

	c.Press()
	assert.Equal(t, Dragging, c.Mode())
	assert.Equal(t, 1, ptr.subscribes)

	ptr.move(200) // (200-100)/400 = 25%
	ptr.move(300)
	assert.Equal(t, []float64{25, 50}, emitted)
	assert.Equal(t, 50.0, store.LeftPercent("plan-1"), "not persisted before release")

	ptr.move(180)
	ptr.release()
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, 1, ptr.unsubscribes, "listeners detached on release")
	assert.Equal(t, 20.0, store.LeftPercent("plan-1"))
}

func TestDrag_ClampsToBounds(t *testing.T) {
	c, ptr, _ := newTestController(t)
	c.Press()
	ptr.move(-50)
	assert.Equal(t, 0.0, c.LeftPercent())
	ptr.move(900)
	assert.Equal(t, 100.0, c.LeftPercent())
	require.NoError(t, c.Release())
}

func TestMove_IgnoredWhenIdle(t *testing.T) {
	c, ptr, _ := newTestController(t)
	c.Move(300)
	assert.Equal(t, 50.0, c.LeftPercent())
	assert.Equal(t, 0, ptr.subscribes, "no listeners outside a drag")
}

func TestPress_Twice_SubscribesOnce(t *testing.T) {
	c, ptr, _ := newTestController(t)
	c.Press()
	c.Press()
	assert.Equal(t, 1, ptr.subscribes)
	require.NoError(t, c.Release())
	require.NoError(t, c.Release())
	assert.Equal(t, 1, ptr.unsubscribes)
}

func TestCancel_DetachesWithoutPersisting(t *testing.T) {
	c, ptr, store := newTestController(t)
	c.Press()
	ptr.move(140)
	c.Cancel()

	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, 1, ptr.unsubscribes)
	assert.Equal(t, 50.0, store.LeftPercent("plan-1"))

	ptr.move(400)
	assert.Equal(t, 10.0, c.LeftPercent(), "moves after cancel are ignored")
}

func TestDoubleClick_CollapseAndRestore(t *testing.T) {
	c, _, store := newTestController(t)
	require.NoError(t, c.SetLeftPercent(42))

	require.NoError(t, c.DoubleClick())
	l := c.Layout()
	assert.Equal(t, 0.0, l.LeftPercent)
	require.NotNil(t, l.PreviousPercent)
	assert.Equal(t, 42.0, *l.PreviousPercent)
	assert.Equal(t, 0.0, store.LeftPercent("plan-1"))

	require.NoError(t, c.DoubleClick())
	l = c.Layout()
	assert.Equal(t, 42.0, l.LeftPercent)
	assert.Nil(t, l.PreviousPercent)
	assert.Equal(t, 42.0, store.LeftPercent("plan-1"))
}

func TestDoubleClick_NearlyCollapsedRestoresDefault(t *testing.T) {
	c, ptr, _ := newTestController(t)
	c.Press()
	ptr.move(116) // 4%
	ptr.release()
	require.True(t, c.Collapsed())

	require.NoError(t, c.DoubleClick())
	assert.Equal(t, DefaultRestorePercent, c.LeftPercent())
}

func TestDoubleClick_ThresholdIsInclusive(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.SetLeftPercent(5))
	require.NoError(t, c.DoubleClick())
	assert.Equal(t, 50.0, c.LeftPercent(), "5% counts as collapsed")

	require.NoError(t, c.SetLeftPercent(5.5))
	require.NoError(t, c.DoubleClick())
	assert.Equal(t, 0.0, c.LeftPercent())
}

func TestWithCollapseThreshold(t *testing.T) {
	c, _, _ := newTestController(t, WithCollapseThreshold(0))
	require.NoError(t, c.SetLeftPercent(3))
	require.NoError(t, c.DoubleClick())
	assert.Equal(t, 0.0, c.LeftPercent(), "3% is not collapsed with a zero threshold")
}

func TestNudge(t *testing.T) {
	var emitted []float64
	c, _, store := newTestController(t, WithOnLeftPercentChange(func(p float64) {
		emitted = append(emitted, p)
	}))
	require.NoError(t, c.Nudge(5))
	require.NoError(t, c.Nudge(-80))
	assert.Equal(t, []float64{55, 0}, emitted)
	assert.Equal(t, 0.0, store.LeftPercent("plan-1"))
}

func TestPersistError(t *testing.T) {
	c := New("plan-1", failingStore{uistate.NewMemoryStore()}, fixedContainer{Width: 100}, &fakePointer{})
	err := c.Nudge(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Error(t, c.LastPersistError())
}

func TestSplit(t *testing.T) {
	l, r := Split(100, 30)
	assert.Equal(t, 30, l)
	assert.Equal(t, 70, r)

	l, r = Split(81, 50)
	assert.Equal(t, 41, l)
	assert.Equal(t, 40, r)

	l, r = Split(0, 50)
	assert.Zero(t, l)
	assert.Zero(t, r)

	l, r = Split(100, math.NaN())
	assert.Equal(t, 50, l)
	assert.Equal(t, 50, r)
}

func TestSplit_DragToColumnRoundTrips(t *testing.T) {
	for _, width := range []int{2, 37, 80, 99, 100, 203} {
		c := New("plan-1", nil, fixedContainer{Left: 0, Width: float64(width)}, nil)
		for x := 0; x <= width; x++ {
			c.Press()
			c.Move(float64(x))
			require.NoError(t, c.Release())

			left, _ := c.Split(width)
			require.Equal(t, x, left, "width %d: divider released at column %d", width, x)
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 100.0, Clamp(250))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, DefaultRestorePercent, Clamp(math.NaN()))
	assert.Equal(t, 100.0, Clamp(math.Inf(1)))
}
