package motion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/motion/motiontest"
)

func mountCursor(t *testing.T) (*motion.Cursor, *motiontest.Runtime, *motion.Dispatcher, *[]motion.CursorState) {
	t.Helper()
	rt := motiontest.NewRuntime()
	src := motion.NewDispatcher()
	var states []motion.CursorState
	c, err := motion.NewCursor(motion.DefaultCursorConfig(), rt, rt, func(s motion.CursorState) {
		states = append(states, s)
	})
	require.NoError(t, err)
	require.NoError(t, c.Mount(src))
	return c, rt, src, &states
}

func TestCursorRingFollowsPointer(t *testing.T) {
	c, rt, src, _ := mountCursor(t)

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 10, Y: 10}})
	rt.Frame()
	assert.Equal(t, motion.Vec2{X: 10, Y: 10}, c.State().Ring, "starts on the first observed pointer")

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 60, Y: 10}})
	rt.Frame()
	st := c.State()
	assert.Equal(t, motion.Vec2{X: 60, Y: 10}, st.Dot)
	assert.InDelta(t, 19, st.Ring.X, 1e-9)
	assert.True(t, st.Shown())

	rt.Advance(time.Second)
	assert.InDelta(t, 60, c.State().Ring.X, 0.01)
}

func TestCursorCoalescesMovesPerFrame(t *testing.T) {
	_, rt, src, states := mountCursor(t)
	for i := 0; i < 50; i++ {
		src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: float64(i)}})
	}
	rt.Frame()
	assert.Len(t, *states, 1)
}

func TestCursorGoesIdleAndHides(t *testing.T) {
	c, rt, src, _ := mountCursor(t)
	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 1, Y: 1}})
	rt.Advance(1400 * time.Millisecond)
	assert.False(t, c.State().Idle)

	rt.Advance(200 * time.Millisecond)
	assert.True(t, c.State().Idle)
	assert.False(t, c.State().Shown())

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 2, Y: 1}})
	rt.Frame()
	assert.True(t, c.State().Shown())

	src.Dispatch(motion.Event{Kind: motion.PointerLeave})
	rt.Frame()
	assert.False(t, c.State().Visible)
}

func TestCursorScalesOverInteractiveTargets(t *testing.T) {
	c, rt, src, _ := mountCursor(t)
	c.SetHitTest(func(p motion.Vec2) bool { return p.X > 50 })

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 70}})
	rt.Advance(2 * time.Second)
	assert.True(t, c.State().Active)
	assert.InDelta(t, 1.6, c.State().Scale, 1e-3)
	assert.InDelta(t, 1.6*24, c.State().Glow, 0.1, "the glow grows with the ring")

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 10}})
	rt.Advance(2 * time.Second)
	assert.InDelta(t, 1.0, c.State().Scale, 1e-3)
	assert.InDelta(t, 24, c.State().Glow, 0.1)
}

func TestCursorUnmountIsSymmetric(t *testing.T) {
	c, rt, src, states := mountCursor(t)
	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 5}})
	rt.Frame()
	published := len(*states)

	c.Unmount()
	c.Unmount()
	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 500}})
	rt.Advance(5 * time.Second)

	assert.Len(t, *states, published)
	assert.Zero(t, src.Active())
	subs, unsubs := src.Totals()
	assert.Equal(t, subs, unsubs)
	assert.Equal(t, rt.Frames.Requested, rt.Frames.Fired+rt.Frames.Cancelled)
	assert.Equal(t, rt.Clock.Started, rt.Clock.Stopped+rt.Clock.Fired)
	assert.True(t, rt.Idle())
}

func TestCursorMountTwice(t *testing.T) {
	c, _, src, _ := mountCursor(t)
	assert.ErrorIs(t, c.Mount(src), motion.ErrAlreadyMounted)
}
