package motion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/motion/motiontest"
)

func TestTiltFollowsPointerAndRecentres(t *testing.T) {
	rt := motiontest.NewRuntime()
	src := motion.NewDispatcher()
	card := motion.Rect{X: 0, Y: 0, W: 100, H: 100}
	tilt, err := motion.NewTilt(motion.DefaultTiltConfig(), rt, func() motion.Rect { return card }, nil)
	require.NoError(t, err)
	require.NoError(t, tilt.Mount(src))

	rt.Frame()
	assert.Equal(t, motion.TiltState{}, tilt.State())

	// bottom-right corner
	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 100, Y: 100}})
	rt.Advance(2 * time.Second)
	assert.True(t, tilt.Hovering())
	assert.InDelta(t, -15, tilt.State().RotateX, 0.01)
	assert.InDelta(t, 15, tilt.State().RotateY, 0.01)

	src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: 300, Y: 100}})
	rt.Advance(2 * time.Second)
	assert.False(t, tilt.Hovering())
	assert.InDelta(t, 0, tilt.State().RotateX, 0.01)
	assert.InDelta(t, 0, tilt.State().RotateY, 0.01)

	tilt.Unmount()
	assert.Zero(t, rt.PendingFrames())
	assert.Zero(t, src.Active())
}
