package motion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/motion/motiontest"
)

func TestCounterEndsExactlyOnTarget(t *testing.T) {
	rt := motiontest.NewRuntime()
	c, err := motion.NewCounter(100, 2*time.Second, rt, rt)
	require.NoError(t, err)

	var seen []int
	c.OnChange(func(v int) { seen = append(seen, v) })
	c.Trigger()

	rt.Advance(time.Second)
	assert.Greater(t, c.Value(), 0)
	assert.Less(t, c.Value(), 100)
	assert.False(t, c.Done())

	rt.Advance(1100 * time.Millisecond)
	assert.True(t, c.Done())
	assert.Equal(t, 100, c.Value())
	assert.Zero(t, rt.PendingFrames())

	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
}

func TestCounterAnimatesOncePerMount(t *testing.T) {
	rt := motiontest.NewRuntime()
	c, err := motion.NewCounter(42, 500*time.Millisecond, rt, rt)
	require.NoError(t, err)

	c.Trigger()
	rt.Advance(time.Second)
	require.Equal(t, 42, c.Value())
	requested := rt.Frames.Requested

	c.Trigger()
	c.Trigger()
	rt.Advance(time.Second)
	assert.Equal(t, requested, rt.Frames.Requested)
	assert.Equal(t, 42, c.Value())
}

func TestCounterZeroDurationSnaps(t *testing.T) {
	rt := motiontest.NewRuntime()
	c, err := motion.NewCounter(7, 0, rt, rt)
	require.NoError(t, err)
	c.Trigger()
	rt.Frame()
	assert.Equal(t, 7, c.Value())
	assert.True(t, c.Done())
}

func TestCounterWithSpring(t *testing.T) {
	rt := motiontest.NewRuntime()
	s, err := motion.NewSpring(100, 20, 60)
	require.NoError(t, err)
	c, err := motion.NewCounter(250, time.Second, rt, rt)
	require.NoError(t, err)
	c.WithSmoother(s).Trigger()

	rt.Advance(2 * time.Second)
	assert.Equal(t, 250, c.Value())
}

func TestCounterUnmountCancelsFrame(t *testing.T) {
	rt := motiontest.NewRuntime()
	c, err := motion.NewCounter(10, time.Second, rt, rt)
	require.NoError(t, err)
	c.Trigger()
	c.Unmount()

	rt.Advance(2 * time.Second)
	assert.Zero(t, c.Value())
	assert.Equal(t, 1, rt.Frames.Cancelled)
	assert.True(t, rt.Idle())
}

func TestCounterRejectsNegativeDuration(t *testing.T) {
	rt := motiontest.NewRuntime()
	_, err := motion.NewCounter(1, -time.Second, rt, rt)
	assert.ErrorIs(t, err, motion.ErrInvalidDuration)
}
