package motion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/motion/motiontest"
)

func TestTrailKeepsLastN(t *testing.T) {
	const n, m = 10, 37
	trail, err := motion.NewTrail(n)
	require.NoError(t, err)

	var pushed []motion.Particle
	for i := 0; i < m; i++ {
		pushed = append(pushed, trail.Push(motion.Vec2{X: float64(i)}, motiontest.Epoch))
		require.LessOrEqual(t, trail.Len(), n)
	}

	snap := trail.Snapshot()
	require.Len(t, snap, n)
	assert.Equal(t, pushed[m-n:], snap)

	seen := map[uint64]bool{}
	for i, p := range snap {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		if i > 0 {
			assert.Greater(t, p.ID, snap[i-1].ID)
		}
	}
}

func TestTrailSnapshotIsACopy(t *testing.T) {
	trail, err := motion.NewTrail(3)
	require.NoError(t, err)
	trail.Push(motion.Vec2{X: 1}, motiontest.Epoch)

	snap := trail.Snapshot()
	snap[0].Pos.X = 99
	assert.Equal(t, 1.0, trail.Snapshot()[0].Pos.X)
}

func TestTrailIDsSurviveClear(t *testing.T) {
	trail, err := motion.NewTrail(2)
	require.NoError(t, err)
	a := trail.Push(motion.Vec2{}, motiontest.Epoch)
	trail.Clear()
	b := trail.Push(motion.Vec2{}, motiontest.Epoch)
	assert.Greater(t, b.ID, a.ID)
	assert.Equal(t, 1, trail.Len())
}

func TestTrailRejectsLength(t *testing.T) {
	for _, n := range []int{0, -1, motion.MaxTrailLength + 1} {
		_, err := motion.NewTrail(n)
		assert.ErrorIs(t, err, motion.ErrInvalidLength)
	}
}

func TestTrailEffectPublishesOncePerFrame(t *testing.T) {
	rt := motiontest.NewRuntime()
	src := motion.NewDispatcher()

	var published [][]motion.Particle
	fx, err := motion.NewTrailEffect(motion.TrailConfig{Length: 8}, rt, rt, func(p []motion.Particle) {
		published = append(published, p)
	})
	require.NoError(t, err)
	require.NoError(t, fx.Mount(src))

	for i := 0; i < 5; i++ {
		src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: motion.Vec2{X: float64(i)}})
	}
	rt.Frame()
	require.Len(t, published, 1)
	assert.Len(t, published[0], 5)

	rt.Frame()
	assert.Len(t, published, 1, "nothing new, nothing published")

	rt.Clock.Advance(5 * time.Millisecond)
	src.Dispatch(motion.Event{Kind: motion.PointerMove})
	rt.Frame()
	require.Len(t, published, 2)
	assert.Equal(t, rt.Clock.Now().Add(-16*time.Millisecond), published[1][5].At)
}

func TestTrailEffectUnmountReleasesEverything(t *testing.T) {
	rt := motiontest.NewRuntime()
	src := motion.NewDispatcher()
	calls := 0
	fx, err := motion.NewTrailEffect(motion.TrailConfig{}, rt, rt, func([]motion.Particle) { calls++ })
	require.NoError(t, err)

	require.NoError(t, fx.Mount(src))
	fx.Unmount()

	src.Dispatch(motion.Event{Kind: motion.PointerMove})
	rt.Advance(time.Second)

	assert.Zero(t, calls)
	assert.Zero(t, src.Active())
	assert.Equal(t, rt.Frames.Requested, rt.Frames.Cancelled+rt.Frames.Fired)
	assert.True(t, rt.Idle())
}
