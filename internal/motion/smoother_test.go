package motion_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
)

func TestLerpFirstTickStartsAtTarget(t *testing.T) {
	l, err := motion.NewLerp(0.2)
	require.NoError(t, err)

	assert.Equal(t, motion.Vec2{}, l.Current())
	got := l.Tick(motion.Vec2{X: 40, Y: -7})
	assert.Equal(t, motion.Vec2{X: 40, Y: -7}, got)
}

func TestLerpConvergesMonotonically(t *testing.T) {
	for _, f := range []float64{0.01, 0.18, 0.5, 0.99, 1} {
		l, err := motion.NewLerp(f)
		require.NoError(t, err)
		l.Reset(motion.Vec2{X: -300, Y: 900})
		target := motion.Vec2{X: 120, Y: 15}

		prev := l.Current().Dist(target)
		for i := 0; i < 5000; i++ {
			d := l.Tick(target).Dist(target)
			require.LessOrEqual(t, d, prev, "factor %v step %d", f, i)
			prev = d
		}
		assert.InDelta(t, 0, prev, 1e-6, "factor %v", f)
	}
}

func TestLerpNeverOvershoots(t *testing.T) {
	l, err := motion.NewLerp(0.9)
	require.NoError(t, err)
	l.Reset(motion.Vec2{X: 0})
	for i := 0; i < 100; i++ {
		v := l.Tick(motion.Vec2{X: 1})
		require.LessOrEqual(t, v.X, 1.0)
	}
}

func TestLerpFactorOne(t *testing.T) {
	l, err := motion.NewLerp(1)
	require.NoError(t, err)
	l.Reset(motion.Vec2{X: 3, Y: 4})
	assert.Equal(t, motion.Vec2{X: 9, Y: 9}, l.Tick(motion.Vec2{X: 9, Y: 9}))
}

func TestLerpRejectsFactor(t *testing.T) {
	for _, f := range []float64{0, -0.1, 1.0001, math.NaN()} {
		_, err := motion.NewLerp(f)
		assert.ErrorIs(t, err, motion.ErrInvalidFactor, "factor %v", f)
	}
}

func TestSpringSettlesOnTarget(t *testing.T) {
	s, err := motion.NewSpring(250, 22, 60)
	require.NoError(t, err)
	s.Reset(motion.Vec2{})

	target := motion.Vec2{X: 100, Y: 50}
	for i := 0; i < 600; i++ {
		s.Tick(target)
	}
	assert.InDelta(t, 100, s.Current().X, 1e-3)
	assert.InDelta(t, 50, s.Current().Y, 1e-3)
}

func TestUnderdampedSpringOvershoots(t *testing.T) {
	s, err := motion.NewSpring(300, 5, 60)
	require.NoError(t, err)
	s.Reset(motion.Vec2{})

	peak := 0.0
	for i := 0; i < 120; i++ {
		peak = math.Max(peak, s.Tick(motion.Vec2{X: 1}).X)
	}
	assert.Greater(t, peak, 1.0)
}

func TestSmootherConfig(t *testing.T) {
	s, err := motion.SmootherConfig{Kind: motion.KindSpring, Stiffness: 300, Damping: 30}.New()
	require.NoError(t, err)
	assert.IsType(t, &motion.Spring{}, s)

	s, err = motion.SmootherConfig{Factor: 0.3}.New()
	require.NoError(t, err)
	assert.IsType(t, &motion.Lerp{}, s)

	_, err = motion.SmootherConfig{Kind: "bouncy"}.New()
	assert.ErrorIs(t, err, motion.ErrUnknownSmoother)

	err = motion.SmootherConfig{Kind: motion.KindSpring}.Validate()
	assert.ErrorIs(t, err, motion.ErrInvalidSpring)
}
