package motion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/motion/motiontest"
)

var quickTyping = motion.TypewriterConfig{
	TypeSpeed:   100 * time.Millisecond,
	DeleteSpeed: 50 * time.Millisecond,
	HoldFull:    time.Second,
	HoldEmpty:   500 * time.Millisecond,
}

func TestTypewriterWrapsAround(t *testing.T) {
	clock := motiontest.NewClock(motiontest.Epoch)
	tw, err := motion.NewTypewriter([]string{"A", "BB"}, quickTyping, clock)
	require.NoError(t, err)

	var shown []string
	tw.OnChange(func(s string) { shown = append(shown, s) })
	require.NoError(t, tw.Mount())
	assert.Equal(t, "", tw.Text())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, "A", tw.Text())
	assert.Equal(t, motion.HoldingFull, tw.Phase())

	// hold, delete A, hold empty, type BB, hold, delete BB, hold empty
	clock.Advance(1000*time.Millisecond + 50*time.Millisecond + 500*time.Millisecond +
		200*time.Millisecond + 1000*time.Millisecond + 100*time.Millisecond + 500*time.Millisecond)
	assert.Equal(t, "", tw.Text())
	assert.Equal(t, 0, tw.Word())
	assert.Equal(t, motion.Typing, tw.Phase())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, "A", tw.Text())
	assert.Equal(t, []string{"A", "", "B", "BB", "B", "", "A"}, shown)
}

func TestTypewriterHandlesRunes(t *testing.T) {
	clock := motiontest.NewClock(motiontest.Epoch)
	tw, err := motion.NewTypewriter([]string{"héllo"}, quickTyping, clock)
	require.NoError(t, err)
	require.NoError(t, tw.Mount())
	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, "hé", tw.Text())
}

func TestTypewriterEmptyWord(t *testing.T) {
	clock := motiontest.NewClock(motiontest.Epoch)
	tw, err := motion.NewTypewriter([]string{"", "x"}, quickTyping, clock)
	require.NoError(t, err)
	require.NoError(t, tw.Mount())
	for i := 0; i < 100; i++ {
		clock.Advance(100 * time.Millisecond)
		assert.LessOrEqual(t, len(tw.Text()), 1)
	}
}

func TestTypewriterNeedsWords(t *testing.T) {
	_, err := motion.NewTypewriter(nil, quickTyping, motiontest.NewClock(motiontest.Epoch))
	assert.ErrorIs(t, err, motion.ErrNoWords)
}

func TestTypewriterRejectsNegativeTimings(t *testing.T) {
	cfg := quickTyping
	cfg.HoldEmpty = -time.Millisecond
	assert.ErrorIs(t, cfg.Validate(), motion.ErrInvalidDuration)
	_, err := motion.NewTypewriter([]string{"a"}, cfg, motiontest.NewClock(motiontest.Epoch))
	assert.ErrorIs(t, err, motion.ErrInvalidDuration)
}

func TestTypewriterUnmountStopsTimer(t *testing.T) {
	clock := motiontest.NewClock(motiontest.Epoch)
	tw, err := motion.NewTypewriter([]string{"abc"}, quickTyping, clock)
	require.NoError(t, err)
	changes := 0
	tw.OnChange(func(string) { changes++ })

	require.NoError(t, tw.Mount())
	tw.Unmount()
	clock.Advance(10 * time.Second)

	assert.Zero(t, changes)
	assert.Zero(t, clock.PendingTimers())
	assert.Equal(t, clock.Started, clock.Stopped+clock.Fired)
}
