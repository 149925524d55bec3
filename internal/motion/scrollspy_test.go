package motion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/folio/internal/motion"
)

func section(id string, y, h float64) motion.SpySection {
	return motion.SpySection{ID: id, El: motion.ElementFunc(func() motion.Rect { return motion.Rect{Y: y, W: 80, H: h} })}
}

func TestScrollSpyTracksActiveSection(t *testing.T) {
	sections := []motion.SpySection{
		section("home", 0, 600),
		section("about", 600, 600),
		section("contact", 1200, 600),
	}
	src := motion.NewDispatcher()
	spy := motion.NewScrollSpy(sections, motion.DefaultScrollMarks(), motion.Vec2{X: 80, Y: 400})
	spy.Mount(src)
	assert.Equal(t, "home", spy.State().Active)

	var changes []motion.InView
	spy.OnChange(func(v motion.InView) { changes = append(changes, v) })

	src.Dispatch(motion.Event{Kind: motion.Scroll, ScrollY: 400})
	st := spy.State()
	assert.Equal(t, "about", st.Active)
	assert.True(t, st.Scrolled)
	assert.True(t, st.ShowIndicator)
	assert.False(t, st.ShowBackToTop)

	// not one-shot: scrolling back regresses
	src.Dispatch(motion.Event{Kind: motion.Scroll, ScrollY: 0})
	assert.Equal(t, "home", spy.State().Active)
	assert.False(t, spy.State().Scrolled)

	src.Dispatch(motion.Event{Kind: motion.Scroll, ScrollY: 1400})
	assert.Equal(t, "contact", spy.State().Active)
	assert.Equal(t, 1.0, spy.State().Progress)
	assert.Len(t, changes, 3)

	spy.Unmount()
	assert.Zero(t, src.Active())
}
