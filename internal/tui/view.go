package tui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/motion"
)

// navRows is the height of the navigation bar above the viewport.
const navRows = 1

// view is the page mounted on one screen size. All methods run on the loop
// goroutine.
type view struct {
	screen tcell.Screen
	doc    *Document
	c      *content.Content
	fx     content.Effects
	frames motion.Frames
	src    *motion.Dispatcher
	pal    palette

	width, height int
	scroll        int
	pointerIn     bool

	observer *motion.Observer
	spy      *motion.ScrollSpy
	reveals  []*motion.Reveal
	counters []*motion.Counter
	typer    *motion.Typewriter
	cursor   *motion.Cursor
	trail    *motion.TrailEffect
	tilts    []*motion.Tilt
	pre      *motion.Preloader
	parallax motion.Parallax

	cursorState motion.CursorState
	particles   []motion.Particle
	tiltStates  []motion.TiltState
	inView      motion.InView
	loading     motion.PreloaderState
	counts      []int

	dirty   bool
	frame   motion.FrameID
	mounted bool
}

type viewConfig struct {
	screen    tcell.Screen
	content   *content.Content
	theme     content.Theme
	frames    motion.Frames
	clock     motion.Clock
	src       *motion.Dispatcher
	rnd       *rand.Rand
	preloader bool
}

func newView(cfg viewConfig) (*view, error) {
	w, h := cfg.screen.Size()
	c := cfg.content
	fx := c.Effects
	v := &view{
		screen:   cfg.screen,
		doc:      Layout(c, w, h-navRows),
		c:        c,
		fx:       fx,
		frames:   cfg.frames,
		src:      cfg.src,
		pal:      paletteFor(cfg.theme),
		width:    w,
		height:   h,
		parallax: motion.NewParallax(fx.ParallaxSpeed),
		loading:  motion.PreloaderState{Done: true, Progress: 100},
		dirty:    true,
	}
	size := v.viewportSize()
	v.observer = motion.NewObserver(size)

	spySections := make([]motion.SpySection, 0, len(v.doc.Sections))
	for _, s := range v.doc.Sections {
		spySections = append(spySections, motion.SpySection{
			ID: s.ID,
			El: motion.ElementFunc(func() motion.Rect { return v.doc.rowsRect(s.Top, s.Height) }),
		})
	}
	v.spy = motion.NewScrollSpy(spySections, fx.Marks, size)
	v.inView = v.spy.State()
	v.spy.OnChange(func(iv motion.InView) {
		v.inView = iv
		v.dirty = true
	})

	if err := v.buildReveals(cfg.clock); err != nil {
		return nil, err
	}

	for _, st := range c.Stats {
		ctr, err := motion.NewCounter(st.Value, fx.Counter.Duration, cfg.frames, cfg.clock)
		if err != nil {
			return nil, err
		}
		i := len(v.counters)
		ctr.OnChange(func(n int) {
			v.counts[i] = n
			v.dirty = true
		})
		v.counters = append(v.counters, ctr)
	}
	v.counts = make([]int, len(v.counters))

	typer, err := motion.NewTypewriter(c.Roles, fx.Typewriter, cfg.clock)
	if err != nil {
		return nil, err
	}
	typer.OnChange(func(string) { v.dirty = true })
	v.typer = typer

	v.cursor, err = motion.NewCursor(fx.Cursor, cfg.frames, cfg.clock, func(s motion.CursorState) {
		v.cursorState = s
		v.dirty = true
	})
	if err != nil {
		return nil, err
	}
	v.cursor.SetHitTest(v.overCard)

	v.trail, err = motion.NewTrailEffect(fx.Trail, cfg.frames, cfg.clock, func(ps []motion.Particle) {
		v.particles = ps
		v.dirty = true
	})
	if err != nil {
		return nil, err
	}

	for _, b := range v.doc.Blocks {
		if b.Card == 0 {
			continue
		}
		i := len(v.tilts)
		t, err := motion.NewTilt(fx.Tilt, cfg.frames, func() motion.Rect { return v.viewportRect(b.Top, b.Height) },
			func(s motion.TiltState) {
				v.tiltStates[i] = s
				v.dirty = true
			})
		if err != nil {
			return nil, err
		}
		v.tilts = append(v.tilts, t)
	}
	v.tiltStates = make([]motion.TiltState, len(v.tilts))

	if cfg.preloader {
		v.pre = motion.NewPreloader(fx.Preloader, cfg.clock, cfg.rnd)
		v.loading = v.pre.State()
		v.pre.OnChange(func(s motion.PreloaderState) {
			v.loading = s
			v.dirty = true
		})
	}
	return v, nil
}

// buildReveals gives every block a gate, staggered within its section. The
// stats block starts the counters when it is revealed.
func (v *view) buildReveals(clock motion.Clock) error {
	perSection := map[string]int{}
	for _, b := range v.doc.Blocks {
		perSection[b.Section]++
	}
	delays := map[string][]time.Duration{}
	for id, n := range perSection {
		delays[id] = motion.Stagger(v.fx.Reveal.Delay, v.fx.RevealStagger, n)
	}
	seen := map[string]int{}
	for _, b := range v.doc.Blocks {
		cfg := v.fx.Reveal
		cfg.Delay = delays[b.Section][seen[b.Section]]
		seen[b.Section]++

		r, err := motion.NewReveal(v.observer, motion.ElementFunc(func() motion.Rect {
			return v.doc.rowsRect(b.Top, b.Height)
		}), cfg, clock)
		if err != nil {
			return fmt.Errorf("reveal %s: %w", b.Section, err)
		}
		hasStats := v.doc.Lines[b.Top].Stat > 0
		r.Gate().OnChange(func(s motion.RevealState) {
			v.dirty = true
			if s == motion.Revealed && hasStats {
				for _, c := range v.counters {
					c.Trigger()
				}
			}
		})
		v.reveals = append(v.reveals, r)
	}
	return nil
}

func (v *view) mount() error {
	if v.mounted {
		return motion.ErrAlreadyMounted
	}
	v.mounted = true
	v.observer.Mount(v.src)
	v.spy.Mount(v.src)
	for _, r := range v.reveals {
		if err := r.Mount(); err != nil {
			return err
		}
	}
	if err := v.typer.Mount(); err != nil {
		return err
	}
	if err := v.cursor.Mount(v.src); err != nil {
		return err
	}
	if err := v.trail.Mount(v.src); err != nil {
		return err
	}
	for _, t := range v.tilts {
		if err := t.Mount(v.src); err != nil {
			return err
		}
	}
	if v.pre != nil {
		v.pre.Mount()
	}
	v.frame = v.frames.RequestFrame(v.onFrame)
	return nil
}

// unmount releases every frame, timer and subscription the view holds.
func (v *view) unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.frames.CancelFrame(v.frame)
	v.frame = 0
	if v.pre != nil {
		v.pre.Unmount()
	}
	for _, t := range v.tilts {
		t.Unmount()
	}
	v.trail.Unmount()
	v.cursor.Unmount()
	v.typer.Unmount()
	for _, c := range v.counters {
		c.Unmount()
	}
	for _, r := range v.reveals {
		r.Unmount()
	}
	v.spy.Unmount()
	v.observer.Unmount()
}

func (v *view) onFrame(time.Time) {
	if !v.mounted {
		return
	}
	if v.dirty {
		v.draw()
		v.screen.Show()
		v.dirty = false
	}
	v.frame = v.frames.RequestFrame(v.onFrame)
}

func (v *view) viewportRows() int { return max(v.height-navRows, 1) }

func (v *view) viewportSize() motion.Vec2 {
	return motion.Vec2{X: float64(v.width * cellW), Y: float64(v.viewportRows() * cellH)}
}

func (v *view) maxScroll() int { return max(v.doc.Height()-v.viewportRows(), 0) }

// viewportRect converts a document row span to viewport coordinates.
func (v *view) viewportRect(top, height int) motion.Rect {
	return motion.Rect{
		X: 0,
		Y: float64((top - v.scroll) * cellH),
		W: float64(v.width * cellW),
		H: float64(height * cellH),
	}
}

func (v *view) overCard(p motion.Vec2) bool {
	for _, b := range v.doc.Blocks {
		if b.Card > 0 && v.viewportRect(b.Top, b.Height).Contains(p) {
			return true
		}
	}
	return false
}

func (v *view) setScroll(row int) {
	row = min(max(row, 0), v.maxScroll())
	if row == v.scroll {
		return
	}
	v.scroll = row
	v.dirty = true
	v.src.Dispatch(motion.Event{Kind: motion.Scroll, ScrollY: float64(row * cellH)})
}

func (v *view) scrollBy(rows int) { v.setScroll(v.scroll + rows) }

func (v *view) jump(id string) {
	if s, ok := v.doc.Section(id); ok {
		v.setScroll(s.Top)
	}
}

// resize handles a height change; width changes need a new layout.
func (v *view) resize(w, h int) {
	v.width, v.height = w, h
	v.dirty = true
	v.src.Dispatch(motion.Event{Kind: motion.Resize, ScrollY: float64(v.scroll * cellH), Viewport: v.viewportSize()})
	v.setScroll(v.scroll)
}

// pointer reports a mouse position in screen cells.
func (v *view) pointer(x, y int) {
	p := motion.Vec2{
		X: float64(x*cellW + cellW/2),
		Y: float64((y-navRows)*cellH + cellH/2),
	}
	if !v.pointerIn {
		v.pointerIn = true
		v.src.Dispatch(motion.Event{Kind: motion.PointerEnter, Pointer: p})
	}
	v.src.Dispatch(motion.Event{Kind: motion.PointerMove, Pointer: p})
}

func (v *view) leave() {
	if !v.pointerIn {
		return
	}
	v.pointerIn = false
	v.src.Dispatch(motion.Event{Kind: motion.PointerLeave})
}

func (v *view) setTheme(t content.Theme) {
	v.pal = paletteFor(t)
	v.dirty = true
}

// revealed reports whether the document row should be drawn.
func (v *view) revealed(row int) bool {
	i := v.doc.BlockAt(row)
	return i < 0 || v.reveals[i].Gate().Revealed()
}

// toCell maps a viewport point to a screen cell.
func toCell(p motion.Vec2) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y/cellH)) + navRows
}
