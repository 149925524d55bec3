package motion

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned box. Element bounds are in document coordinates;
// the viewport rect's Y is the current scroll offset.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Area() float64   { return r.W * r.H }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersect returns the overlap of r and o, zero-sized when disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IntersectionRatio is the fraction of el inside viewport. A zero-area
// element counts as fully visible when its origin is inside the viewport.
func IntersectionRatio(el, viewport Rect) float64 {
	area := el.Area()
	if area <= 0 {
		if viewport.Contains(Vec2{el.X, el.Y}) {
			return 1
		}
		return 0
	}
	r := el.Intersect(viewport).Area() / area
	return math.Min(1, math.Max(0, r))
}

// Element is anything with document bounds.
type Element interface {
	Bounds() Rect
}

// ElementFunc adapts a bounds function to Element.
type ElementFunc func() Rect

func (f ElementFunc) Bounds() Rect { return f() }

// Entry is one intersection observation.
type Entry struct {
	IsIntersecting bool
	Ratio          float64
}

// Observer recomputes intersection ratios on scroll and resize and reports
// changes to each registered element.
type Observer struct {
	viewport Rect
	targets  []*observed
	subs     []Subscription
}

type observed struct {
	el        Element
	threshold float64
	fn        func(Entry)
	last      float64
	primed    bool
	removed   bool
}

// NewObserver starts with a viewport of the given size at scroll offset 0.
func NewObserver(size Vec2) *Observer {
	return &Observer{viewport: Rect{W: size.X, H: size.Y}}
}

func (o *Observer) Mount(src Source) {
	o.subs = append(o.subs,
		src.Subscribe(Scroll, func(ev Event) {
			o.viewport.Y = ev.ScrollY
			o.Refresh()
		}),
		src.Subscribe(Resize, func(ev Event) {
			o.viewport = Rect{Y: ev.ScrollY, W: ev.Viewport.X, H: ev.Viewport.Y}
			o.Refresh()
		}),
	)
}

func (o *Observer) Unmount() {
	for _, s := range o.subs {
		s.Unsubscribe()
	}
	o.subs = nil
}

// Viewport returns the current viewport in document coordinates.
func (o *Observer) Viewport() Rect { return o.viewport }

// Observe registers el. fn is called immediately and then whenever the
// ratio changes. The returned function unregisters.
func (o *Observer) Observe(el Element, threshold float64, fn func(Entry)) (func(), error) {
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	t := &observed{el: el, threshold: threshold, fn: fn}
	o.targets = append(o.targets, t)
	o.check(t)
	return func() { o.remove(t) }, nil
}

// Refresh re-evaluates every target against the current viewport, for
// layout changes that did not come with a scroll or resize.
func (o *Observer) Refresh() {
	for _, t := range append([]*observed(nil), o.targets...) {
		if !t.removed {
			o.check(t)
		}
	}
}

func (o *Observer) check(t *observed) {
	ratio := IntersectionRatio(t.el.Bounds(), o.viewport)
	if t.primed && ratio == t.last {
		return
	}
	t.primed, t.last = true, ratio
	t.fn(Entry{IsIntersecting: ratio > 0 && ratio >= t.threshold, Ratio: ratio})
}

func (o *Observer) remove(t *observed) {
	if t.removed {
		return
	}
	t.removed = true
	for i, other := range o.targets {
		if other == t {
			o.targets = append(o.targets[:i:i], o.targets[i+1:]...)
			return
		}
	}
}

// Observed reports how many elements are registered.
func (o *Observer) Observed() int { return len(o.targets) }
