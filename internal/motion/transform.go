package motion

import (
	"fmt"
	"math"
)

// Mapping is a clamped piecewise-linear map from an input range onto an
// output range.
type Mapping struct {
	in, out []float64
}

// NewMapping requires equal-length ranges of at least two points with a
// strictly increasing input.
func NewMapping(in, out []float64) (Mapping, error) {
	if len(in) < 2 || len(in) != len(out) {
		return Mapping{}, fmt.Errorf("%w: in=%d out=%d", ErrRangeMismatch, len(in), len(out))
	}
	for i := 1; i < len(in); i++ {
		if !(in[i] > in[i-1]) {
			return Mapping{}, fmt.Errorf("%w: input not increasing at %d", ErrRangeMismatch, i)
		}
	}
	return Mapping{in: append([]float64(nil), in...), out: append([]float64(nil), out...)}, nil
}

// MustMapping is NewMapping for ranges known at compile time.
func MustMapping(in, out []float64) Mapping {
	m, err := NewMapping(in, out)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Mapping) At(v float64) float64 {
	if len(m.in) == 0 {
		return v
	}
	if v <= m.in[0] {
		return m.out[0]
	}
	last := len(m.in) - 1
	if v >= m.in[last] {
		return m.out[last]
	}
	for i := 1; i <= last; i++ {
		if v <= m.in[i] {
			t := (v - m.in[i-1]) / (m.in[i] - m.in[i-1])
			return m.out[i-1] + (m.out[i]-m.out[i-1])*t
		}
	}
	return m.out[last]
}

func clamp01(v float64) float64 { return math.Min(1, math.Max(0, v)) }

// ScrollProgress is 0 when the element's top meets the viewport bottom and 1
// when its bottom passes the viewport top.
func ScrollProgress(el, viewport Rect) float64 {
	span := el.H + viewport.H
	if span <= 0 {
		return 0
	}
	return clamp01((viewport.Bottom() - el.Y) / span)
}

// Parallax shifts content against the scroll direction.
type Parallax struct {
	m Mapping
}

func NewParallax(speed float64) Parallax {
	return Parallax{m: MustMapping([]float64{0, 1}, []float64{100 * speed, -100 * speed})}
}

// Offset returns the vertical shift for a scroll progress.
func (p Parallax) Offset(progress float64) float64 { return p.m.At(progress) }

var (
	heroOffset  = MustMapping([]float64{0, 500}, []float64{0, 150})
	heroOpacity = MustMapping([]float64{0, 300}, []float64{1, 0})
	heroScale   = MustMapping([]float64{0, 300}, []float64{1, 0.95})
)

// HeroFade is the hero's scroll-linked exit transform.
type HeroFade struct {
	Offset  float64
	Opacity float64
	Scale   float64
}

// HeroFadeAt evaluates the hero transform at a scroll offset in pixels.
func HeroFadeAt(scrollY float64) HeroFade {
	return HeroFade{
		Offset:  heroOffset.At(scrollY),
		Opacity: heroOpacity.At(scrollY),
		Scale:   heroScale.At(scrollY),
	}
}
