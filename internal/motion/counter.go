package motion

import (
	"fmt"
	"math"
	"time"
)

// Counter animates a displayed integer from 0 to a target once per mount.
type Counter struct {
	target   int
	duration time.Duration
	frames   Frames
	clock    Clock
	scalar   *Scalar
	onChange func(int)

	started     time.Time
	hasAnimated bool
	done        bool
	value       int
	frame       FrameID
}

// NewCounter smooths with a lerp tuned to cover 99% of the distance in
// duration at 60 frames per second; the final frame snaps to the target.
func NewCounter(target int, duration time.Duration, frames Frames, clock Clock) (*Counter, error) {
	if duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	lerp, err := NewLerp(counterFactor(duration))
	if err != nil {
		return nil, err
	}
	return &Counter{
		target:   target,
		duration: duration,
		frames:   frames,
		clock:    clock,
		scalar:   NewScalar(lerp),
	}, nil
}

func counterFactor(d time.Duration) float64 {
	n := d.Seconds() * 60
	if n <= 1 {
		return 1
	}
	return 1 - math.Pow(0.01, 1/n)
}

// WithSmoother replaces the default lerp, e.g. with a spring.
func (c *Counter) WithSmoother(s Smoother) *Counter {
	c.scalar = NewScalar(s)
	return c
}

func (c *Counter) OnChange(fn func(int)) { c.onChange = fn }

// Value is the displayed integer.
func (c *Counter) Value() int { return c.value }

func (c *Counter) Target() int { return c.target }

// Done reports whether the animation has reached the target.
func (c *Counter) Done() bool { return c.done }

// Trigger starts the animation. Only the first call per counter has an effect.
func (c *Counter) Trigger() {
	if c.hasAnimated {
		return
	}
	c.hasAnimated = true
	c.scalar.Reset(0)
	c.started = c.clock.Now()
	c.frame = c.frames.RequestFrame(c.tick)
}

// Unmount stops a running animation where it is.
func (c *Counter) Unmount() {
	if c.frame != 0 {
		c.frames.CancelFrame(c.frame)
		c.frame = 0
	}
}

func (c *Counter) tick(time.Time) {
	c.frame = 0
	if c.clock.Now().Sub(c.started) >= c.duration {
		c.done = true
		c.set(c.target)
		return
	}
	v := math.Floor(c.scalar.Tick(float64(c.target)))
	lo, hi := math.Min(0, float64(c.target)), math.Max(0, float64(c.target))
	c.set(int(math.Min(hi, math.Max(lo, v))))
	c.frame = c.frames.RequestFrame(c.tick)
}

func (c *Counter) set(v int) {
	if v == c.value {
		return
	}
	c.value = v
	if c.onChange != nil {
		c.onChange(v)
	}
}
