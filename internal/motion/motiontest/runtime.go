package motiontest

import (
	"time"
)

// Epoch is the start time of every Runtime.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Runtime couples a Clock and Frames, stepping frames at Interval as time
// advances, the way a display would.
type Runtime struct {
	*Clock
	*Frames
	Interval time.Duration
}

func NewRuntime() *Runtime {
	return &Runtime{
		Clock:    NewClock(Epoch),
		Frames:   NewFrames(),
		Interval: 16 * time.Millisecond,
	}
}

// Frame advances one interval and delivers one frame.
func (r *Runtime) Frame() {
	r.Clock.Advance(r.Interval)
	r.Frames.Step(r.Clock.Now())
}

// Advance runs whole frames until d has elapsed; a trailing partial interval
// only advances the clock.
func (r *Runtime) Advance(d time.Duration) {
	for d >= r.Interval {
		r.Frame()
		d -= r.Interval
	}
	if d > 0 {
		r.Clock.Advance(d)
	}
}

// Idle reports whether nothing is scheduled.
func (r *Runtime) Idle() bool {
	return r.PendingFrames() == 0 && r.PendingTimers() == 0
}
