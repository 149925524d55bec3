package motion

import "time"

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameFunc runs once on the next display frame.
type FrameFunc func(now time.Time)

// Frames schedules one-shot per-frame callbacks. Callbacks requested before a
// frame runs are delivered on that frame, in request order.
type Frames interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// Timer is a pending Clock callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Clock is the time source for delays, intervals and frame timing.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
