// Package motiontest provides deterministic Frames and Clock fakes that
// count every schedule and cancel, so tests can assert teardown symmetry.
package motiontest

import (
	"time"

	"github.com/Zachkp/folio/internal/motion"
)

// Frames delivers frame callbacks only when Step is called.
type Frames struct {
	next    motion.FrameID
	pending []queued
	live    map[motion.FrameID]struct{}

	Requested int
	Cancelled int
	Fired     int
}

type queued struct {
	id motion.FrameID
	fn motion.FrameFunc
}

var _ motion.Frames = (*Frames)(nil)

func NewFrames() *Frames {
	return &Frames{live: make(map[motion.FrameID]struct{})}
}

func (f *Frames) RequestFrame(fn motion.FrameFunc) motion.FrameID {
	f.next++
	f.pending = append(f.pending, queued{id: f.next, fn: fn})
	f.live[f.next] = struct{}{}
	f.Requested++
	return f.next
}

// CancelFrame counts only cancels of callbacks that had not run yet.
func (f *Frames) CancelFrame(id motion.FrameID) {
	if _, ok := f.live[id]; !ok {
		return
	}
	delete(f.live, id)
	f.Cancelled++
	for i, q := range f.pending {
		if q.id == id {
			f.pending = append(f.pending[:i:i], f.pending[i+1:]...)
			return
		}
	}
}

// Step runs every callback requested before the call and returns how many
// ran. Callbacks requested during the step wait for the next one.
func (f *Frames) Step(now time.Time) int {
	batch := f.pending
	f.pending = nil
	ran := 0
	for _, q := range batch {
		if _, ok := f.live[q.id]; !ok {
			continue
		}
		delete(f.live, q.id)
		q.fn(now)
		f.Fired++
		ran++
	}
	return ran
}

// PendingFrames is the number of requested callbacks not yet fired or
// cancelled.
func (f *Frames) PendingFrames() int { return len(f.live) }
