// Package motion turns pointer, scroll and viewport events into smoothed,
// time-decayed visual state: followers, trails, reveal gates, counters and
// typed text.
//
// Every primitive is owned by exactly one view. State is mutated either from
// an input handler or from a frame callback, both running on the same loop
// goroutine, so nothing in here takes a lock on the hot path. Components that
// schedule frames or timers release them in Unmount.
package motion
