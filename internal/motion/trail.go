package motion

import (
	"fmt"
	"time"
)

const (
	DefaultTrailLength = 10
	MaxTrailLength     = 64
)

// Particle is one pointer sample in a trail.
type Particle struct {
	ID  uint64
	Pos Vec2
	At  time.Time
}

// Trail is a fixed-size sliding window of the most recent particles.
// Appending to a full trail evicts the oldest particle.
type Trail struct {
	buf    []Particle
	start  int
	n      int
	nextID uint64
}

func NewTrail(length int) (*Trail, error) {
	if length < 1 || length > MaxTrailLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return &Trail{buf: make([]Particle, length)}, nil
}

// Push appends a particle with the next identifier.
func (t *Trail) Push(pos Vec2, at time.Time) Particle {
	t.nextID++
	p := Particle{ID: t.nextID, Pos: pos, At: at}
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return p
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
	return p
}

// Snapshot returns the particles oldest first. The slice is a copy.
func (t *Trail) Snapshot() []Particle {
	out := make([]Particle, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

func (t *Trail) Len() int { return t.n }

func (t *Trail) Cap() int { return len(t.buf) }

// Clear drops every particle. Identifiers keep increasing.
func (t *Trail) Clear() { t.start, t.n = 0, 0 }

// TrailConfig parameterizes TrailEffect.
type TrailConfig struct {
	Length int `yaml:"length" json:"length"`
}

// TrailEffect records pointer moves into a Trail and publishes a snapshot at
// most once per frame, only when something was added.
type TrailEffect struct {
	trail   *Trail
	frames  Frames
	clock   Clock
	publish func([]Particle)

	dirty   bool
	frame   FrameID
	subs    []Subscription
	mounted bool
}

func NewTrailEffect(cfg TrailConfig, frames Frames, clock Clock, publish func([]Particle)) (*TrailEffect, error) {
	if cfg.Length == 0 {
		cfg.Length = DefaultTrailLength
	}
	trail, err := NewTrail(cfg.Length)
	if err != nil {
		return nil, err
	}
	return &TrailEffect{trail: trail, frames: frames, clock: clock, publish: publish}, nil
}

func (e *TrailEffect) Mount(src Source) error {
	if e.mounted {
		return ErrAlreadyMounted
	}
	e.mounted = true
	e.subs = append(e.subs, src.Subscribe(PointerMove, func(ev Event) {
		e.trail.Push(ev.Pointer, e.clock.Now())
		e.dirty = true
	}))
	e.frame = e.frames.RequestFrame(e.tick)
	return nil
}

func (e *TrailEffect) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.frames.CancelFrame(e.frame)
	e.frame = 0
	for _, s := range e.subs {
		s.Unsubscribe()
	}
	e.subs = nil
}

// Snapshot returns the current particles oldest first.
func (e *TrailEffect) Snapshot() []Particle { return e.trail.Snapshot() }

func (e *TrailEffect) tick(time.Time) {
	if !e.mounted {
		return
	}
	if e.dirty {
		e.dirty = false
		if e.publish != nil {
			e.publish(e.trail.Snapshot())
		}
	}
	e.frame = e.frames.RequestFrame(e.tick)
}
