package motion

import (
	"fmt"
	"time"
)

// CursorConfig parameterizes the pointer follower. One config covers what
// used to be separate dot/ring/glow variants.
type CursorConfig struct {
	Ring        SmootherConfig `yaml:"ring" json:"ring"`
	Scale       SmootherConfig `yaml:"scale" json:"scale"`
	ActiveScale float64        `yaml:"active_scale" json:"active_scale"`
	IdleAfter   time.Duration  `yaml:"idle_after" json:"idle_after"`
	// GlowRadius is the halo radius around the ring at scale 1. It grows
	// with the ring; zero turns the halo off.
	GlowRadius  float64        `yaml:"glow_radius" json:"glow_radius"`
}

func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		Ring:        SmootherConfig{Kind: KindLerp, Factor: 0.18},
		Scale:       SmootherConfig{Kind: KindSpring, Stiffness: 250, Damping: 22},
		ActiveScale: 1.6,
		IdleAfter:   1500 * time.Millisecond,
		GlowRadius:  24,
	}
}

// CursorState is what the renderer draws for the cursor on one frame.
type CursorState struct {
	Dot     Vec2
	Ring    Vec2
	Scale   float64
	Glow    float64
	Visible bool
	Idle    bool
	Active  bool
}

// Shown reports whether the cursor should be drawn at all.
func (s CursorState) Shown() bool { return s.Visible && !s.Idle }

// Cursor follows the pointer with a smoothed ring. Pointer events only write
// the raw position; the frame callback does the smoothing and publishes at
// most once per frame.
type Cursor struct {
	cfg     CursorConfig
	frames  Frames
	clock   Clock
	publish func(CursorState)
	hit     func(Vec2) bool

	ring  Smoother
	scale *Scalar

	pointer Vec2
	seen    bool
	state   CursorState
	last    CursorState

	frame   FrameID
	idle    Timer
	subs    []Subscription
	mounted bool
}

// NewCursor validates cfg. publish may be nil.
func NewCursor(cfg CursorConfig, frames Frames, clock Clock, publish func(CursorState)) (*Cursor, error) {
	ring, err := cfg.Ring.New()
	if err != nil {
		return nil, fmt.Errorf("cursor ring: %w", err)
	}
	scale, err := cfg.Scale.New()
	if err != nil {
		return nil, fmt.Errorf("cursor scale: %w", err)
	}
	if cfg.ActiveScale <= 0 {
		cfg.ActiveScale = 1
	}
	c := &Cursor{
		cfg:     cfg,
		frames:  frames,
		clock:   clock,
		publish: publish,
		ring:    ring,
		scale:   NewScalar(scale),
	}
	c.scale.Reset(1)
	c.state = CursorState{Scale: 1, Glow: cfg.GlowRadius}
	c.last = c.state
	return c, nil
}

// SetHitTest installs the predicate deciding whether the pointer is over an
// interactive target.
func (c *Cursor) SetHitTest(fn func(Vec2) bool) { c.hit = fn }

// Mount subscribes to pointer events and starts the frame loop.
func (c *Cursor) Mount(src Source) error {
	if c.mounted {
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.subs = append(c.subs,
		src.Subscribe(PointerMove, c.onMove),
		src.Subscribe(PointerEnter, func(Event) { c.state.Visible = true }),
		src.Subscribe(PointerLeave, func(Event) { c.state.Visible = false }),
	)
	c.frame = c.frames.RequestFrame(c.tick)
	return nil
}

// Unmount releases the frame, the idle timer and every subscription.
func (c *Cursor) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.frames.CancelFrame(c.frame)
	c.frame = 0
	if c.idle != nil {
		c.idle.Stop()
		c.idle = nil
	}
	for _, s := range c.subs {
		s.Unsubscribe()
	}
	c.subs = nil
}

// State returns the current state, including handler writes not yet
// published by a frame.
func (c *Cursor) State() CursorState { return c.state }

func (c *Cursor) onMove(ev Event) {
	c.pointer = ev.Pointer
	c.seen = true
	c.state.Visible = true
	c.state.Idle = false
	if c.hit != nil {
		c.state.Active = c.hit(ev.Pointer)
	}
	if c.idle != nil {
		c.idle.Stop()
	}
	if c.cfg.IdleAfter > 0 {
		c.idle = c.clock.AfterFunc(c.cfg.IdleAfter, func() {
			c.idle = nil
			c.state.Idle = true
		})
	}
}

func (c *Cursor) tick(time.Time) {
	if !c.mounted {
		return
	}
	if c.seen {
		c.state.Dot = c.pointer
		c.state.Ring = c.ring.Tick(c.pointer)
	}
	target := 1.0
	if c.state.Active {
		target = c.cfg.ActiveScale
	}
	c.state.Scale = c.scale.Tick(target)
	c.state.Glow = c.cfg.GlowRadius * c.state.Scale
	if c.state != c.last {
		c.last = c.state
		if c.publish != nil {
			c.publish(c.state)
		}
	}
	c.frame = c.frames.RequestFrame(c.tick)
}
