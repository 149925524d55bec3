package motion

import (
	"fmt"
	"time"
)

type TiltConfig struct {
	Intensity float64        `yaml:"intensity" json:"intensity"`
	Spring    SmootherConfig `yaml:"spring" json:"spring"`
}

func DefaultTiltConfig() TiltConfig {
	return TiltConfig{
		Intensity: 15,
		Spring:    SmootherConfig{Kind: KindSpring, Stiffness: 300, Damping: 30},
	}
}

// TiltState holds rotations in degrees. RotateX follows the vertical
// pointer position, RotateY the horizontal one.
type TiltState struct {
	RotateX, RotateY float64
}

// Tilt rotates a card toward the pointer while it hovers the card and eases
// back to flat when it leaves.
type Tilt struct {
	frames  Frames
	bounds  func() Rect
	publish func(TiltState)

	rotX, rotY Mapping
	smoother   Smoother

	norm     Vec2
	hovering bool
	state    TiltState

	frame   FrameID
	subs    []Subscription
	mounted bool
}

var tiltCentre = Vec2{0.5, 0.5}

// NewTilt tilts the card whose viewport bounds are returned by bounds.
func NewTilt(cfg TiltConfig, frames Frames, bounds func() Rect, publish func(TiltState)) (*Tilt, error) {
	s, err := cfg.Spring.New()
	if err != nil {
		return nil, fmt.Errorf("tilt: %w", err)
	}
	i := cfg.Intensity
	return &Tilt{
		frames:   frames,
		bounds:   bounds,
		publish:  publish,
		rotX:     MustMapping([]float64{0, 1}, []float64{i, -i}),
		rotY:     MustMapping([]float64{0, 1}, []float64{-i, i}),
		smoother: s,
		norm:     tiltCentre,
	}, nil
}

func (t *Tilt) State() TiltState { return t.state }

// Hovering reports whether the pointer is over the card.
func (t *Tilt) Hovering() bool { return t.hovering }

func (t *Tilt) Mount(src Source) error {
	if t.mounted {
		return ErrAlreadyMounted
	}
	t.mounted = true
	t.subs = append(t.subs,
		src.Subscribe(PointerMove, t.onMove),
		src.Subscribe(PointerLeave, func(Event) { t.leave() }),
	)
	t.frame = t.frames.RequestFrame(t.tick)
	return nil
}

func (t *Tilt) Unmount() {
	if !t.mounted {
		return
	}
	t.mounted = false
	t.frames.CancelFrame(t.frame)
	t.frame = 0
	for _, s := range t.subs {
		s.Unsubscribe()
	}
	t.subs = nil
}

func (t *Tilt) onMove(ev Event) {
	r := t.bounds()
	if r.W <= 0 || r.H <= 0 || !r.Contains(ev.Pointer) {
		t.leave()
		return
	}
	t.hovering = true
	t.norm = Vec2{(ev.Pointer.X - r.X) / r.W, (ev.Pointer.Y - r.Y) / r.H}
}

func (t *Tilt) leave() {
	t.hovering = false
	t.norm = tiltCentre
}

func (t *Tilt) tick(time.Time) {
	if !t.mounted {
		return
	}
	target := Vec2{X: t.rotX.At(t.norm.Y), Y: t.rotY.At(t.norm.X)}
	v := t.smoother.Tick(target)
	next := TiltState{RotateX: v.X, RotateY: v.Y}
	if next != t.state {
		t.state = next
		if t.publish != nil {
			t.publish(next)
		}
	}
	t.frame = t.frames.RequestFrame(t.tick)
}
