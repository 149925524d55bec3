package motion

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// snapEpsilon is the distance below which a follower lands on its target.
const snapEpsilon = 1e-9

// Smoother produces a follower value, sampled once per frame.
//
// A smoother that has never ticked starts at the first target it observes:
// the first Tick returns that target unchanged. Reset seeds an explicit
// starting value instead.
type Smoother interface {
	Tick(target Vec2) Vec2
	Current() Vec2
	Reset(v Vec2)
}

// Lerp is exponential smoothing: current += (target - current) * factor.
// It never overshoots.
type Lerp struct {
	factor  float64
	current Vec2
	primed  bool
}

func NewLerp(factor float64) (*Lerp, error) {
	if !(factor > 0 && factor <= 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}
	return &Lerp{factor: factor}, nil
}

func (l *Lerp) Tick(target Vec2) Vec2 {
	if !l.primed {
		l.current, l.primed = target, true
		return l.current
	}
	l.current.X = lerpAxis(l.current.X, target.X, l.factor)
	l.current.Y = lerpAxis(l.current.Y, target.Y, l.factor)
	return l.current
}

func lerpAxis(cur, target, f float64) float64 {
	d := target - cur
	if math.Abs(d) < snapEpsilon {
		return target
	}
	next := cur + d*f
	// rounding must not carry the value past the target
	if (d > 0 && next > target) || (d < 0 && next < target) {
		return target
	}
	return next
}

func (l *Lerp) Current() Vec2 { return l.current }

func (l *Lerp) Reset(v Vec2) { l.current, l.primed = v, true }

// Spring is a damped harmonic follower. Underdamped configurations overshoot.
type Spring struct {
	spring  harmonica.Spring
	current Vec2
	vel     Vec2
	primed  bool
}

// NewSpring converts stiffness and damping (unit mass) into a harmonica
// spring stepped at fps.
func NewSpring(stiffness, damping float64, fps int) (*Spring, error) {
	if !(stiffness > 0) || damping < 0 {
		return nil, fmt.Errorf("%w: stiffness=%v damping=%v", ErrInvalidSpring, stiffness, damping)
	}
	if fps <= 0 {
		fps = 60
	}
	freq := math.Sqrt(stiffness)
	ratio := damping / (2 * math.Sqrt(stiffness))
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), freq, ratio)}, nil
}

func (s *Spring) Tick(target Vec2) Vec2 {
	if !s.primed {
		s.current, s.vel, s.primed = target, Vec2{}, true
		return s.current
	}
	s.current.X, s.vel.X = s.spring.Update(s.current.X, s.vel.X, target.X)
	s.current.Y, s.vel.Y = s.spring.Update(s.current.Y, s.vel.Y, target.Y)
	if s.current.Dist(target) < snapEpsilon && math.Hypot(s.vel.X, s.vel.Y) < snapEpsilon {
		s.current, s.vel = target, Vec2{}
	}
	return s.current
}

func (s *Spring) Current() Vec2 { return s.current }

// Velocity returns the current per-second velocity.
func (s *Spring) Velocity() Vec2 { return s.vel }

func (s *Spring) Reset(v Vec2) { s.current, s.vel, s.primed = v, Vec2{}, true }

// SmootherKind selects a smoothing strategy.
type SmootherKind string

const (
	KindLerp   SmootherKind = "lerp"
	KindSpring SmootherKind = "spring"
)

// SmootherConfig holds the knobs of either strategy.
type SmootherConfig struct {
	Kind      SmootherKind `yaml:"kind" json:"kind"`
	Factor    float64      `yaml:"factor,omitempty" json:"factor,omitempty"`
	Stiffness float64      `yaml:"stiffness,omitempty" json:"stiffness,omitempty"`
	Damping   float64      `yaml:"damping,omitempty" json:"damping,omitempty"`
	FPS       int          `yaml:"fps,omitempty" json:"fps,omitempty"`
}

// New builds the configured smoother.
func (c SmootherConfig) New() (Smoother, error) {
	switch c.Kind {
	case KindLerp, "":
		return NewLerp(c.Factor)
	case KindSpring:
		return NewSpring(c.Stiffness, c.Damping, c.FPS)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSmoother, c.Kind)
	}
}

// Validate reports whether New would succeed.
func (c SmootherConfig) Validate() error {
	_, err := c.New()
	return err
}

// Scalar drives a single value through a Smoother's X axis.
type Scalar struct {
	s Smoother
}

func NewScalar(s Smoother) *Scalar { return &Scalar{s: s} }

func (sc *Scalar) Tick(target float64) float64 { return sc.s.Tick(Vec2{X: target}).X }

func (sc *Scalar) Value() float64 { return sc.s.Current().X }

func (sc *Scalar) Reset(v float64) { sc.s.Reset(Vec2{X: v}) }
