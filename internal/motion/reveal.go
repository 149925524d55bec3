package motion

import (
	"fmt"
	"math"
	"time"
)

// RevealState is the entrance-animation state of one element.
type RevealState uint8

const (
	Unrevealed RevealState = iota
	Pending
	Revealed
)

func (s RevealState) String() string {
	switch s {
	case Unrevealed:
		return "unrevealed"
	case Pending:
		return "pending"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("RevealState(%d)", uint8(s))
	}
}

// RevealConfig parameterizes a RevealGate.
type RevealConfig struct {
	Threshold   float64       `yaml:"threshold" json:"threshold"`
	TriggerOnce bool          `yaml:"trigger_once" json:"trigger_once"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
}

func DefaultRevealConfig() RevealConfig {
	return RevealConfig{Threshold: 0.4, TriggerOnce: true}
}

func (c RevealConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 || math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Threshold)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, c.Delay)
	}
	return nil
}

// RevealGate decides whether an element's entrance animation plays.
//
// Unrevealed moves to Pending when the ratio reaches the threshold and to
// Revealed once the delay elapses (at once when the delay is zero). With
// TriggerOnce, Revealed is terminal and an armed delay always completes.
// Without it, dropping below the threshold cancels the delay or hides the
// element again.
type RevealGate struct {
	cfg      RevealConfig
	clock    Clock
	state    RevealState
	timer    Timer
	onChange func(RevealState)
}

func NewRevealGate(cfg RevealConfig, clock Clock) (*RevealGate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RevealGate{cfg: cfg, clock: clock}, nil
}

// OnChange registers the transition callback.
func (g *RevealGate) OnChange(fn func(RevealState)) { g.onChange = fn }

func (g *RevealGate) State() RevealState { return g.state }

func (g *RevealGate) Revealed() bool { return g.state == Revealed }

// Observe feeds the latest intersection ratio.
func (g *RevealGate) Observe(ratio float64) {
	in := ratio > 0 && ratio >= g.cfg.Threshold
	switch g.state {
	case Unrevealed:
		if !in {
			return
		}
		if g.cfg.Delay == 0 {
			g.set(Revealed)
			return
		}
		g.set(Pending)
		g.timer = g.clock.AfterFunc(g.cfg.Delay, g.fire)
	case Pending:
		if !in && !g.cfg.TriggerOnce {
			g.stopTimer()
			g.set(Unrevealed)
		}
	case Revealed:
		if !in && !g.cfg.TriggerOnce {
			g.set(Unrevealed)
		}
	}
}

// Stop cancels an armed delay. Call it when the owning view goes away.
func (g *RevealGate) Stop() { g.stopTimer() }

func (g *RevealGate) fire() {
	g.timer = nil
	if g.state == Pending {
		g.set(Revealed)
	}
}

func (g *RevealGate) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *RevealGate) set(s RevealState) {
	if g.state == s {
		return
	}
	g.state = s
	if g.onChange != nil {
		g.onChange(s)
	}
}

// Reveal binds an element's observer registration to a gate.
type Reveal struct {
	gate      *RevealGate
	obs       *Observer
	el        Element
	unobserve func()
}

func NewReveal(obs *Observer, el Element, cfg RevealConfig, clock Clock) (*Reveal, error) {
	gate, err := NewRevealGate(cfg, clock)
	if err != nil {
		return nil, err
	}
	return &Reveal{gate: gate, obs: obs, el: el}, nil
}

func (r *Reveal) Gate() *RevealGate { return r.gate }

func (r *Reveal) Mount() error {
	if r.unobserve != nil {
		return ErrAlreadyMounted
	}
	unobserve, err := r.obs.Observe(r.el, r.gate.cfg.Threshold, func(e Entry) {
		r.gate.Observe(e.Ratio)
	})
	if err != nil {
		return err
	}
	r.unobserve = unobserve
	return nil
}

func (r *Reveal) Unmount() {
	if r.unobserve != nil {
		r.unobserve()
		r.unobserve = nil
	}
	r.gate.Stop()
}

// Stagger returns per-item delays base, base+step, base+2*step, ...
func Stagger(base, step time.Duration, n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = base + time.Duration(i)*step
	}
	return out
}
