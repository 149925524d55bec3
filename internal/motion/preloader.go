package motion

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

type PreloaderConfig struct {
	Step         time.Duration `yaml:"step" json:"step"`
	MessageEvery time.Duration `yaml:"message_every" json:"message_every"`
	HideAfter    time.Duration `yaml:"hide_after" json:"hide_after"`
	Messages     []string      `yaml:"messages" json:"messages"`
}

func DefaultPreloaderConfig() PreloaderConfig {
	return PreloaderConfig{
		Step:         100 * time.Millisecond,
		MessageEvery: 1500 * time.Millisecond,
		HideAfter:    500 * time.Millisecond,
		Messages: []string{
			"Loading experience...",
			"Preparing portfolio...",
			"Almost there...",
			"Just a moment...",
		},
	}
}

// Validate requires positive tick and rotation intervals; a zero interval
// would reschedule without end.
func (c PreloaderConfig) Validate() error {
	if c.Step <= 0 || c.MessageEvery <= 0 {
		return fmt.Errorf("%w: preloader step and message_every must be positive", ErrInvalidDuration)
	}
	if c.HideAfter < 0 {
		return fmt.Errorf("%w: preloader hide_after", ErrInvalidDuration)
	}
	return nil
}

type PreloaderState struct {
	Progress int
	Message  string
	Done     bool
}

// Preloader fakes a loading bar: fast increments below half, slower above,
// then reports done a short while after reaching 100.
type Preloader struct {
	cfg      PreloaderConfig
	clock    Clock
	rnd      *rand.Rand
	onChange func(PreloaderState)

	progress float64
	msg      int
	done     bool

	step, rotate, hide Timer
}

func NewPreloader(cfg PreloaderConfig, clock Clock, rnd *rand.Rand) *Preloader {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if len(cfg.Messages) == 0 {
		cfg.Messages = DefaultPreloaderConfig().Messages
	}
	return &Preloader{cfg: cfg, clock: clock, rnd: rnd}
}

func (p *Preloader) OnChange(fn func(PreloaderState)) { p.onChange = fn }

func (p *Preloader) State() PreloaderState {
	return PreloaderState{
		Progress: int(math.Floor(p.progress)),
		Message:  p.cfg.Messages[p.msg],
		Done:     p.done,
	}
}

func (p *Preloader) Mount() {
	p.step = p.clock.AfterFunc(p.cfg.Step, p.advance)
	p.rotate = p.clock.AfterFunc(p.cfg.MessageEvery, p.nextMessage)
}

// Unmount stops every timer.
func (p *Preloader) Unmount() {
	for _, t := range []*Timer{&p.step, &p.rotate, &p.hide} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
}

func (p *Preloader) advance() {
	p.step = nil
	if p.progress >= 100 {
		p.progress = 100
		p.hide = p.clock.AfterFunc(p.cfg.HideAfter, p.finish)
		return
	}
	inc := p.rnd.Float64() * 8
	if p.progress < 50 {
		inc = p.rnd.Float64() * 15
	}
	p.progress = math.Min(p.progress+inc, 100)
	p.step = p.clock.AfterFunc(p.cfg.Step, p.advance)
	p.emit()
}

func (p *Preloader) nextMessage() {
	p.msg = (p.msg + 1) % len(p.cfg.Messages)
	p.rotate = p.clock.AfterFunc(p.cfg.MessageEvery, p.nextMessage)
	p.emit()
}

func (p *Preloader) finish() {
	p.hide = nil
	p.done = true
	p.Unmount()
	p.emit()
}

func (p *Preloader) emit() {
	if p.onChange != nil {
		p.onChange(p.State())
	}
}
