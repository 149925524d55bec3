package motion

import (
	"fmt"
	"time"
)

// TypePhase is the typewriter's current activity.
type TypePhase uint8

const (
	Typing TypePhase = iota
	HoldingFull
	Deleting
	HoldingEmpty
)

func (p TypePhase) String() string {
	switch p {
	case Typing:
		return "typing"
	case HoldingFull:
		return "holding-full"
	case Deleting:
		return "deleting"
	case HoldingEmpty:
		return "holding-empty"
	default:
		return fmt.Sprintf("TypePhase(%d)", uint8(p))
	}
}

type TypewriterConfig struct {
	TypeSpeed   time.Duration `yaml:"type_speed" json:"type_speed"`
	DeleteSpeed time.Duration `yaml:"delete_speed" json:"delete_speed"`
	HoldFull    time.Duration `yaml:"hold_full" json:"hold_full"`
	HoldEmpty   time.Duration `yaml:"hold_empty" json:"hold_empty"`
}

func DefaultTypewriterConfig() TypewriterConfig {
	return TypewriterConfig{
		TypeSpeed:   100 * time.Millisecond,
		DeleteSpeed: 50 * time.Millisecond,
		HoldFull:    2 * time.Second,
		HoldEmpty:   500 * time.Millisecond,
	}
}

func (c TypewriterConfig) Validate() error {
	if c.TypeSpeed < 0 || c.DeleteSpeed < 0 || c.HoldFull < 0 || c.HoldEmpty < 0 {
		return fmt.Errorf("%w: typewriter timings", ErrInvalidDuration)
	}
	return nil
}

// Typewriter cycles through words, typing and deleting one rune per step.
// After the last word it wraps to the first.
type Typewriter struct {
	words    [][]rune
	cfg      TypewriterConfig
	clock    Clock
	onChange func(string)

	phase   TypePhase
	word    int
	n       int
	timer   Timer
	mounted bool
}

func NewTypewriter(words []string, cfg TypewriterConfig, clock Clock) (*Typewriter, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Typewriter{cfg: cfg, clock: clock}
	for _, w := range words {
		t.words = append(t.words, []rune(w))
	}
	return t, nil
}

func (t *Typewriter) OnChange(fn func(string)) { t.onChange = fn }

// Mount starts typing the first word from an empty display.
func (t *Typewriter) Mount() error {
	if t.mounted {
		return ErrAlreadyMounted
	}
	t.mounted = true
	t.phase, t.word, t.n = Typing, 0, 0
	t.schedule(t.cfg.TypeSpeed)
	return nil
}

func (t *Typewriter) Unmount() {
	if !t.mounted {
		return
	}
	t.mounted = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Text is the currently displayed prefix.
func (t *Typewriter) Text() string {
	w := t.words[t.word]
	n := min(max(t.n, 0), len(w))
	return string(w[:n])
}

func (t *Typewriter) Phase() TypePhase { return t.phase }

// Word is the index of the word being typed or deleted.
func (t *Typewriter) Word() int { return t.word }

func (t *Typewriter) schedule(d time.Duration) {
	t.timer = t.clock.AfterFunc(d, t.step)
}

func (t *Typewriter) step() {
	t.timer = nil
	if !t.mounted {
		return
	}
	w := t.words[t.word]
	switch t.phase {
	case Typing:
		if t.n < len(w) {
			t.n++
		}
		if t.n >= len(w) {
			t.phase = HoldingFull
			t.schedule(t.cfg.HoldFull)
		} else {
			t.schedule(t.cfg.TypeSpeed)
		}
	case HoldingFull:
		t.phase = Deleting
		t.schedule(t.cfg.DeleteSpeed)
		return
	case Deleting:
		if t.n > 0 {
			t.n--
		}
		if t.n == 0 {
			t.phase = HoldingEmpty
			t.schedule(t.cfg.HoldEmpty)
		} else {
			t.schedule(t.cfg.DeleteSpeed)
		}
	case HoldingEmpty:
		t.word = (t.word + 1) % len(t.words)
		t.phase = Typing
		t.schedule(t.cfg.TypeSpeed)
		return
	}
	if t.onChange != nil {
		t.onChange(t.Text())
	}
}
