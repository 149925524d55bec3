// Package content holds the portfolio copy and effect tuning, loaded from a
// YAML document shared by the web and terminal front-ends.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/folio/internal/motion"
)

//go:embed portfolio.yaml
var defaultDocument []byte

var (
	ErrMissingName = errors.New("content: profile name is required")
	ErrNoRoles     = errors.New("content: at least one role is required")
)

// Section identifiers in page order.
var Sections = []string{"home", "about", "skills", "projects", "experience", "contact"}

type Content struct {
	Profile    Profile      `yaml:"profile" json:"profile"`
	Roles      []string     `yaml:"roles" json:"roles"`
	About      string       `yaml:"about" json:"about"`
	Stats      []Stat       `yaml:"stats" json:"stats"`
	Skills     []SkillGroup `yaml:"skills" json:"skills"`
	Projects   []Project    `yaml:"projects" json:"projects"`
	Experience []Entry      `yaml:"experience" json:"experience"`
	Education  []Entry      `yaml:"education" json:"education"`
	Contact    Contact      `yaml:"contact" json:"contact"`
	Effects    Effects      `yaml:"effects" json:"effects"`
}

type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Headline string `yaml:"headline" json:"headline"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Location string `yaml:"location" json:"location"`
}

// Stat is a count-up figure.
type Stat struct {
	Label  string `yaml:"label" json:"label"`
	Value  int    `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix"`
}

type SkillGroup struct {
	Name  string   `yaml:"name" json:"name"`
	Items []string `yaml:"items" json:"items"`
}

type Project struct {
	Title   string   `yaml:"title" json:"title"`
	Summary string   `yaml:"summary" json:"summary"`
	Tags    []string `yaml:"tags" json:"tags"`
	Repo    string   `yaml:"repo,omitempty" json:"repo,omitempty"`
	Demo    string   `yaml:"demo,omitempty" json:"demo,omitempty"`
}

// Entry is a job or a credential.
type Entry struct {
	Title   string   `yaml:"title" json:"title"`
	Org     string   `yaml:"org" json:"org"`
	Start   string   `yaml:"start" json:"start"`
	End     string   `yaml:"end" json:"end"`
	Logo    string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Bullets []string `yaml:"bullets" json:"bullets"`
}

type Contact struct {
	Email  string `yaml:"email" json:"email"`
	Phone  string `yaml:"phone" json:"phone"`
	GitHub string `yaml:"github" json:"github"`
}

type CounterConfig struct {
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Effects gathers every animation knob in one place.
type Effects struct {
	FrameInterval time.Duration           `yaml:"frame_interval" json:"frame_interval"`
	Cursor        motion.CursorConfig     `yaml:"cursor" json:"cursor"`
	Trail         motion.TrailConfig      `yaml:"trail" json:"trail"`
	Reveal        motion.RevealConfig     `yaml:"reveal" json:"reveal"`
	RevealStagger time.Duration           `yaml:"reveal_stagger" json:"reveal_stagger"`
	Counter       CounterConfig           `yaml:"counter" json:"counter"`
	Typewriter    motion.TypewriterConfig `yaml:"typewriter" json:"typewriter"`
	Tilt          motion.TiltConfig       `yaml:"tilt" json:"tilt"`
	ParallaxSpeed float64                 `yaml:"parallax_speed" json:"parallax_speed"`
	Marks         motion.ScrollMarks      `yaml:"marks" json:"marks"`
	Preloader     motion.PreloaderConfig  `yaml:"preloader" json:"preloader"`
}

func DefaultEffects() Effects {
	return Effects{
		FrameInterval: motion.DefaultFrameInterval,
		Cursor:        motion.DefaultCursorConfig(),
		Trail:         motion.TrailConfig{Length: motion.DefaultTrailLength},
		Reveal:        motion.DefaultRevealConfig(),
		RevealStagger: 80 * time.Millisecond,
		Counter:       CounterConfig{Duration: 2 * time.Second},
		Typewriter:    motion.DefaultTypewriterConfig(),
		Tilt:          motion.DefaultTiltConfig(),
		ParallaxSpeed: 0.5,
		Marks:         motion.DefaultScrollMarks(),
		Preloader:     motion.DefaultPreloaderConfig(),
	}
}

// Default returns the embedded portfolio.
func Default() (*Content, error) {
	return Parse(defaultDocument)
}

// Load reads path, or the embedded document when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes a document over the default effects and validates it.
func Parse(data []byte) (*Content, error) {
	c := &Content{Effects: DefaultEffects()}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Content) Validate() error {
	var errs []error
	if c.Profile.Name == "" {
		errs = append(errs, ErrMissingName)
	}
	if len(c.Roles) == 0 {
		errs = append(errs, ErrNoRoles)
	}
	errs = append(errs, c.Effects.Validate())
	return errors.Join(errs...)
}

func (e Effects) Validate() error {
	var errs []error
	if err := e.Cursor.Ring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cursor.ring: %w", err))
	}
	if err := e.Cursor.Scale.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cursor.scale: %w", err))
	}
	if _, err := motion.NewTrail(e.Trail.Length); err != nil {
		errs = append(errs, fmt.Errorf("trail: %w", err))
	}
	if err := e.Reveal.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("reveal: %w", err))
	}
	if e.Counter.Duration < 0 {
		errs = append(errs, fmt.Errorf("counter: %w", motion.ErrInvalidDuration))
	}
	if err := e.Tilt.Spring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tilt: %w", err))
	}
	if err := e.Typewriter.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("typewriter: %w", err))
	}
	if e.RevealStagger < 0 {
		errs = append(errs, fmt.Errorf("reveal_stagger: %w", motion.ErrInvalidDelay))
	}
	if err := e.Preloader.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("preloader: %w", err))
	}
	if e.FrameInterval < 0 {
		errs = append(errs, fmt.Errorf("frame_interval: %w", motion.ErrInvalidDuration))
	}
	return errors.Join(errs...)
}
