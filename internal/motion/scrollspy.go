package motion

// ScrollMarks are the scroll offsets past which page chrome appears.
type ScrollMarks struct {
	Scrolled  float64 `yaml:"scrolled" json:"scrolled"`
	Indicator float64 `yaml:"indicator" json:"indicator"`
	BackToTop float64 `yaml:"back_to_top" json:"back_to_top"`
}

func DefaultScrollMarks() ScrollMarks {
	return ScrollMarks{Scrolled: 50, Indicator: 300, BackToTop: 500}
}

// SpySection is a navigable section.
type SpySection struct {
	ID string
	El Element
}

// InView is recomputed on every scroll or resize. Unlike a reveal it is not
// one-shot.
type InView struct {
	Active        string
	Scrolled      bool
	ShowIndicator bool
	ShowBackToTop bool
	Progress      float64
}

// ComputeInView picks the last section whose top sits at or above the middle
// of the viewport. With no such section the first one is active.
func ComputeInView(sections []SpySection, viewport Rect, marks ScrollMarks) InView {
	v := InView{
		Scrolled:      viewport.Y > marks.Scrolled,
		ShowIndicator: viewport.Y > marks.Indicator,
		ShowBackToTop: viewport.Y > marks.BackToTop,
	}
	if len(sections) == 0 {
		return v
	}
	v.Active = sections[0].ID
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].El.Bounds().Y-viewport.Y <= viewport.H/2 {
			v.Active = sections[i].ID
			break
		}
	}
	var docHeight float64
	for _, s := range sections {
		if b := s.El.Bounds().Bottom(); b > docHeight {
			docHeight = b
		}
	}
	if scrollable := docHeight - viewport.H; scrollable > 0 {
		v.Progress = clamp01(viewport.Y / scrollable)
	}
	return v
}

// ScrollSpy tracks InView for a set of sections.
type ScrollSpy struct {
	sections []SpySection
	marks    ScrollMarks
	viewport Rect
	state    InView
	onChange func(InView)
	subs     []Subscription
}

func NewScrollSpy(sections []SpySection, marks ScrollMarks, size Vec2) *ScrollSpy {
	s := &ScrollSpy{sections: sections, marks: marks, viewport: Rect{W: size.X, H: size.Y}}
	s.state = ComputeInView(sections, s.viewport, marks)
	return s
}

func (s *ScrollSpy) OnChange(fn func(InView)) { s.onChange = fn }

func (s *ScrollSpy) State() InView { return s.state }

func (s *ScrollSpy) Mount(src Source) {
	s.subs = append(s.subs,
		src.Subscribe(Scroll, func(ev Event) {
			s.viewport.Y = ev.ScrollY
			s.update()
		}),
		src.Subscribe(Resize, func(ev Event) {
			s.viewport = Rect{Y: ev.ScrollY, W: ev.Viewport.X, H: ev.Viewport.Y}
			s.update()
		}),
	)
}

func (s *ScrollSpy) Unmount() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

func (s *ScrollSpy) update() {
	next := ComputeInView(s.sections, s.viewport, s.marks)
	if next == s.state {
		return
	}
	s.state = next
	if s.onChange != nil {
		s.onChange(next)
	}
}
