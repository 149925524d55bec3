// Package tui renders the portfolio in a terminal. Mouse motion, wheel
// scrolling, focus changes and resizes are fed to the motion engine as
// pointer and scroll events, so every effect runs exactly as on the web.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/motion"
	"github.com/Zachkp/folio/internal/store"
)

// Preferences persists small per-owner settings.
type Preferences interface {
	Preference(ctx context.Context, owner, key string) (string, error)
	SetPreference(ctx context.Context, owner, key, value string) error
}

type Options struct {
	Screen        tcell.Screen
	Content       *content.Store
	Prefs         Preferences
	Owner         string
	FrameInterval time.Duration
	Rand          *rand.Rand
	Logger        *slog.Logger
}

type App struct {
	screen tcell.Screen
	docs   *content.Store
	prefs  Preferences
	owner  string
	rnd    *rand.Rand
	logger *slog.Logger

	loop  *motion.Loop
	src   *motion.Dispatcher
	view  *view
	theme content.Theme
	quit  context.CancelFunc
	err   error
}

func New(opts Options) (*App, error) {
	if opts.Screen == nil || opts.Content == nil {
		return nil, errors.New("tui: screen and content are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Owner == "" {
		opts.Owner = "terminal"
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = opts.Content.Get().Effects.FrameInterval
	}
	return &App{
		screen: opts.Screen,
		docs:   opts.Content,
		prefs:  opts.Prefs,
		owner:  opts.Owner,
		rnd:    opts.Rand,
		logger: opts.Logger,
		loop:   motion.NewLoop(opts.FrameInterval, opts.Logger),
		src:    motion.NewDispatcher(),
		theme:  content.ThemeDark,
	}, nil
}

// Run takes over the terminal until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	a.screen.HideCursor()

	a.theme = a.loadTheme(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.quit = cancel

	a.loop.Post(func() { a.rebuild(true) })
	stopWatching := a.docs.OnChange(func(*content.Content) {
		a.loop.Post(func() { a.rebuild(false) })
	})
	defer stopWatching()
	go a.pump()

	err := a.loop.Run(ctx)
	if a.view != nil {
		a.view.unmount()
	}
	if a.err != nil {
		return a.err
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump forwards terminal events to the loop until the screen is finalized.
func (a *App) pump() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		a.loop.Post(func() { a.handle(ev) })
	}
}

func (a *App) fail(err error) {
	a.err = err
	a.quit()
}

// rebuild lays the page out for the current screen and content, keeping the
// scroll position.
func (a *App) rebuild(first bool) {
	scroll := 0
	if a.view != nil {
		scroll = a.view.scroll
		a.view.unmount()
	}
	v, err := newView(viewConfig{
		screen:    a.screen,
		content:   a.docs.Get(),
		theme:     a.theme,
		frames:    a.loop,
		clock:     a.loop,
		src:       a.src,
		rnd:       a.rnd,
		preloader: first,
	})
	if err != nil {
		a.fail(fmt.Errorf("build view: %w", err))
		return
	}
	if err := v.mount(); err != nil {
		a.fail(fmt.Errorf("mount view: %w", err))
		return
	}
	v.setScroll(scroll)
	a.view = v
}

func (a *App) handle(ev tcell.Event) {
	v := a.view
	if v == nil {
		return
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.key(ev)
	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			v.scrollBy(-3)
		case btn&tcell.WheelDown != 0:
			v.scrollBy(3)
		}
		v.pointer(ev.Position())
	case *tcell.EventFocus:
		if !ev.Focused {
			v.leave()
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		a.screen.Sync()
		if w != v.width {
			a.rebuild(false)
			return
		}
		v.resize(w, h)
	}
}

func (a *App) key(ev *tcell.EventKey) {
	v := a.view
	page := max(v.viewportRows()-2, 1)
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit()
	case tcell.KeyUp:
		v.scrollBy(-1)
	case tcell.KeyDown:
		v.scrollBy(1)
	case tcell.KeyPgUp:
		v.scrollBy(-page)
	case tcell.KeyPgDn:
		v.scrollBy(page)
	case tcell.KeyHome:
		v.setScroll(0)
	case tcell.KeyEnd:
		v.setScroll(v.maxScroll())
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			a.quit()
		case r == 't':
			a.toggleTheme()
		case r == 'k':
			v.scrollBy(-1)
		case r == 'j':
			v.scrollBy(1)
		case r >= '1' && r <= '9':
			if i := int(r - '1'); i < len(v.doc.Sections) {
				v.jump(v.doc.Sections[i].ID)
			}
		}
	}
}

func (a *App) toggleTheme() {
	a.theme = a.theme.Toggle()
	a.view.setTheme(a.theme)
	if a.prefs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.prefs.SetPreference(ctx, a.owner, content.ThemeKey, string(a.theme)); err != nil {
		a.logger.Warn("saving theme", "error", err)
	}
}

func (a *App) loadTheme(ctx context.Context) content.Theme {
	if a.prefs == nil {
		return content.ThemeDark
	}
	v, err := a.prefs.Preference(ctx, a.owner, content.ThemeKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("loading theme", "error", err)
		}
		return content.ThemeDark
	}
	t, err := content.ParseTheme(v)
	if err != nil {
		a.logger.Warn("stored theme ignored", "value", v)
	}
	return t
}
