package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Store holds the live content and swaps it atomically on reload.
type Store struct {
	cur atomic.Pointer[Content]

	mu        sync.Mutex
	nextID    int
	listeners []listener
}

type listener struct {
	id int
	fn func(*Content)
}

func NewStore(c *Content) *Store {
	s := &Store{}
	s.cur.Store(c)
	return s
}

func (s *Store) Get() *Content { return s.cur.Load() }

// Set swaps in c and notifies listeners on the caller's goroutine.
func (s *Store) Set(c *Content) {
	s.cur.Store(c)
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l.fn(c)
	}
}

// OnChange registers fn to run after every Set. The returned func removes
// it and is safe to call more than once.
func (s *Store) OnChange(fn func(*Content)) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// Watch reloads path whenever it is written or replaced, until ctx ends.
// Edits that fail to parse or validate are logged and the previous content
// stays live. The parent directory is watched so editors that save by rename
// are picked up.
func (s *Store) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("watching content", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			c, err := Load(path)
			if err != nil {
				logger.Warn("content reload rejected", "path", path, "error", err)
				continue
			}
			s.Set(c)
			logger.Info("content reloaded", "path", path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher error", "error", err)
		}
	}
}
