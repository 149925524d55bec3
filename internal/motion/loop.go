package motion

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is the single-goroutine runtime behind Frames and Clock. Input
// handlers, timer callbacks and frame callbacks all run on the goroutine that
// calls Run, so components never observe a torn write.
type Loop struct {
	interval time.Duration
	logger   *slog.Logger

	posts chan func()
	done  chan struct{}

	mu       sync.Mutex
	nextID   FrameID
	pending  []queuedFrame
	inflight map[FrameID]struct{}

	frameCount atomic.Uint64
	running    atomic.Bool
	stopOnce   sync.Once
}

type queuedFrame struct {
	id FrameID
	fn FrameFunc
}

var (
	_ Frames = (*Loop)(nil)
	_ Clock  = (*Loop)(nil)
)

// NewLoop creates a loop ticking every interval. A non-positive interval
// falls back to DefaultFrameInterval.
func NewLoop(interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		interval: interval,
		logger:   logger,
		posts:    make(chan func(), 256),
		done:     make(chan struct{}),
		inflight: make(map[FrameID]struct{}),
	}
}

// Run processes posted callbacks and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyMounted
	}
	defer l.stopOnce.Do(func() { close(l.done) })

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("motion loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("motion loop stopped", "frames", l.frameCount.Load())
			return ctx.Err()
		case fn := <-l.posts:
			l.guard("post", fn)
		case now := <-ticker.C:
			l.runFrame(now)
		}
	}
}

// Post queues fn to run on the loop goroutine. Posts after the loop has
// stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.posts <- fn:
	case <-l.done:
	}
}

func (l *Loop) Interval() time.Duration { return l.interval }

// Frames reports how many frames have been delivered.
func (l *Loop) Frames() uint64 { return l.frameCount.Load() }

func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.pending = append(l.pending, queuedFrame{id: l.nextID, fn: fn})
	l.inflight[l.nextID] = struct{}{}
	return l.nextID
}

func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, id)
	for i, q := range l.pending {
		if q.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

func (l *Loop) runFrame(now time.Time) {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, q := range batch {
		// a callback earlier in the batch may have cancelled this one
		l.mu.Lock()
		_, live := l.inflight[q.id]
		delete(l.inflight, q.id)
		l.mu.Unlock()
		if live {
			l.guard("frame", func() { q.fn(now) })
		}
	}
	l.frameCount.Add(1)
}

// guard runs fn, logging a panic instead of ending Run.
func (l *Loop) guard(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("motion callback panicked", "kind", kind, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}

func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc runs fn on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	return t
}

const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
