package motion

import "fmt"

// EventKind enumerates the input events the engine reacts to.
type EventKind uint8

const (
	PointerMove EventKind = iota + 1
	PointerEnter
	PointerLeave
	Scroll
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case PointerEnter:
		return "pointerenter"
	case PointerLeave:
		return "pointerleave"
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a raw input sample.
type Event struct {
	Kind EventKind

	// Pointer is set for pointer events, in viewport coordinates.
	Pointer Vec2

	// ScrollY is the document offset of the viewport top, set for Scroll
	// and Resize.
	ScrollY float64

	// Viewport is the viewport width and height, set for Resize.
	Viewport Vec2
}

// Handler receives events of one kind.
type Handler func(Event)

// Subscription is returned by Subscribe. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Source delivers input events to subscribers.
type Source interface {
	Subscribe(kind EventKind, h Handler) Subscription
}

// Dispatcher is an in-process Source. Handlers for one kind run in
// registration order. It is not safe for concurrent use; dispatch from the
// loop goroutine.
type Dispatcher struct {
	handlers map[EventKind][]*subscription

	subscribed   int
	unsubscribed int
}

var _ Source = (*Dispatcher)(nil)

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]*subscription)}
}

type subscription struct {
	d       *Dispatcher
	kind    EventKind
	h       Handler
	removed bool
}

func (d *Dispatcher) Subscribe(kind EventKind, h Handler) Subscription {
	s := &subscription{d: d, kind: kind, h: h}
	d.handlers[kind] = append(d.handlers[kind], s)
	d.subscribed++
	return s
}

func (s *subscription) Unsubscribe() {
	if s.removed {
		return
	}
	s.removed = true
	list := s.d.handlers[s.kind]
	for i, other := range list {
		if other == s {
			s.d.handlers[s.kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	s.d.unsubscribed++
}

// Dispatch delivers ev to every handler of its kind. Handlers removed during
// dispatch are skipped.
func (d *Dispatcher) Dispatch(ev Event) {
	list := d.handlers[ev.Kind]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*subscription, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		if !s.removed {
			s.h(ev)
		}
	}
}

// Active reports the number of live subscriptions.
func (d *Dispatcher) Active() int { return d.subscribed - d.unsubscribed }

// Totals reports lifetime subscribe and unsubscribe counts.
func (d *Dispatcher) Totals() (subscribed, unsubscribed int) {
	return d.subscribed, d.unsubscribed
}
