package motiontest

import (
	"sort"
	"time"

	"github.com/Zachkp/folio/internal/motion"
)

// Clock is a manual clock. Timers fire only from Advance, in deadline order.
type Clock struct {
	now    time.Time
	seq    int
	timers []*timer

	Started int
	Stopped int
	Fired   int
}

type timer struct {
	c    *Clock
	at   time.Time
	seq  int
	fn   func()
	dead bool
}

var _ motion.Clock = (*Clock)(nil)

func NewClock(start time.Time) *Clock { return &Clock{now: start} }

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) AfterFunc(d time.Duration, fn func()) motion.Timer {
	c.seq++
	t := &timer{c: c, at: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	c.Started++
	return t
}

func (t *timer) Stop() bool {
	if t.dead {
		return false
	}
	t.dead = true
	t.c.remove(t)
	t.c.Stopped++
	return true
}

func (c *Clock) remove(t *timer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
			return
		}
	}
}

// Advance moves time forward by d, firing due timers. Timers scheduled by a
// firing callback also fire if they fall within the window.
func (c *Clock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		t := c.nextDue(end)
		if t == nil {
			break
		}
		c.now = t.at
		t.dead = true
		c.remove(t)
		c.Fired++
		t.fn()
	}
	c.now = end
}

func (c *Clock) nextDue(end time.Time) *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
	if t := c.timers[0]; !t.at.After(end) {
		return t
	}
	return nil
}

// PendingTimers is the number of timers neither fired nor stopped.
func (c *Clock) PendingTimers() int { return len(c.timers) }
