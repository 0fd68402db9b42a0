package clock

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the tick cadence used when none is configured.
const DefaultInterval = time.Second

// Ticker is the single shared tick source for every countdown on screen. It
// only runs while at least one subscriber is registered.
type Ticker struct {
	clock    Clock
	interval time.Duration

	mu    sync.Mutex
	subs  map[uint64]*subscriber
	next  uint64
	timer Timer
	gen   uint64
}

type subscriber struct {
	id     uint64
	fn     func(now time.Time)
	active atomic.Bool
}

// NewTicker creates a stopped Ticker. A non-positive interval falls back to
// DefaultInterval.
func NewTicker(c Clock, interval time.Duration) *Ticker {
	if c == nil {
		c = Real()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		clock:    c,
		interval: interval,
		subs:     make(map[uint64]*subscriber),
	}
}

// Clock returns the time source behind the ticker.
func (t *Ticker) Clock() Clock {
	return t.clock
}

// Now is shorthand for t.Clock().Now().
func (t *Ticker) Now() time.Time {
	return t.clock.Now()
}

// Subscribe registers fn to run on every tick and returns a function that
// removes it. Removing the last subscriber stops the underlying timer. No
// new invocation of fn starts once the returned function has been called.
func (t *Ticker) Subscribe(fn func(now time.Time)) (unsubscribe func()) {
	t.mu.Lock()
	t.next++
	s := &subscriber{id: t.next, fn: fn}
	s.active.Store(true)
	t.subs[s.id] = s
	if t.timer == nil {
		t.scheduleLocked()
	}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(s) })
	}
}

// Subscribers reports the number of registered subscribers.
func (t *Ticker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Running reports whether a tick is currently scheduled.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Ticker) remove(s *subscriber) {
	s.active.Store(false)
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, s.id)
	if len(t.subs) == 0 && t.timer != nil {
		t.timer.Stop()
		t.timer = nil
		t.gen++
	}
}

// scheduleLocked arms the next tick on the next interval boundary so every
// display flips its seconds at the same moment.
func (t *Ticker) scheduleLocked() {
	now := t.clock.Now()
	delay := now.Truncate(t.interval).Add(t.interval).Sub(now)
	if delay <= 0 {
		delay = t.interval
	}
	gen := t.gen
	t.timer = t.clock.AfterFunc(delay, func() { t.fire(gen) })
}

func (t *Ticker) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || len(t.subs) == 0 {
		t.mu.Unlock()
		return
	}
	now := t.clock.Now()
	subs := make([]*subscriber, 0, len(t.subs))
	for _, s := range t.subs {
		subs = append(subs, s)
	}
	t.scheduleLocked()
	t.mu.Unlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	for _, s := range subs {
		if s.active.Load() {
			s.fn(now)
		}
	}
}
