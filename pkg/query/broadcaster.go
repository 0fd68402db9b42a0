// Package query coalesces a rapid stream of text input into a single,
// settled value for list-filtering views.
package query

import (
	"sync"
	"time"

	"tableflip.dev/cinetime/pkg/clock"
)

// DefaultDelay is the quiet period before a value is committed.
const DefaultDelay = 300 * time.Millisecond

// Broadcaster debounces input. Every Input call replaces the pending value
// and restarts the quiet period; subscribers only ever see the value that
// was current when the input went quiet.
type Broadcaster struct {
	clock clock.Clock
	delay time.Duration

	mu        sync.Mutex
	pending   string
	committed string
	timer     clock.Timer
	gen       uint64
	closed    bool
	subs      map[uint64]func(string)
	nextSub   uint64
}

// New creates a Broadcaster. A non-positive delay falls back to DefaultDelay.
func New(c clock.Clock, delay time.Duration) *Broadcaster {
	if c == nil {
		c = clock.Real()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Broadcaster{
		clock: c,
		delay: delay,
		subs:  make(map[uint64]func(string)),
	}
}

// Input records a new raw value and reschedules the commit.
func (b *Broadcaster) Input(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.pending = v
	b.cancelLocked()
	gen := b.gen
	b.timer = b.clock.AfterFunc(b.delay, func() { b.commit(gen) })
}

// Flush commits the pending value now, cancelling the scheduled commit.
func (b *Broadcaster) Flush() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.cancelLocked()
	gen := b.gen
	b.mu.Unlock()
	b.commit(gen)
}

// Pending returns the latest raw value, committed or not.
func (b *Broadcaster) Pending() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Committed returns the last broadcast value.
func (b *Broadcaster) Committed() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.committed
}

// Subscribe registers fn for committed values and returns a function that
// removes it.
func (b *Broadcaster) Subscribe(fn func(string)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Close cancels any pending commit and drops all subscribers. Nothing is
// broadcast after Close returns.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
	b.closed = true
	b.subs = make(map[uint64]func(string))
}

func (b *Broadcaster) cancelLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
}

func (b *Broadcaster) commit(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	b.gen++
	if b.pending == b.committed {
		b.mu.Unlock()
		return
	}
	b.committed = b.pending
	v := b.committed
	subs := make([]func(string), 0, len(b.subs))
	for id := uint64(1); id <= b.nextSub; id++ {
		if fn, ok := b.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
