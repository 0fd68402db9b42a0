package clock

import (
	"sync"
	"time"
)

// Countdown is one display unit bound to the shared Ticker. It recomputes
// its RemainingTime from scratch on every tick and reports changes.
type Countdown struct {
	ticker   *Ticker
	target   time.Time
	onChange func(RemainingTime)

	mu    sync.Mutex
	last  RemainingTime
	unsub func()
}

// NewCountdown binds target to ticker. onChange may be nil. Call Start to
// begin receiving ticks and Stop when the display goes away.
func NewCountdown(ticker *Ticker, target time.Time, onChange func(RemainingTime)) *Countdown {
	return &Countdown{
		ticker:   ticker,
		target:   target,
		onChange: onChange,
		last:     Project(ticker.Now(), target),
	}
}

// Start subscribes to the ticker. Unknown targets never subscribe since
// there is nothing to count down.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsub != nil || !c.last.Known {
		return
	}
	c.unsub = c.ticker.Subscribe(c.tick)
}

// Stop unsubscribes from the ticker. It is safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Remaining returns the most recently computed value.
func (c *Countdown) Remaining() RemainingTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Target returns the instant being counted down to.
func (c *Countdown) Target() time.Time {
	return c.target
}

func (c *Countdown) tick(now time.Time) {
	r := Project(now, c.target)
	c.mu.Lock()
	changed := r != c.last
	c.last = r
	c.mu.Unlock()
	if changed && c.onChange != nil {
		c.onChange(r)
	}
}
