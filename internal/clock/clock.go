// Package clock provides frame schedulers for the engine.
//
// A scheduler hands the engine one callback at a time; the engine asks for
// the next frame from inside the current one, so callbacks never overlap.
// Timestamps are milliseconds and strictly increase.
package clock

import (
	"sync"
	"time"
)

// DefaultInterval is the fallback refresh period when no display-driven
// callback is available.
const DefaultInterval = time.Second / 60

// Ticker runs scheduled callbacks on a fixed interval from a single
// goroutine.
type Ticker struct {
	mu      sync.Mutex
	pending func(ts float64)
	start   time.Time
	ticker  *time.Ticker
	stop    chan struct{}
	once    sync.Once
}

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &Ticker{
		start:  time.Now(),
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Ticker) ScheduleNextFrame(cb func(ts float64)) {
	t.mu.Lock()
	t.pending = cb
	t.mu.Unlock()
}

func (t *Ticker) run() {
	for {
		select {
		case now := <-t.ticker.C:
			t.mu.Lock()
			cb := t.pending
			t.pending = nil
			t.mu.Unlock()
			if cb != nil {
				cb(float64(now.Sub(t.start).Microseconds())/1000 + 1)
			}
		case <-t.stop:
			return
		}
	}
}

func (t *Ticker) Close() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
}

// Manual is a deterministic scheduler driven by explicit timestamps, used
// for headless runs and tests.
type Manual struct {
	pending func(ts float64)
	now     float64
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) ScheduleNextFrame(cb func(ts float64)) { m.pending = cb }

// Pending reports whether a frame is waiting to run.
func (m *Manual) Pending() bool { return m.pending != nil }

// Now is the timestamp of the last frame run.
func (m *Manual) Now() float64 { return m.now }

// Advance runs the pending frame at ts. It returns false when nothing was
// scheduled.
func (m *Manual) Advance(ts float64) bool {
	cb := m.pending
	if cb == nil {
		return false
	}
	m.pending = nil
	m.now = ts
	cb(ts)
	return true
}

// Run advances up to n frames spaced stepMs apart, starting one step after
// the last timestamp. It returns the number of frames that ran.
func (m *Manual) Run(n int, stepMs float64) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !m.Advance(m.now + stepMs) {
			break
		}
		ran++
	}
	return ran
}
