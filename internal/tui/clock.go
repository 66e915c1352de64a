package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type TickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Clock hands engine frames to the bubbletea tick loop, so every frame runs
// on the program's update goroutine.
type Clock struct {
	mu      sync.Mutex
	pending func(ts float64)
	start   time.Time
}

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) ScheduleNextFrame(cb func(ts float64)) {
	c.mu.Lock()
	c.pending = cb
	c.mu.Unlock()
}

// Fire runs the pending frame, if any, stamped with t.
func (c *Clock) Fire(t time.Time) bool {
	c.mu.Lock()
	cb := c.pending
	c.pending = nil
	c.mu.Unlock()

	if cb == nil {
		return false
	}
	cb(float64(t.Sub(c.start).Microseconds())/1000 + 1)
	return true
}
