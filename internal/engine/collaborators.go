package engine

import (
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

// Clock schedules the next frame. Timestamps are milliseconds and must
// increase between calls.
type Clock interface {
	ScheduleNextFrame(cb func(ts float64))
}

// Renderer clears the surface with background and paints one filled circle
// per body.
type Renderer interface {
	Draw(background string, bodies []*body.Body)
}

// Input reports the pointer in surface coordinates. ok is false when the
// pointer is not over the surface.
type Input interface {
	Pointer() (p vec.Vec2, ok bool)
}

// Observer is notified after integration on every frame.
type Observer interface {
	OnFrame(frame int, t float64, bodies []*body.Body)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame int, t float64, bodies []*body.Body)

func (f ObserverFunc) OnFrame(frame int, t float64, bodies []*body.Body) { f(frame, t, bodies) }
