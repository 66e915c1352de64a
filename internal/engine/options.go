package engine

import (
	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/integrator"
)

type Option func(*Engine)

func WithIntegrator(in integrator.Integrator) Option {
	return func(e *Engine) {
		if in != nil {
			e.integrator = in
		}
	}
}

func WithInput(in Input) Option {
	return func(e *Engine) { e.input = in }
}

func WithBackground(color string) Option {
	return func(e *Engine) { e.background = color }
}

func WithBounds(b behavior.Bounds) Option {
	return func(e *Engine) {
		if b != nil {
			e.bounds = b
		}
	}
}

// WithParallel spreads per-body behaviors over workers goroutines. Body
// behaviors must not share mutable state across bodies when this is set.
func WithParallel(workers int) Option {
	return func(e *Engine) { e.workers = workers }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}
