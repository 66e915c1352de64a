// Package integrator advances body kinematics from accumulated acceleration.
//
// Integrators are stateless strategies and never own bodies. Both variants
// treat a non-positive timestep as "no motion" and still clear the
// acceleration accumulator, so forces never leak into the next frame.
package integrator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/roundphysics/internal/body"
)

var ErrUnknown = errors.New("integrator: unknown integrator")

type Integrator interface {
	// Integrate advances bodies by dt seconds. dtPrev is the previous
	// frame's timestep; schemes that do not need it ignore it.
	Integrate(bodies []*body.Body, dt, dtPrev float64)
	Name() string
}

type Kind string

const (
	KindEuler  Kind = "euler"
	KindVerlet Kind = "verlet"
)

type Registry struct {
	integrators map[Kind]func() Integrator
}

func NewRegistry() *Registry {
	r := &Registry{integrators: make(map[Kind]func() Integrator)}
	r.integrators[KindEuler] = func() Integrator { return NewImprovedEuler() }
	r.integrators[KindVerlet] = func() Integrator { return NewVerlet() }
	return r
}

func (r *Registry) Get(name string) (Integrator, error) {
	fn, ok := r.integrators[Kind(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknown, name, r.Names())
	}
	return fn(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.integrators))
	for k := range r.integrators {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// New returns the integrator for kind using the default registry.
func New(kind Kind) (Integrator, error) {
	return NewRegistry().Get(string(kind))
}
