package integrator

import (
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

// Verlet is time-corrected Verlet integration. It carries no velocity of
// its own; motion is extrapolated from the position history, with the
// displacement rescaled by dt/dtPrev so a variable frame time does not
// inject energy:
//
//	next = p + (p - prev)*(dt/dtPrev) + accPrev*dtPrev*dt/2 + a*dt²/2
//
// It needs two consecutive positive timesteps, so the first two frames
// after a (re)start do not move anything. On those frames the position
// history is rebuilt from Vel so a body's initial velocity survives.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return string(KindVerlet) }

func (v *Verlet) Integrate(bodies []*body.Body, dt, dtPrev float64) {
	if dt <= 0 || dtPrev <= 0 {
		for _, b := range bodies {
			if dt > 0 {
				b.PosPrev = b.Pos.Sub(b.Vel.Scale(dt))
			} else {
				b.PosPrev = b.Pos
			}
			b.AccPrev = vec.Zero
			b.Acc = vec.Zero
		}
		return
	}

	ratio := dt / dtPrev
	for _, b := range bodies {
		next := b.Pos.
			Add(b.Pos.Sub(b.PosPrev).Scale(ratio)).
			Add(b.AccPrev.Scale(0.5 * dtPrev * dt)).
			Add(b.Acc.Scale(0.5 * dt * dt))

		b.PosPrev = b.Pos
		b.Pos = next
		b.Vel = next.Sub(b.PosPrev).Scale(1 / dt)

		b.AccPrev = b.Acc
		b.Acc = vec.Zero
	}
}
