// Package random hands out seeded random numbers, colors and bodies.
//
// A Random with a given seed always produces the same sequence, which keeps
// scenes and wander paths reproducible.
package random

import (
	"math"
	"math/rand"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/palette"
)

const (
	MinMass = 0.5
	MaxMass = 5.0
	// RadiusPerMass scales mass to the radius of generated bodies.
	RadiusPerMass = 4.0
	// Margin keeps generated bodies away from the viewport edges.
	Margin = 100.0
)

type Random struct {
	rng  *rand.Rand
	seed int64
}

func New(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

func (r *Random) Seed() int64 { return r.seed }

func (r *Random) Float64() float64 { return r.rng.Float64() }

// Number returns a value in [min, max). Reversed bounds are swapped.
func (r *Random) Number(min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	return min + r.rng.Float64()*(max-min)
}

// Angle returns a heading in [0, 2π).
func (r *Random) Angle() float64 { return r.Number(0, 2*math.Pi) }

func (r *Random) Color() string { return palette.Names[r.rng.Intn(len(palette.Names))] }

// Body builds a random body placed at whole-pixel coordinates inside bounds.
func (r *Random) Body(bounds behavior.Bounds) *body.Body {
	w, h := bounds.Size()
	mass := r.Number(MinMass, MaxMass)
	color := r.Color()
	x := math.Floor(r.Number(Margin, w-Margin))
	y := math.Floor(r.Number(Margin, h-Margin))

	// mass and radius are positive and the position finite.
	b, _ := body.New(mass, mass*RadiusPerMass, color, x, y)
	return b
}

// Fork returns an independent generator seeded from r, so stateful behaviors
// on different bodies never share a source.
func (r *Random) Fork() *Random { return New(r.rng.Int63()) }
