// Package metrics measures a running scene frame by frame.
package metrics

import "github.com/san-kum/roundphysics/internal/body"

// Metric folds per-frame body state into a single number.
type Metric interface {
	Name() string
	Observe(bodies []*body.Body, t float64)
	Value() float64
	Reset()
}

// TotalKineticEnergy sums ½mv² over bodies.
func TotalKineticEnergy(bodies []*body.Body) float64 {
	total := 0.0
	for _, b := range bodies {
		total += b.KineticEnergy()
	}
	return total
}

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewMaxSpeed(),
	}
}
