package metrics

import (
	"math"

	"github.com/san-kum/roundphysics/internal/body"
)

// KineticEnergy is the mean total kinetic energy across observed frames.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies []*body.Body, t float64) {
	e.totalEnergy += TotalKineticEnergy(bodies)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of total kinetic energy from
// the first non-zero sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []*body.Body, t float64) {
	energy := TotalKineticEnergy(bodies)

	if e.initialEnergy == 0 {
		e.initialEnergy = energy
		return
	}

	drift := math.Abs(energy-e.initialEnergy) / e.initialEnergy
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
}

// Momentum is the magnitude of total linear momentum at the last frame.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(bodies []*body.Body, t float64) {
	var px, py float64
	for _, b := range bodies {
		p := b.Momentum()
		px += p.X
		py += p.Y
	}
	m.value = math.Hypot(px, py)
}

func (m *Momentum) Value() float64 { return m.value }

func (m *Momentum) Reset() { m.value = 0 }

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(bodies []*body.Body, t float64) {
	for _, b := range bodies {
		m.max = math.Max(m.max, b.Vel.Length())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
