package metrics

import (
	"sync"

	"github.com/san-kum/roundphysics/internal/body"
)

// Frame is one sampled frame of a run.
type Frame struct {
	Index  int
	T      float64
	States []body.State
}

// Recorder is a frame observer that feeds metrics and keeps the kinetic
// energy series plus body snapshots every Every frames.
type Recorder struct {
	Every int

	mu      sync.Mutex
	metrics []Metric
	times   []float64
	energy  []float64
	frames  []Frame
	limit   int
}

func NewRecorder(every int, ms ...Metric) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every, metrics: ms}
}

// WithLimit caps the energy series to the latest n samples, for live views.
func (r *Recorder) WithLimit(n int) *Recorder {
	r.limit = n
	return r
}

func (r *Recorder) OnFrame(frame int, t float64, bodies []*body.Body) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.metrics {
		m.Observe(bodies, t)
	}

	r.times = append(r.times, t)
	r.energy = append(r.energy, TotalKineticEnergy(bodies))
	if r.limit > 0 && len(r.energy) > r.limit {
		drop := len(r.energy) - r.limit
		r.times = r.times[drop:]
		r.energy = r.energy[drop:]
	}

	if r.limit == 0 && (frame-1)%r.Every == 0 {
		states := make([]body.State, len(bodies))
		for i, b := range bodies {
			states[i] = b.Snapshot()
		}
		r.frames = append(r.frames, Frame{Index: frame, T: t, States: states})
	}
}

func (r *Recorder) Energy() ([]float64, []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.times...), append([]float64(nil), r.energy...)
}

func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Summary returns the current value of every metric keyed by name.
func (r *Recorder) Summary() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.metrics {
		m.Reset()
	}
	r.times = nil
	r.energy = nil
	r.frames = nil
}
