// Package engine drives the per-frame simulation loop.
//
// An Engine owns its bodies, the active integrator and the environment
// forces. Each frame it computes dt from the clock timestamp, applies
// environment and body behaviors, integrates, notifies observers, renders and
// asks the clock for the next frame. Frames never overlap: the next one is
// scheduled only after the current one has finished.
package engine
