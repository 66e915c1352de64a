package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/vec"
)

var ErrRunning = errors.New("engine: already running")

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	DefaultBackground = "black"
	DefaultWidth      = 800
	DefaultHeight     = 600

	parallelMinChunk = 64
)

type Engine struct {
	clock    Clock
	renderer Renderer
	input    Input

	// mu guards everything a frame touches.
	mu          sync.Mutex
	bodies      []*body.Body
	environment []body.Behavior
	integrator  integrator.Integrator
	background  string
	bounds      behavior.Bounds
	observers   []Observer
	workers     int
	selected    *body.Body
	pointer     vec.Vec2

	prevTimestamp float64
	dt            float64
	dtPrev        float64
	elapsed       float64
	frame         int

	// stateMu guards the run token so Stop can be called from observers.
	stateMu sync.Mutex
	state   State
	gen     uint64
	ctx     context.Context
	done    chan struct{}
}

func New(clock Clock, renderer Renderer, opts ...Option) *Engine {
	e := &Engine{
		clock:      clock,
		renderer:   renderer,
		integrator: integrator.NewImprovedEuler(),
		background: DefaultBackground,
		bounds:     behavior.FixedBounds{W: DefaultWidth, H: DefaultHeight},
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) AddBody(mass, radius float64, color string, x, y float64) (*body.Body, error) {
	b, err := body.New(mass, radius, color, x, y)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.bodies = append(e.bodies, b)
	e.mu.Unlock()
	return b, nil
}

func (e *Engine) Add(b *body.Body) error {
	if b == nil {
		return fmt.Errorf("engine: nil body")
	}
	if !(b.Mass > 0) {
		return fmt.Errorf("engine: %w", body.ErrInvalidMass)
	}
	if !(b.Radius > 0) {
		return fmt.Errorf("engine: %w", body.ErrInvalidRadius)
	}
	e.mu.Lock()
	e.bodies = append(e.bodies, b)
	e.mu.Unlock()
	return nil
}

// RemoveBody removes the first body with the same mass, radius and color as
// matcher.
func (e *Engine) RemoveBody(matcher *body.Body) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, b := range e.bodies {
		if b.Equals(matcher) {
			e.removeAt(i)
			return true
		}
	}
	return false
}

// Remove removes exactly b, matched by identity.
func (e *Engine) Remove(b *body.Body) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, cur := range e.bodies {
		if cur == b {
			e.removeAt(i)
			return true
		}
	}
	return false
}

func (e *Engine) removeAt(i int) {
	if e.selected == e.bodies[i] {
		e.selected = nil
	}
	e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
}

func (e *Engine) ClearBodies() {
	e.mu.Lock()
	e.bodies = nil
	e.selected = nil
	e.mu.Unlock()
}

func (e *Engine) Bodies() []*body.Body {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*body.Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

func (e *Engine) ChangeIntegrator(kind integrator.Kind) error {
	in, err := integrator.New(kind)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.integrator = in
	e.mu.Unlock()
	return nil
}

func (e *Engine) Integrator() integrator.Integrator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.integrator
}

// SetEnvironmentForce installs a behavior applied to every body before its
// own behaviors. An existing environment force of the same concrete type is
// replaced.
func (e *Engine) SetEnvironmentForce(bh body.Behavior) {
	if bh == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	t := reflect.TypeOf(bh)
	for i, cur := range e.environment {
		if reflect.TypeOf(cur) == t {
			e.environment[i] = bh
			return
		}
	}
	e.environment = append(e.environment, bh)
}

func (e *Engine) ClearEnvironment() {
	e.mu.Lock()
	e.environment = nil
	e.mu.Unlock()
}

func (e *Engine) Environment() []body.Behavior {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]body.Behavior, len(e.environment))
	copy(out, e.environment)
	return out
}

func (e *Engine) ChangeBackground(color string) {
	e.mu.Lock()
	e.background = color
	e.mu.Unlock()
}

func (e *Engine) Background() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.background
}

func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	e.observers = append(e.observers, o)
	e.mu.Unlock()
}

// Bounds is the viewport used for pointer clamping and edge behaviors.
func (e *Engine) Bounds() behavior.Bounds { return e.bounds }

// Pointer returns the pointer position polled at the start of the current
// frame. It is meant for behavior providers running inside a frame.
func (e *Engine) Pointer() vec.Vec2 { return e.pointer }

// Select grabs the body nearest to point whose disc contains it.
func (e *Engine) Select(point vec.Vec2) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var best *body.Body
	bestDist := 0.0
	for _, b := range e.bodies {
		if !b.Contains(point) {
			continue
		}
		d := b.Pos.DistanceTo(point)
		if best == nil || d < bestDist {
			best, bestDist = b, d
		}
	}
	e.selected = best
	return best != nil
}

func (e *Engine) Deselect() {
	e.mu.Lock()
	e.selected = nil
	e.mu.Unlock()
}

func (e *Engine) Selected() *body.Body {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

type Stats struct {
	Frame   int
	Time    float64
	Dt      float64
	DtPrev  float64
	Bodies  int
	State   State
	Stepper string
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	s := Stats{
		Frame:   e.frame,
		Time:    e.elapsed,
		Dt:      e.dt,
		DtPrev:  e.dtPrev,
		Bodies:  len(e.bodies),
		Stepper: e.integrator.Name(),
	}
	e.mu.Unlock()
	s.State = e.State()
	return s
}

func (e *Engine) State() State {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.state
}

// Done is closed when the current run stops.
func (e *Engine) Done() <-chan struct{} {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.done
}

// Start schedules the first frame. The first two frames after a start carry
// no usable timestep, so nothing moves until the third.
func (e *Engine) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e.stateMu.Lock()
	if e.state == Running {
		e.stateMu.Unlock()
		return ErrRunning
	}
	if e.state == Stopped {
		e.done = make(chan struct{})
	}
	e.state = Running
	e.gen++
	gen := e.gen
	e.ctx = ctx
	e.stateMu.Unlock()

	e.mu.Lock()
	e.prevTimestamp = 0
	e.dt = 0
	e.dtPrev = 0
	e.mu.Unlock()

	e.schedule(gen)
	return nil
}

// Stop prevents the next frame from running. A frame already in progress
// completes.
func (e *Engine) Stop() {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.state != Running {
		return
	}
	e.state = Stopped
	e.gen++
	close(e.done)
}

func (e *Engine) schedule(gen uint64) {
	e.clock.ScheduleNextFrame(func(ts float64) {
		if !e.live(gen) {
			return
		}
		e.Frame(ts)
		if e.live(gen) {
			e.schedule(gen)
		}
	})
}

// live reports whether the run identified by gen may keep going.
func (e *Engine) live(gen uint64) bool {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	if e.state != Running || e.gen != gen {
		return false
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		e.stopLocked()
		return false
	}
	return true
}

// Frame runs one step of the simulation at timestamp ts (milliseconds). It is
// called by the scheduled loop and may be called directly to step an engine
// that is not running. Observers and the renderer run after the engine lock
// is released, so they may call back into the engine.
func (e *Engine) Frame(ts float64) {
	e.mu.Lock()
	dt := 0.0
	if e.prevTimestamp > 0 {
		dt = (ts - e.prevTimestamp) / 1000
	}
	e.prevTimestamp = ts
	e.dtPrev = e.dt
	e.dt = dt
	if dt > 0 {
		e.elapsed += dt
	}

	pointerOK := false
	if e.input != nil {
		e.pointer, pointerOK = e.input.Pointer()
	}

	e.applyBehaviors(dt)
	e.integrator.Integrate(e.bodies, dt, e.dtPrev)

	if e.selected != nil && pointerOK {
		e.drag(e.selected)
	}

	e.frame++
	frame, elapsed, background := e.frame, e.elapsed, e.background
	bodies := make([]*body.Body, len(e.bodies))
	copy(bodies, e.bodies)
	observers := make([]Observer, len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()

	for _, o := range observers {
		o.OnFrame(frame, elapsed, bodies)
	}

	if e.renderer != nil {
		e.renderer.Draw(background, bodies)
	}
}

func (e *Engine) applyBehaviors(dt float64) {
	for _, b := range e.bodies {
		for _, env := range e.environment {
			env.Apply(b, dt)
		}
	}

	parallelFor(len(e.bodies), e.workers, parallelMinChunk, func(start, end int) {
		for _, b := range e.bodies[start:end] {
			b.ApplyBehaviors(dt)
		}
	})
}

// drag pins b to the pointer, clamped so the disc stays inside the viewport.
func (e *Engine) drag(b *body.Body) {
	w, h := e.bounds.Size()
	p := e.pointer
	p.X = clamp(p.X, b.Radius, w-b.Radius)
	p.Y = clamp(p.Y, b.Radius, h-b.Radius)

	b.Pos = p
	b.PosPrev = p
	b.Vel = vec.Zero
	b.Acc = vec.Zero
	b.AccPrev = vec.Zero
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
