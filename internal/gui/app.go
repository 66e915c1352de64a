package gui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/engine"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/palette"
	"github.com/san-kum/roundphysics/internal/vec"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

// Window is a raylib desktop surface. It is the engine's clock (one frame per
// vsync), renderer and pointer input at once.
type Window struct {
	Width, Height int32
	Title         string
	FPS           int32

	pending  func(ts float64)
	selected *body.Body
	drawn    bool
}

func NewWindow(width, height int32, title string, fps int32) *Window {
	if fps <= 0 {
		fps = 60
	}
	return &Window{Width: width, Height: height, Title: title, FPS: fps}
}

func (w *Window) ScheduleNextFrame(cb func(ts float64)) { w.pending = cb }

func (w *Window) Pointer() (vec.Vec2, bool) {
	p := rl.GetMousePosition()
	return vec.New(float64(p.X), float64(p.Y)), rl.IsCursorOnScreen()
}

// Draw clears the window with background and paints every body.
func (w *Window) Draw(background string, bodies []*body.Body) {
	rl.ClearBackground(toColor(background))
	for _, b := range bodies {
		center := rl.NewVector2(float32(b.Pos.X), float32(b.Pos.Y))
		rl.DrawCircleV(center, float32(b.Radius), toColor(b.Color))
		if b == w.selected {
			rl.DrawCircleLines(int32(b.Pos.X), int32(b.Pos.Y), float32(b.Radius)+2, ColSelect)
		}
	}
	w.drawn = true
}

// Run opens the window and drives eng until the window is closed. reset
// rebuilds the scene when R is pressed.
func (w *Window) Run(eng *engine.Engine, reset func() error) error {
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(w.FPS)
	rl.SetExitKey(rl.KeyEscape)

	if eng.State() != engine.Running {
		if err := eng.Start(context.Background()); err != nil {
			return err
		}
	}
	defer eng.Stop()

	var status string
	for !rl.WindowShouldClose() {
		status = w.handleInput(eng, reset, status)

		rl.BeginDrawing()
		w.drawn = false
		if cb := w.pending; cb != nil {
			w.pending = nil
			cb(rl.GetTime()*1000 + 1)
		}
		if !w.drawn {
			// Paused: keep showing the last state.
			w.Draw(eng.Background(), eng.Bodies())
		}
		w.drawHUD(eng.Stats(), status)
		rl.EndDrawing()
	}
	return nil
}

func (w *Window) handleInput(eng *engine.Engine, reset func() error, status string) string {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p, _ := w.Pointer()
		if eng.Select(p) {
			w.selected = eng.Selected()
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		eng.Deselect()
		w.selected = nil
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		if eng.State() == engine.Running {
			eng.Stop()
			return "paused"
		}
		if err := eng.Start(context.Background()); err != nil {
			return err.Error()
		}
		return ""
	case rl.IsKeyPressed(rl.KeyI):
		next := integrator.KindVerlet
		if eng.Integrator().Name() == string(integrator.KindVerlet) {
			next = integrator.KindEuler
		}
		if err := eng.ChangeIntegrator(next); err != nil {
			return err.Error()
		}
		return "integrator " + string(next)
	case rl.IsKeyPressed(rl.KeyR):
		if reset == nil {
			return status
		}
		w.selected = nil
		if err := reset(); err != nil {
			return err.Error()
		}
		return "reset"
	}
	return status
}

func toColor(tag string) rl.Color {
	c := palette.RGBA(tag)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
