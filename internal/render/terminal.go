package render

import (
	"math"
	"sync"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
)

// Terminal maps world coordinates onto a braille canvas. Draw runs on the
// frame goroutine; Frame may be read from another goroutine.
type Terminal struct {
	bounds behavior.Bounds

	mu         sync.Mutex
	canvas     *Canvas
	background string
}

func NewTerminal(cols, rows int, bounds behavior.Bounds) *Terminal {
	return &Terminal{bounds: bounds, canvas: NewCanvas(cols, rows)}
}

func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	t.canvas = NewCanvas(cols, rows)
	t.mu.Unlock()
}

func (t *Terminal) Draw(background string, bodies []*body.Body) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.background = background
	t.canvas.Clear()

	w, h := t.bounds.Size()
	if w <= 0 || h <= 0 {
		return
	}
	sx := float64(t.canvas.DotsWide()) / w
	sy := float64(t.canvas.DotsHigh()) / h

	sr := math.Min(sx, sy)

	for _, b := range bodies {
		t.canvas.FillCircle(b.Pos.X*sx, b.Pos.Y*sy, b.Radius*sr, b.Color)
	}
}

// Frame returns a copy of the last drawn canvas and its background.
func (t *Terminal) Frame() (*Canvas, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canvas.Clone(), t.background
}
