package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
)

const (
	liveWidth   = 70
	liveHeight  = 20
	trailLength = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints plain ANSI frames, for terminals or pipes where the
// full-screen view is not wanted. Frames are dropped to stay under frameRate.
type LiveRenderer struct {
	out       io.Writer
	title     string
	bounds    behavior.Bounds
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
	frames    int
}

func NewLiveRenderer(out io.Writer, title string, bounds behavior.Bounds, frameRate int) *LiveRenderer {
	canvas := make([][]rune, liveHeight)
	for i := range canvas {
		canvas[i] = make([]rune, liveWidth)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		bounds:    bounds,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, trailLength),
	}
}

func (r *LiveRenderer) Draw(background string, bodies []*body.Body) {
	r.frames++
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()

	w, h := r.bounds.Size()
	if w <= 0 || h <= 0 {
		return
	}
	sx := float64(liveWidth) / w
	sy := float64(liveHeight) / h

	for i, b := range bodies {
		x, y := int(b.Pos.X*sx), int(b.Pos.Y*sy)
		if i == 0 {
			r.trail = append(r.trail, struct{ x, y int }{x, y})
			if len(r.trail) > trailLength {
				r.trail = r.trail[1:]
			}
		}
		glyph := 'o'
		if b.Radius*sx >= 1 {
			glyph = 'O'
		}
		r.set(x, y, glyph)
	}

	for _, pt := range r.trail {
		if r.get(pt.x, pt.y) == ' ' {
			r.set(pt.x, pt.y, '.')
		}
	}

	r.render(background, len(bodies))
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < liveWidth && y >= 0 && y < liveHeight {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) get(x, y int) rune {
	if x >= 0 && x < liveWidth && y >= 0 && y < liveHeight {
		return r.canvas[y][x]
	}
	return 0
}

func (r *LiveRenderer) render(background string, n int) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  frame=%d  bodies=%d  bg=%s\n", r.title, r.frames, n, background))
	b.WriteString("  +" + strings.Repeat("-", liveWidth) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", liveWidth) + "+\n")
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
