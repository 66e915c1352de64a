package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/vec"
)

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rate float64
		freq float64
	}{
		{"power of two", 256, 64, 4},
		{"odd length", 300, 60, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 10 + math.Sin(2*math.Pi*tt.freq*float64(i)/tt.rate)
			}

			got := DominantFrequency(data, tt.rate)
			binWidth := tt.rate / float64(tt.n)
			if math.Abs(got-tt.freq) > binWidth {
				t.Errorf("DominantFrequency = %f, want %f ± %f", got, tt.freq, binWidth)
			}
		})
	}
}

func TestPowerSpectrumDegenerate(t *testing.T) {
	if ps := PowerSpectrum([]float64{1}); ps != nil {
		t.Errorf("single sample spectrum = %v, want nil", ps)
	}

	flat := make([]float64, 32)
	for i := range flat {
		flat[i] = 3
	}
	if f := DominantFrequency(flat, 60); f != 0 {
		t.Errorf("constant series frequency = %f, want 0", f)
	}
}

func TestPhase(t *testing.T) {
	frames := []metrics.Frame{
		{Index: 1, States: []body.State{{Pos: vec.New(1, 2), Vel: vec.New(3, 4)}}},
		{Index: 2, States: []body.State{{Pos: vec.New(5, 6), Vel: vec.New(7, 8)}}},
		{Index: 3},
	}

	px := Phase(frames, 0, AxisX)
	if len(px.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(px.Points))
	}
	if px.Points[1].X != 5 || px.Points[1].Y != 7 {
		t.Errorf("x portrait point = %+v", px.Points[1])
	}

	py := Phase(frames, 0, AxisY)
	if py.Points[0].X != 2 || py.Points[0].Y != 4 {
		t.Errorf("y portrait point = %+v", py.Points[0])
	}

	if Phase(frames, -1, AxisX) != nil {
		t.Error("negative body index should give nil")
	}

	if PhasePlot(nil, 20, 10) != "" {
		t.Error("nil portrait should give empty plot")
	}
}

func TestPhasePlot(t *testing.T) {
	diagonal := &PhasePortrait2D{Points: []struct{ X, Y float64 }{{1, 1}, {3, 3}}}

	rows := strings.Split(strings.TrimSuffix(PhasePlot(diagonal, 10, 5), "\n"), "\n")
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	cell := func(r, c int) rune { return []rune(rows[r])[c] }

	const blank = '\u2800'
	if cell(4, 0) == blank || cell(0, 9) == blank {
		t.Errorf("trajectory ends missing:\n%s", strings.Join(rows, "\n"))
	}
	if cell(0, 0) != blank || cell(4, 9) != blank {
		t.Errorf("off-diagonal corners should be empty:\n%s", strings.Join(rows, "\n"))
	}

	still := &PhasePortrait2D{Points: []struct{ X, Y float64 }{{2, 2}}}
	if !strings.ContainsFunc(PhasePlot(still, 4, 2), func(r rune) bool { return r > blank }) {
		t.Error("a single point should still be drawn")
	}
}
