package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/roundphysics/internal/analysis"
	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/render"
	"github.com/san-kum/roundphysics/internal/storage"
)

var (
	analyzeBody int
	analyzeAxis string
	svgTracks   bool
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tDURATION\tBODIES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%d\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Duration,
			run.Bodies,
			run.Integrator,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []metrics.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	energy := make([]float64, len(frames))
	for i, f := range frames {
		for _, s := range f.States {
			v := s.Vel.Length()
			energy[i] += 0.5 * s.Mass * v * v
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	graph := asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	)
	fmt.Println(graph)
	fmt.Println()

	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	axis := analysis.AxisY
	switch strings.ToLower(analyzeAxis) {
	case "x":
		axis = analysis.AxisX
	case "y":
	default:
		return fmt.Errorf("unknown axis: %s", analyzeAxis)
	}

	portrait := analysis.Phase(frames, analyzeBody, axis)
	if portrait == nil || len(portrait.Points) < 2 {
		return fmt.Errorf("no data for body %d", analyzeBody)
	}

	data := make([]float64, len(portrait.Points))
	for i, p := range portrait.Points {
		data[i] = p.X
	}

	span := frames[len(frames)-1].T - frames[0].T
	rate := 0.0
	if span > 0 {
		rate = float64(len(frames)-1) / span
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s  body: %d  axis: %s\n\n", meta.Scene, analyzeBody, strings.ToLower(analyzeAxis))

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(data, rate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	fmt.Println("\nphase portrait (position vs velocity):")
	fmt.Println(analysis.PhasePlot(portrait, 60, 20))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var tracks []render.Track
	if svgTracks {
		last := frames[len(frames)-1]
		tracks = make([]render.Track, len(last.States))
		for i, s := range last.States {
			tracks[i].Color = s.Color
		}
		for _, f := range frames {
			for i := 0; i < len(f.States) && i < len(tracks); i++ {
				tracks[i].Points = append(tracks[i].Points, f.States[i].Pos)
			}
		}
	}

	out := os.Stdout
	if len(args) > 1 && args[1] != "-" {
		file, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	last := frames[len(frames)-1]
	if err := render.WriteSVG(out, meta.Width, meta.Height, meta.Background, last.States, tracks); err != nil {
		return err
	}
	if out != os.Stdout {
		fmt.Printf("exported %s to %s\n", meta.ID, args[1])
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) > 1 {
		path = args[1]
	}
	st := storage.New(dataDir)
	if err := st.ExportJSON(args[0], path); err != nil {
		return err
	}
	if path != "-" {
		fmt.Printf("exported %s to %s\n", args[0], path)
	}
	return nil
}
