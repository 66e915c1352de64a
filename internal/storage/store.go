package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/metrics"
	"github.com/san-kum/roundphysics/internal/vec"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"frame", "t", "body", "mass", "radius", "color", "x", "y", "vx", "vy"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scene      string             `json:"scene"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Integrator string             `json:"integrator"`
	FPS        float64            `json:"fps"`
	Frames     int                `json:"frames"`
	Duration   float64            `json:"duration"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Background string             `json:"background"`
	Bodies     int                `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and the sampled frames under a new run directory and
// returns the run ID.
func (s *Store) Save(meta RunMetadata, frames []metrics.Frame) (string, error) {
	runID, runDir, err := s.newRunDir(meta.Scene)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(framesHeader); err != nil {
		return "", err
	}

	for _, f := range frames {
		for i, st := range f.States {
			row := []string{
				strconv.Itoa(f.Index),
				formatFloat(f.T),
				strconv.Itoa(i),
				formatFloat(st.Mass),
				formatFloat(st.Radius),
				st.Color,
				formatFloat(st.Pos.X),
				formatFloat(st.Pos.Y),
				formatFloat(st.Vel.X),
				formatFloat(st.Vel.Y),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) newRunDir(scene string) (string, string, error) {
	if scene == "" {
		scene = "run"
	}
	base := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		if _, err := os.Stat(runDir); os.IsNotExist(err) {
			if err := os.MkdirAll(runDir, 0755); err != nil {
				return "", "", err
			}
			return runID, runDir, nil
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

// List returns every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads the sampled frames of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]metrics.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]metrics.Frame, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(framesHeader) {
			continue
		}

		index, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals, ok := parseFloats(record[1], record[3], record[4], record[6], record[7], record[8], record[9])
		if !ok {
			continue
		}

		st := body.State{
			Mass:   vals[1],
			Radius: vals[2],
			Color:  record[5],
			Pos:    vec.New(vals[3], vals[4]),
			Vel:    vec.New(vals[5], vals[6]),
		}

		if n := len(frames); n > 0 && frames[n-1].Index == index {
			frames[n-1].States = append(frames[n-1].States, st)
			continue
		}
		frames = append(frames, metrics.Frame{Index: index, T: vals[0], States: []body.State{st}})
	}

	return frames, nil
}

func parseFloats(fields ...string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
