package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/roundphysics/internal/metrics"
)

type ExportData struct {
	Run    RunMetadata     `json:"run"`
	Frames []metrics.Frame `json:"frames"`
}

// ExportJSON writes a stored run as a single JSON document to path, or to
// stdout when path is "-".
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	if path == "-" {
		return writeJSON(os.Stdout, ExportData{Run: *meta, Frames: frames})
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, ExportData{Run: *meta, Frames: frames})
}

func writeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
