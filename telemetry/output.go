package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/visionbox-team/pixelfield/config"
	"github.com/visionbox-team/pixelfield/field"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir            string
	generationFile *os.File
	perfFile       *os.File

	// Track if headers have been written
	generationHeaderWritten bool
	perfHeaderWritten       bool
}

// PointRecord is one row of a per-point CSV dump.
type PointRecord struct {
	Index int     `csv:"index"`
	Rank  int     `csv:"rank"`
	Set   string  `csv:"set"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	Scale float64 `csv:"scale"`
	R     float64 `csv:"r"`
	G     float64 `csv:"g"`
	B     float64 `csv:"b"`
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.generationFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// appendCSV writes records, with headers only on the first call.
func appendCSV[T any](f *os.File, headerWritten *bool, records []T) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteGeneration appends a generation record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.generationFile, &om.generationHeaderWritten, []GenerationStats{stats}); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.perfFile, &om.perfHeaderWritten, []PerfStatsCSV{stats.ToCSV(frame)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WritePoints dumps every point of f to points/points_<gen>.csv and a JSON
// snapshot next to it. Returns the CSV path.
func (om *OutputManager) WritePoints(gen int, f *field.PointField) (string, error) {
	if om == nil {
		return "", nil
	}
	dir := filepath.Join(om.dir, "points")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating points directory: %w", err)
	}

	rank := f.Rank()
	records := make([]PointRecord, f.Len())
	for i, p := range f.Points {
		records[i] = PointRecord{
			Index: i,
			Rank:  rank[i],
			Set:   p.Set.String(),
			X:     p.Position.X,
			Y:     p.Position.Y,
			Z:     p.Position.Z,
			Scale: p.Scale,
			R:     p.Color.R,
			G:     p.Color.G,
			B:     p.Color.B,
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("points_%04d.csv", gen))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer out.Close()
	if err := gocsv.Marshal(records, out); err != nil {
		return "", fmt.Errorf("writing points: %w", err)
	}

	if _, err := SaveSnapshot(NewSnapshot(gen, f), dir); err != nil {
		return "", err
	}
	return path, nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []**os.File{&om.generationFile, &om.perfFile} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		*f = nil
	}
	return firstErr
}
