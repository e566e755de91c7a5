package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a generated field for replay.
type Snapshot struct {
	Version    int    `json:"version"`
	Generation int    `json:"generation"`
	Pattern    string `json:"pattern"`
	Seed       uint64 `json:"seed"`

	Order  []int        `json:"order,omitempty"`
	Points []PointState `json:"points"`
}

// PointState holds one point's target values.
type PointState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Scale float64 `json:"scale"`
	R     float64 `json:"r"`
	G     float64 `json:"g"`
	B     float64 `json:"b"`
	Set   uint8   `json:"set"`
}

// NewSnapshot captures f as generation gen.
func NewSnapshot(gen int, f *field.PointField) *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		Generation: gen,
		Pattern:    string(f.Pattern),
		Seed:       f.Seed,
		Order:      f.Order,
		Points:     make([]PointState, f.Len()),
	}
	for i, p := range f.Points {
		s.Points[i] = PointState{
			X:     p.Position.X,
			Y:     p.Position.Y,
			Z:     p.Position.Z,
			Scale: p.Scale,
			R:     p.Color.R,
			G:     p.Color.G,
			B:     p.Color.B,
			Set:   uint8(p.Set),
		}
	}
	return s
}

// Field rebuilds the point field and validates it.
func (s *Snapshot) Field() (*field.PointField, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	f := &field.PointField{
		Pattern: field.Kind(s.Pattern),
		Seed:    s.Seed,
		Order:   s.Order,
		Points:  make([]field.Point, len(s.Points)),
	}
	for i, p := range s.Points {
		f.Points[i] = field.Point{
			Position: r3.Vec{X: p.X, Y: p.Y, Z: p.Z},
			Scale:    p.Scale,
			Color:    field.Color{R: p.R, G: p.G, B: p.B},
			Set:      field.Channels(p.Set),
		}
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot field: %w", err)
	}
	return f, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%04d_%s.json", snapshot.Generation, snapshot.Pattern)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
