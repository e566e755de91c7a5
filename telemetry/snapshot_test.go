package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

func testField() *field.PointField {
	f := field.NewPointField("spiral", 3)
	f.Seed = 42
	f.Order = []int{2, 0, 1}
	for i := range f.Points {
		f.Points[i].Position = r3.Vec{X: float64(i), Y: -float64(i), Z: 0.5}
		f.Points[i].Scale = 0.5 + 0.1*float64(i)
		f.Points[i].Set = field.ChannelPosition | field.ChannelScale
	}
	f.Points[1].Color = field.Color{R: 1, G: 0.5}
	f.Points[1].Set |= field.ChannelColor
	return f
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	f := testField()

	path, err := SaveSnapshot(NewSnapshot(7, f), tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_0007_spiral.json" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Generation != 7 || loaded.Seed != 42 || loaded.Pattern != "spiral" {
		t.Errorf("header mismatch: %+v", loaded)
	}

	back, err := loaded.Field()
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	for i := range f.Points {
		if back.Points[i] != f.Points[i] {
			t.Errorf("point %d: got %+v, want %+v", i, back.Points[i], f.Points[i])
		}
	}
	if len(back.Order) != 3 || back.Order[0] != 2 {
		t.Errorf("order mismatch: %v", back.Order)
	}
}

func TestSnapshotJSONFormat(t *testing.T) {
	data, err := json.Marshal(NewSnapshot(1, testField()))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "generation", "pattern", "seed", "order", "points"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestSnapshotRejectsBadData(t *testing.T) {
	s := NewSnapshot(1, testField())
	s.Order = []int{0, 0, 1}
	if _, err := s.Field(); err == nil {
		t.Error("expected error for non-permutation order")
	}

	s = NewSnapshot(1, testField())
	s.Version = 99
	if _, err := s.Field(); err == nil {
		t.Error("expected error for unknown version")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
