package telemetry

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/config"
	"github.com/visionbox-team/pixelfield/field"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := Distribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Population std of 0.1..1.0
	if math.Abs(std-0.28723) > 0.001 {
		t.Errorf("std = %v, want ~0.2872", std)
	}
	if math.Abs(p10-0.19) > 0.01 || math.Abs(p50-0.55) > 0.01 || math.Abs(p90-0.91) > 0.01 {
		t.Errorf("percentiles = %v %v %v", p10, p50, p90)
	}

	mean, std, p10, p50, p90 = Distribution(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeFieldStats(t *testing.T) {
	f := field.NewPointField("grid", 4)
	f.Seed = 9
	corners := []r3.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}
	for i := range f.Points {
		f.Points[i].Position = corners[i]
		f.Points[i].Scale = float64(i + 1)
		f.Points[i].Set = field.ChannelPosition | field.ChannelScale
	}

	s := ComputeFieldStats(f)
	if s.Pattern != "grid" || s.Seed != 9 || s.Points != 4 || s.Channels != "ps" {
		t.Errorf("header = %+v", s)
	}
	if s.MinX != -1 || s.MaxX != 1 || s.MinY != -1 || s.MaxY != 1 || s.MinZ != 0 || s.MaxZ != 0 {
		t.Errorf("bounds = %v..%v %v..%v", s.MinX, s.MaxX, s.MinY, s.MaxY)
	}
	if math.Abs(s.RadiusMean-math.Sqrt2) > 1e-9 || s.RadiusStd > 1e-9 {
		t.Errorf("radius = %v ± %v, want sqrt2 ± 0", s.RadiusMean, s.RadiusStd)
	}
	if s.ScaleMin != 1 || s.ScaleMax != 4 || math.Abs(s.ScaleMean-2.5) > 1e-9 {
		t.Errorf("scale = %v..%v mean %v", s.ScaleMin, s.ScaleMax, s.ScaleMean)
	}
	if s.BrightnessMean != 0 {
		t.Errorf("no color set, brightness = %v", s.BrightnessMean)
	}

	s.SetAdjacency([]int{2, 2, 2, 2})
	if s.Cells != 4 || s.NeighborsMean != 2 {
		t.Errorf("adjacency = %d cells, %v mean", s.Cells, s.NeighborsMean)
	}
}

func TestComputeFieldStatsColorOnly(t *testing.T) {
	f := field.NewPointField("image", 2)
	f.Points[0] = field.Point{Scale: 1, Color: field.Color{R: 1, G: 1, B: 1}, Set: field.ChannelColor}

	s := ComputeFieldStats(f)
	if s.Channels != "c" {
		t.Errorf("channels = %q", s.Channels)
	}
	if s.BrightnessMean != 1 {
		t.Errorf("brightness = %v, want 1", s.BrightnessMean)
	}
	if s.RadiusMean != 0 || s.MaxX != 0 {
		t.Error("position stats should be zero without positions")
	}
}

func TestGenerationStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	s := ComputeFieldStats(testField())
	s.Generation = 3
	logger.Info("generation", "stats", s)

	out := buf.String()
	for _, want := range []string{`"generation":3`, `"pattern":"spiral"`, `"scale_max":0.7`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Tick(0.5, true)
	c.Tick(0.5, false)

	s := c.Record(testField(), 1500*time.Microsecond)
	if s.Generation != 1 || s.SimTimeSec != 1 || s.GenerateMS != 1.5 {
		t.Errorf("stamped stats = gen %d time %v ms %v", s.Generation, s.SimTimeSec, s.GenerateMS)
	}
	if c.Frames() != 2 || c.BusyFraction() != 0.5 {
		t.Errorf("frames = %d busy = %v", c.Frames(), c.BusyFraction())
	}
	if c.Record(testField(), 0).Generation != 2 {
		t.Error("generation counter did not advance")
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	c := NewCollector()
	for i := 0; i < 3; i++ {
		if err := om.WriteGeneration(c.Record(testField(), 0)); err != nil {
			t.Fatalf("WriteGeneration: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	path, err := om.WritePoints(1, testField())
	if err != nil {
		t.Fatalf("WritePoints: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if strings.Count(string(data), "generation,") != 1 || !strings.HasPrefix(lines[0], "generation,sim_time,pattern") {
		t.Errorf("header should appear once at the top: %q", lines[0])
	}

	points, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(points), "index,rank,set,x,y,z") {
		t.Errorf("unexpected points header: %q", strings.SplitN(string(points), "\n", 2)[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "points", "snapshot_0001_spiral.json")); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
	for _, name := range []string{"config.yaml", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v %v", om, err)
	}
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Error(err)
	}
	if _, err := om.WritePoints(1, testField()); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be a no-op")
	}
}
