// Package telemetry provides per-generation field statistics, frame timing,
// CSV output and JSON snapshots.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/visionbox-team/pixelfield/field"
)

// GenerationStats describes one generated field.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	SimTimeSec float64 `csv:"sim_time"`
	Pattern    string  `csv:"pattern"`
	Seed       uint64  `csv:"seed"`
	Points     int     `csv:"points"`
	Channels   string  `csv:"channels"`

	// Bounding box over points with a position
	MinX float64 `csv:"min_x"`
	MaxX float64 `csv:"max_x"`
	MinY float64 `csv:"min_y"`
	MaxY float64 `csv:"max_y"`
	MinZ float64 `csv:"min_z"`
	MaxZ float64 `csv:"max_z"`

	// Distance from the centroid
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Scale distribution over points with a scale
	ScaleMean float64 `csv:"scale_mean"`
	ScaleStd  float64 `csv:"scale_std"`
	ScaleMin  float64 `csv:"scale_min"`
	ScaleMax  float64 `csv:"scale_max"`

	BrightnessMean float64 `csv:"brightness_mean"`

	// Voronoi adjacency, zero when not computed
	Cells         int     `csv:"cells"`
	NeighborsMean float64 `csv:"neighbors_mean"`

	// Timing in milliseconds
	GenerateMS float64 `csv:"generate_ms"`
	VoronoiMS  float64 `csv:"voronoi_ms"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution returns mean, population std and the 10/50/90 percentiles.
func Distribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, std, p10, p50, p90
}

// ComputeFieldStats summarizes the channels set in f.
func ComputeFieldStats(f *field.PointField) GenerationStats {
	s := GenerationStats{
		Pattern: string(f.Pattern),
		Seed:    f.Seed,
		Points:  f.Len(),
	}

	var set field.Channels
	var xs, ys, zs, scales, brightness []float64
	for _, p := range f.Points {
		set |= p.Set
		if p.Set.Has(field.ChannelPosition) {
			xs = append(xs, p.Position.X)
			ys = append(ys, p.Position.Y)
			zs = append(zs, p.Position.Z)
		}
		if p.Set.Has(field.ChannelScale) {
			scales = append(scales, p.Scale)
		}
		if p.Set.Has(field.ChannelColor) {
			brightness = append(brightness, p.Color.Brightness())
		}
	}
	s.Channels = set.String()

	if len(xs) > 0 {
		s.MinX, s.MaxX = floats.Min(xs), floats.Max(xs)
		s.MinY, s.MaxY = floats.Min(ys), floats.Max(ys)
		s.MinZ, s.MaxZ = floats.Min(zs), floats.Max(zs)

		centroid := r3.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}
		radii := make([]float64, len(xs))
		for i := range xs {
			radii[i] = r3.Norm(r3.Sub(r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}, centroid))
		}
		s.RadiusMean, s.RadiusStd, s.RadiusP10, s.RadiusP50, s.RadiusP90 = Distribution(radii)
	}

	if len(scales) > 0 {
		s.ScaleMean, s.ScaleStd = stat.PopMeanStdDev(scales, nil)
		s.ScaleMin, s.ScaleMax = floats.Min(scales), floats.Max(scales)
	}
	if len(brightness) > 0 {
		s.BrightnessMean = stat.Mean(brightness, nil)
	}
	return s
}

// SetAdjacency records Voronoi cell statistics from per-cell neighbor counts.
func (s *GenerationStats) SetAdjacency(neighborCounts []int) {
	s.Cells = len(neighborCounts)
	if s.Cells == 0 {
		s.NeighborsMean = 0
		return
	}
	total := 0
	for _, c := range neighborCounts {
		total += c
	}
	s.NeighborsMean = float64(total) / float64(s.Cells)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("generation", s.Generation),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("pattern", s.Pattern),
		slog.Uint64("seed", s.Seed),
		slog.Int("points", s.Points),
		slog.String("channels", s.Channels),
		slog.Float64("generate_ms", s.GenerateMS),
	}
	if s.RadiusMean > 0 || s.MaxX != s.MinX {
		attrs = append(attrs,
			slog.Float64("radius_mean", round3(s.RadiusMean)),
			slog.Float64("radius_p90", round3(s.RadiusP90)),
			slog.Float64("extent_x", round3(s.MaxX-s.MinX)),
			slog.Float64("extent_y", round3(s.MaxY-s.MinY)),
			slog.Float64("extent_z", round3(s.MaxZ-s.MinZ)),
		)
	}
	if s.ScaleMax > 0 {
		attrs = append(attrs,
			slog.Float64("scale_mean", round3(s.ScaleMean)),
			slog.Float64("scale_min", round3(s.ScaleMin)),
			slog.Float64("scale_max", round3(s.ScaleMax)),
		)
	}
	if s.Cells > 0 {
		attrs = append(attrs,
			slog.Int("cells", s.Cells),
			slog.Float64("neighbors_mean", round3(s.NeighborsMean)),
			slog.Float64("voronoi_ms", s.VoronoiMS),
		)
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
