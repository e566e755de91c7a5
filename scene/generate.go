package scene

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
	"github.com/visionbox-team/pixelfield/noise"
	"github.com/visionbox-team/pixelfield/patterns"
	"github.com/visionbox-team/pixelfield/telemetry"
	"github.com/visionbox-team/pixelfield/voronoi"
)

// BuildSpec turns the configured parameters for kind into a pattern spec.
// Displacement starts from the animator's current positions and samples a
// noise field seeded by seed.
func (s *Scene) BuildSpec(kind field.Kind, seed uint64) (patterns.Spec, error) {
	cfg := s.cfg
	switch kind {
	case patterns.KindSpiral:
		return patterns.Spiral{
			StartRadius: cfg.Spiral.StartRadius,
			WindRate:    cfg.Spiral.WindRate,
			ZFactor:     cfg.Spiral.ZFactor,
			Turns:       cfg.Spiral.Turns,
		}, nil

	case patterns.KindVShape:
		v := cfg.VShape
		return patterns.VShape{
			TopLeft:     arrVec(v.TopLeft),
			TopRight:    arrVec(v.TopRight),
			Bottom:      arrVec(v.Bottom),
			LeftJitter:  patterns.Range{Min: v.LeftJitter[0], Max: v.LeftJitter[1]},
			RightJitter: patterns.Range{Min: v.RightJitter[0], Max: v.RightJitter[1]},
			SnapEvery:   v.SnapEvery,
		}, nil

	case patterns.KindDisplace:
		nf, err := noise.New(s.noiseParams, int64(seed))
		if err != nil {
			return nil, err
		}
		s.lastNoise = nf
		current := s.animator.Current()
		positions := make([]r3.Vec, len(current))
		for i, p := range current {
			positions[i] = p.Position
		}
		return patterns.Displace{
			Current:   positions,
			Intensity: cfg.Displace.Intensity,
			Field:     nf,
		}, nil

	case patterns.KindImage:
		if s.image == nil {
			return nil, fmt.Errorf("%w: no image loaded", field.ErrInvalidArgument)
		}
		return patterns.Image{
			Sample:   *s.image,
			MinScale: cfg.Image.MinScale,
			MaxScale: cfg.Image.MaxScale,
		}, nil

	case patterns.KindGrid:
		return patterns.Grid{
			Columns:   s.gridColumns(),
			PixelSize: cfg.Grid.PixelSize,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown pattern %q", field.ErrInvalidArgument, kind)
}

// Show generates kind with the next generation's seed and starts tweening
// toward it.
func (s *Scene) Show(kind field.Kind) error {
	seed := s.seed + uint64(s.collector.Generation()+1)

	s.perf.StartPhase(telemetry.PhaseGenerate)
	start := time.Now()
	spec, err := s.BuildSpec(kind, seed)
	if err != nil {
		return err
	}
	f, err := patterns.Generate(s.n, spec, seed)
	if err != nil {
		return fmt.Errorf("generating %s: %w", kind, err)
	}
	return s.present(f, s.collector.Record(f, time.Since(start)))
}

// Replay shows a field saved by a previous run's snapshot as the next
// generation. The snapshot must hold one point per scene point.
func (s *Scene) Replay(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	f, err := snap.Field()
	if err != nil {
		return err
	}
	if f.Len() != s.n {
		return fmt.Errorf("%w: snapshot has %d points, scene has %d", field.ErrInvalidArgument, f.Len(), s.n)
	}
	slog.Info("replaying snapshot", "path", path, "generation", snap.Generation, "pattern", f.Pattern)
	return s.present(f, s.collector.Record(f, 0))
}

// present orders, applies and records a generated field.
func (s *Scene) present(f *field.PointField, stats telemetry.GenerationStats) error {
	kind := f.Pattern
	if s.cfg.Voronoi.Ripple && f.Order == nil {
		s.perf.StartPhase(telemetry.PhaseVoronoi)
		s.rippleOrder(f, &stats)
	}

	s.perf.StartPhase(telemetry.PhaseApply)
	timing := s.schedule
	if kind == patterns.KindDisplace {
		timing = s.displaceSchedule
	}
	if err := s.animator.Apply(f, timing); err != nil {
		return err
	}
	s.current = f
	s.hold = s.cfg.Sequence.Hold

	if kind == patterns.KindDisplace && s.backdrop != nil {
		s.backdrop.SetField(s.lastNoise)
	}

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordGeneration(stats, f)
	return nil
}

// Next advances to the following pattern of the sequence.
func (s *Scene) Next() error {
	s.step = (s.step + 1) % len(s.sequence)
	return s.Show(s.sequence[s.step])
}

// Select jumps to kind, moving the sequence cursor onto it when it is part
// of the sequence.
func (s *Scene) Select(kind field.Kind) error {
	if i := slices.Index(s.sequence, kind); i >= 0 {
		s.step = i
	}
	return s.Show(kind)
}

// rippleOrder orders f outward across the Voronoi diagram of where its
// points will end up, starting from the picked point or the one nearest the
// centroid.
func (s *Scene) rippleOrder(f *field.PointField, stats *telemetry.GenerationStats) {
	n := f.Len()
	if n < 2 || (s.cfg.Voronoi.MaxPoints > 0 && n > s.cfg.Voronoi.MaxPoints) {
		return
	}

	start := time.Now()
	current := s.animator.Current()
	proj := make([]r2.Vec, n)
	for i, p := range f.Points {
		pos := current[i].Position
		if p.Set.Has(field.ChannelPosition) {
			pos = p.Position
		}
		proj[i] = r2.Vec{X: pos.X, Y: pos.Y}
	}
	origin, w, h := bounds(proj)
	w = max(w, s.cfg.Voronoi.Width)
	h = max(h, s.cfg.Voronoi.Height)

	target := centroid(proj)
	if s.rippleAt != nil {
		target = *s.rippleAt
	}
	first := nearest(proj, target)

	for i := range proj {
		proj[i] = r2.Sub(proj[i], origin)
	}
	d, err := voronoi.Compute(proj, w, h)
	if err != nil {
		slog.Warn("voronoi failed", "pattern", f.Pattern, "error", err)
		return
	}

	f.Order = d.RippleOrder(first)

	counts := make([]int, len(d.Cells))
	for i, c := range d.Cells {
		counts[i] = len(c.Neighbors)
	}
	stats.SetAdjacency(counts)
	stats.VoronoiMS = float64(time.Since(start)) / float64(time.Millisecond)

	if s.cells != nil {
		s.cells.SetDiagram(d, origin, first)
	}
}

// recordGeneration logs and writes one generation's telemetry.
func (s *Scene) recordGeneration(stats telemetry.GenerationStats, f *field.PointField) {
	s.lastStats = stats
	if s.opts.LogStats || s.cfg.Telemetry.LogGenerations {
		stats.LogStats()
	}
	if err := s.output.WriteGeneration(stats); err != nil {
		slog.Error("writing generation stats", "error", err)
	}
	if s.cfg.Telemetry.Snapshots {
		if _, err := s.output.WritePoints(stats.Generation, f); err != nil {
			slog.Error("writing point snapshot", "error", err)
		}
	}
}

// bounds returns the padded bounding box of pts as origin and size.
func bounds(pts []r2.Vec) (origin r2.Vec, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	pad := max(1, 0.05*max(maxX-minX, maxY-minY))
	origin = r2.Vec{X: minX - pad, Y: minY - pad}
	return origin, maxX - minX + 2*pad, maxY - minY + 2*pad
}

func centroid(pts []r2.Vec) r2.Vec {
	var c r2.Vec
	for _, p := range pts {
		c = r2.Add(c, p)
	}
	return r2.Scale(1/float64(len(pts)), c)
}

// nearest returns the index of the point closest to target.
func nearest(pts []r2.Vec, target r2.Vec) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range pts {
		if d := r2.Norm2(r2.Sub(p, target)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func arrVec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
