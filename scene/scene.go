// Package scene drives the pattern sequence: it generates fields, orders
// them, hands them to the animator and records telemetry. The same Scene
// runs headless or inside a raylib window.
package scene

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/visionbox-team/pixelfield/animate"
	"github.com/visionbox-team/pixelfield/camera"
	"github.com/visionbox-team/pixelfield/config"
	"github.com/visionbox-team/pixelfield/field"
	"github.com/visionbox-team/pixelfield/imagesample"
	"github.com/visionbox-team/pixelfield/noise"
	"github.com/visionbox-team/pixelfield/patterns"
	"github.com/visionbox-team/pixelfield/renderer"
	"github.com/visionbox-team/pixelfield/telemetry"
	"github.com/visionbox-team/pixelfield/ui"
)

// perfWindow is the number of frames between perf reports.
const perfWindow = 60

// Options configures scene behavior.
type Options struct {
	Seed      uint64   // 0 = use config, then time
	LogStats  bool     // log every generation and perf window
	OutputDir string   // empty = no files
	Headless  bool     // skip all raylib resources
	ImagePath string   // overrides image.path
	Sequence  []string // overrides sequence.patterns
	Points    int      // overrides field.points
	Replay    string   // snapshot shown before the sequence starts
}

// Scene holds the pattern cycle and everything it drives.
type Scene struct {
	cfg  *config.Config
	opts Options

	registry         *patterns.Registry
	animator         *animate.Animator
	schedule         animate.Schedule
	displaceSchedule animate.Schedule

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	lastStats telemetry.GenerationStats

	n        int
	seed     uint64
	sequence []field.Kind
	step     int
	hold     float64
	fixedDT  float64
	frame    int64
	paused   bool

	current     *field.PointField
	noiseParams noise.Params
	lastNoise   *noise.Field
	image       *field.ImageSample

	rippleAt *r2.Vec // world xy picked by the user

	trail *animate.Buffers

	// Graphics, nil when headless
	cam          *camera.Camera
	rig          *camera.Rig
	points       *renderer.PointRenderer
	backdrop     *renderer.Backdrop
	cells        *renderer.CellOverlay
	hud          *ui.HUD
	statsPanel   *ui.StatsPanel
	perfPanel    *ui.PerfPanel
	patternPanel *ui.PatternPanel
	showPerf     bool
	pending      *field.Kind
	screenW      int32
	screenH      int32
	dragging     bool
}

// New builds a scene, snaps the points to the resting grid and starts the
// first pattern of the sequence.
func New(cfg *config.Config, opts Options) (*Scene, error) {
	n := cfg.Field.Points
	if opts.Points > 0 {
		n = opts.Points
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Field.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	schedule, err := scheduleFrom(cfg.Animation.Position, cfg.Animation.Scale, cfg.Animation.Color)
	if err != nil {
		return nil, err
	}
	displaceSchedule, err := scheduleFrom(cfg.Animation.Displace, cfg.Animation.Scale, cfg.Animation.Color)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:              cfg,
		opts:             opts,
		registry:         patterns.NewRegistry(),
		animator:         animate.New(n, schedule),
		schedule:         schedule,
		displaceSchedule: displaceSchedule,
		collector:        telemetry.NewCollector(),
		perf:             telemetry.NewPerfCollector(perfWindow),
		n:                n,
		seed:             seed,
		fixedDT:          1 / float64(max(cfg.Screen.TargetFPS, 1)),
		noiseParams: noise.Params{
			Kind:       noise.Kind(strings.ToLower(cfg.Noise.Kind)),
			Width:      cfg.Noise.Width,
			Height:     cfg.Noise.Height,
			Scale:      cfg.Noise.Scale,
			Octaves:    cfg.Noise.Octaves,
			Lacunarity: cfg.Noise.Lacunarity,
			Gain:       cfg.Noise.Gain,
		},
	}
	if err := s.noiseParams.Validate(); err != nil {
		return nil, fmt.Errorf("noise config: %w", err)
	}

	imagePath := cfg.Image.Path
	if opts.ImagePath != "" {
		imagePath = opts.ImagePath
	}
	if imagePath != "" {
		sample, err := s.loadImage(imagePath)
		if err != nil {
			return nil, err
		}
		s.image = &sample
		// Displacement noise covers the sampled image, one cell per pixel
		s.noiseParams.Width, s.noiseParams.Height = sample.Width, sample.Height
	}

	names := cfg.Sequence.Patterns
	if len(opts.Sequence) > 0 {
		names = opts.Sequence
	}
	if s.sequence, err = s.parseSequence(names); err != nil {
		return nil, err
	}

	if s.output, err = telemetry.NewOutputManager(opts.OutputDir); err != nil {
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	if !opts.Headless {
		s.initGraphics()
	}

	if err := s.restGrid(); err != nil {
		return nil, err
	}
	if opts.Replay != "" {
		err = s.Replay(opts.Replay)
	} else {
		err = s.Show(s.sequence[0])
	}
	if err != nil {
		return nil, err
	}

	slog.Info("scene ready",
		"points", n,
		"seed", seed,
		"sequence", names,
		"image", s.image != nil,
	)
	return s, nil
}

// scheduleFrom parses per-channel tween settings.
func scheduleFrom(position, scale, color config.TweenConfig) (animate.Schedule, error) {
	var sched animate.Schedule
	for _, ch := range []struct {
		name string
		in   config.TweenConfig
		out  *animate.Timing
	}{
		{"position", position, &sched.Position},
		{"scale", scale, &sched.Scale},
		{"color", color, &sched.Color},
	} {
		ease, err := animate.ParseEase(ch.in.Ease)
		if err != nil {
			return animate.Schedule{}, fmt.Errorf("animation %s: %w", ch.name, err)
		}
		*ch.out = animate.Timing{Duration: ch.in.Duration, Stagger: ch.in.Stagger, Ease: ease}
	}
	return sched, nil
}

// loadImage decodes path and resamples it to fit the point count.
func (s *Scene) loadImage(path string) (field.ImageSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return field.ImageSample{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := imagesample.Decode(f)
	if err != nil {
		return field.ImageSample{}, err
	}

	cols, rows := s.cfg.Image.Columns, s.cfg.Image.Rows
	if cols == 0 && rows == 0 {
		cols, rows = imagesample.FitColumns(img, s.n)
	}
	sample := imagesample.FromImage(img, cols, rows)
	if err := sample.Validate(); err != nil {
		return field.ImageSample{}, fmt.Errorf("image %s: %w", path, err)
	}

	slog.Info("image loaded",
		"path", path,
		"format", format,
		"columns", sample.Width,
		"rows", sample.Height,
		"pixels", sample.Len(),
		"points", s.n,
	)
	return sample, nil
}

// parseSequence resolves pattern names against the registry.
func (s *Scene) parseSequence(names []string) ([]field.Kind, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty pattern sequence", field.ErrInvalidArgument)
	}
	kinds := make([]field.Kind, 0, len(names))
	for _, name := range names {
		kind := field.Kind(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := s.registry.Get(kind); !ok {
			return nil, fmt.Errorf("%w: unknown pattern %q", field.ErrInvalidArgument, name)
		}
		if kind == patterns.KindImage && s.image == nil {
			return nil, fmt.Errorf("%w: image pattern needs image.path", field.ErrInvalidArgument)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// gridColumns returns the resting grid width: the image width when an image
// is loaded, else grid.columns, else a square-ish layout.
func (s *Scene) gridColumns() int {
	if s.image != nil {
		return s.image.Width
	}
	if s.cfg.Grid.Columns > 0 {
		return s.cfg.Grid.Columns
	}
	return int(math.Ceil(math.Sqrt(float64(s.n))))
}

// restGrid snaps every point onto the grid in the base color.
func (s *Scene) restGrid() error {
	f, err := patterns.Generate(s.n, patterns.Grid{
		Columns:   s.gridColumns(),
		PixelSize: s.cfg.Grid.PixelSize,
	}, s.seed)
	if err != nil {
		return err
	}

	base := s.cfg.Field.BaseColor
	for i := range f.Points {
		f.Points[i].Color = field.Color{R: base[0], G: base[1], B: base[2]}
		f.Points[i].Set |= field.ChannelColor
	}
	if err := s.animator.Reset(f.Points); err != nil {
		return err
	}
	s.trail = animate.NewBuffers(s.n)
	s.trail.CopyFrom(s.animator.Buffers())
	return nil
}

// Frame returns the number of completed frames.
func (s *Scene) Frame() int64 {
	return s.frame
}

// Generation returns the number of fields generated so far.
func (s *Scene) Generation() int {
	return s.collector.Generation()
}

// Animator returns the point animator.
func (s *Scene) Animator() *animate.Animator {
	return s.animator
}

// Current returns the most recent target field.
func (s *Scene) Current() *field.PointField {
	return s.current
}

// LastStats returns the stats of the most recent generation.
func (s *Scene) LastStats() telemetry.GenerationStats {
	return s.lastStats
}

// Display returns the buffers to draw this frame.
func (s *Scene) Display() *animate.Buffers {
	if s.cfg.Animation.Trail > 0 {
		return s.trail
	}
	return s.animator.Buffers()
}

// Paused reports whether the sequence is paused.
func (s *Scene) Paused() bool {
	return s.paused
}

// SetPaused pauses or resumes the sequence.
func (s *Scene) SetPaused(p bool) {
	s.paused = p
}

// RunSummary describes a run so far.
type RunSummary struct {
	Generations  int
	Frames       int64
	SimTime      float64
	BusyFraction float64
	OutputDir    string
}

// LogValue implements slog.LogValuer.
func (r RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", r.Generations),
		slog.Int64("frames", r.Frames),
		slog.Float64("sim_time", r.SimTime),
		slog.Float64("busy_fraction", r.BusyFraction),
		slog.String("output_dir", r.OutputDir),
	)
}

// Summary reports the collector's totals.
func (s *Scene) Summary() RunSummary {
	return RunSummary{
		Generations:  s.collector.Generation(),
		Frames:       s.collector.Frames(),
		SimTime:      s.collector.SimTime(),
		BusyFraction: s.collector.BusyFraction(),
		OutputDir:    s.output.Dir(),
	}
}

// Unload logs the run summary, releases graphics resources and closes
// output files.
func (s *Scene) Unload() {
	slog.Info("run finished", "summary", s.Summary())
	if s.backdrop != nil {
		s.backdrop.Unload()
	}
	if err := s.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
