package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase identifies one timed section of a frame.
type Phase int

// Phases of one frame, in order.
const (
	PhaseGenerate Phase = iota
	PhaseVoronoi
	PhaseApply
	PhaseAnimate
	PhaseTrail
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"generate", "voronoi", "apply", "animate", "trail", "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns every phase in frame order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// FrameSample is the timing of one frame.
type FrameSample struct {
	Tick   time.Duration
	Phases [numPhases]time.Duration
}

// PerfCollector keeps the last windowSize frame samples in a ring.
type PerfCollector struct {
	window []FrameSample
	next   int
	filled int

	current    FrameSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Wall time between RecordFrame calls (graphics mode)
	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{window: make([]FrameSample, windowSize)}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = FrameSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = phase >= 0 && phase < numPhases
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick closes the frame and stores its sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.Tick = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDur = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of the average tick

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	s.FrameDuration = p.frameDur
	if p.frameDur > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var phaseSum [numPhases]time.Duration
	for i, sample := range p.window[:p.filled] {
		ticks[i] = float64(sample.Tick)
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}

	avg := stat.Mean(ticks, nil)
	s.AvgTickDuration = time.Duration(avg)
	s.MinTickDuration = time.Duration(floats.Min(ticks))
	s.MaxTickDuration = time.Duration(floats.Max(ticks))
	slices.Sort(ticks)
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))

	for ph, sum := range phaseSum {
		s.PhaseAvg[ph] = sum / time.Duration(p.filled)
		if avg > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / avg * 100
		}
	}
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}
	return s
}

// LogStats logs the summary, skipping negligible phases.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases() {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", round3(pct))
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases() {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Frame        int64   `csv:"frame"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	GeneratePct  float64 `csv:"generate_pct"`
	VoronoiPct   float64 `csv:"voronoi_pct"`
	ApplyPct     float64 `csv:"apply_pct"`
	AnimatePct   float64 `csv:"animate_pct"`
	TrailPct     float64 `csv:"trail_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for frame.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		GeneratePct:  s.PhasePct[PhaseGenerate],
		VoronoiPct:   s.PhasePct[PhaseVoronoi],
		ApplyPct:     s.PhasePct[PhaseApply],
		AnimatePct:   s.PhasePct[PhaseAnimate],
		TrailPct:     s.PhasePct[PhaseTrail],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
