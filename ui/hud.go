package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/field"
	"github.com/visionbox-team/pixelfield/patterns"
	"github.com/visionbox-team/pixelfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Pattern    string
	Generation int
	Seed       uint64
	Points     int
	Drawn      int
	FPS        int32
	Busy       bool
	Paused     bool

	SimTime      float64 // seconds
	BusyFraction float64 // share of frames spent tweening
}

// HUD renders the main heads-up display.
type HUD struct {
	Visible bool
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{Visible: true}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.Visible {
		return
	}
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Pattern: %s | Generation: %d | Seed: %d", data.Pattern, data.Generation, data.Seed),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Points: %d | Drawn: %d | FPS: %d", data.Points, data.Drawn, data.FPS),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Time: %.1fs | Tweening %.0f%%", data.SimTime, data.BusyFraction*100),
		10, 95, 14, rl.Gray,
	)

	rl.DrawText(StatusText(data), 10, 75, 16, rl.Yellow)
}

// StatusText returns the one-word state shown under the counters.
func StatusText(data HUDData) string {
	switch {
	case data.Paused:
		return "PAUSED"
	case data.Busy:
		return "Tweening"
	default:
		return "Holding"
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	if !h.Visible {
		return
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel shows the latest GenerationStats.
type StatsPanel struct {
	painter  *Painter
	sections []Section[telemetry.GenerationStats]
	x, y, w  int32
}

// NewStatsPanel creates a stats panel anchored at x, y.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{painter: NewPainter(), sections: StatsSections(), x: x, y: y, w: width}
}

// SetPosition moves the panel.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders the panel for stats.
func (p *StatsPanel) Draw(stats telemetry.GenerationStats) {
	pad := p.painter.Style.Pad
	h := 2*pad + SectionsHeight(p.painter.Style, p.sections, stats)
	p.painter.Panel(p.x, p.y, p.w, h)
	DrawSections(p.painter, p.x+pad, p.y+pad, p.w-2*pad, p.sections, stats)
}

type genStats = telemetry.GenerationStats

func statValue(format string, get func(genStats) float64) Row[genStats] {
	return Row[genStats]{Format: format, Value: get}
}

func labelled(r Row[genStats], id, label string) Row[genStats] {
	r.ID, r.Label = id, label
	return r
}

// StatsSections lays out the stats panel.
func StatsSections() []Section[genStats] {
	hasCells := func(s genStats) bool { return s.Cells > 0 }
	moved := func(s genStats) bool { return s.RadiusMean > 0 || s.MaxX != s.MinX }

	voronoi := labelled(statValue("%.2f ms", func(s genStats) float64 { return s.VoronoiMS }), "voronoi_ms", "Voronoi")
	voronoi.Show = hasCells
	neighbors := labelled(statValue("", func(s genStats) float64 { return s.NeighborsMean }), "neighbors", "Neighbors")
	neighbors.Show = hasCells

	return []Section[genStats]{
		{ID: "generation", Title: "Generation", Rows: []Row[genStats]{
			{ID: "pattern", Label: "Pattern", Text: func(s genStats) string { return s.Pattern }},
			{ID: "channels", Label: "Channels", Text: func(s genStats) string { return s.Channels }},
			labelled(statValue("%.2f ms", func(s genStats) float64 { return s.GenerateMS }), "generate_ms", "Generate"),
			voronoi,
		}},
		{ID: "shape", Title: "Shape", Show: moved, Rows: []Row[genStats]{
			labelled(statValue("%.1f", func(s genStats) float64 { return s.MaxX - s.MinX }), "width", "Width"),
			labelled(statValue("%.1f", func(s genStats) float64 { return s.MaxY - s.MinY }), "height", "Height"),
			labelled(statValue("%.1f", func(s genStats) float64 { return s.MaxZ - s.MinZ }), "depth", "Depth"),
			labelled(statValue("", func(s genStats) float64 { return s.RadiusP50 }), "radius", "Radius p50"),
		}},
		{ID: "look", Title: "Look", Rows: []Row[genStats]{
			labelled(statValue("", func(s genStats) float64 { return s.ScaleMean }), "scale_mean", "Scale"),
			{ID: "brightness", Label: "Brightness", Kind: RowBar, Hi: 1, Value: func(s genStats) float64 { return s.BrightnessMean }},
			neighbors,
		}},
	}
}

// PerfPanel renders the frame phase breakdown as one bar per phase.
type PerfPanel struct {
	painter *Painter
	x, y    int32
	w       int32
}

// NewPerfPanel creates a perf panel anchored at x, y.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{painter: NewPainter(), x: x, y: y, w: 260}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders stats.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	st := p.painter.Style
	phases := telemetry.Phases()
	h := 2*st.Pad + 2*st.Line + int32(len(phases))*rowHeight(st, RowBar)
	p.painter.Panel(p.x, p.y, p.w, h)

	x, y := p.x+st.Pad, p.y+st.Pad
	y = p.painter.Heading(x, y, "Frame Phases")
	y = p.painter.Text(x, y, "Tick", fmt.Sprintf("%s  p95 %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond)))
	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		y = p.painter.Bar(x, y, p.w-2*st.Pad, phase.String(), fraction(pct, 0, 100),
			stats.PhaseAvg[phase].Round(time.Microsecond).String())
	}
}

// PatternPanel shows one raygui button per registered pattern.
type PatternPanel struct {
	x, y     float32
	buttonW  float32
	buttonH  float32
	spacing  float32
	hasImage bool
}

// NewPatternPanel creates a button column anchored at x, y.
// The image button is disabled unless hasImage is set.
func NewPatternPanel(x, y float32, hasImage bool) *PatternPanel {
	return &PatternPanel{
		x:        x,
		y:        y,
		buttonW:  120,
		buttonH:  26,
		spacing:  4,
		hasImage: hasImage,
	}
}

// SetPosition updates the panel position.
func (p *PatternPanel) SetPosition(x, y float32) {
	p.x = x
	p.y = y
}

// Contains reports whether the screen point lies over a button.
func (p *PatternPanel) Contains(sx, sy float32, count int) bool {
	h := float32(count)*(p.buttonH+p.spacing) - p.spacing
	return sx >= p.x && sx <= p.x+p.buttonW && sy >= p.y && sy <= p.y+h
}

// Draw renders the buttons and returns the clicked pattern, if any.
func (p *PatternPanel) Draw(infos []patterns.Info, current field.Kind) (field.Kind, bool) {
	var clicked field.Kind
	ok := false

	y := p.y
	for _, info := range infos {
		bounds := rl.Rectangle{X: p.x, Y: y, Width: p.buttonW, Height: p.buttonH}
		y += p.buttonH + p.spacing

		enabled := info.Kind != patterns.KindImage || p.hasImage
		if !enabled {
			gui.Disable()
		}
		label := info.Name
		if info.Kind == current {
			label = "> " + label
		}
		if gui.Button(bounds, label) && enabled {
			clicked, ok = info.Kind, true
		}
		if !enabled {
			gui.Enable()
		}
	}
	return clicked, ok
}
