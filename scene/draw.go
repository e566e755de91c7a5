package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/camera"
	"github.com/visionbox-team/pixelfield/renderer"
	"github.com/visionbox-team/pixelfield/ui"
)

const controlsText = "SPACE pause | N next | 1-5 pattern | drag orbit | RMB pan | wheel zoom | CTRL+click ripple origin | V cells | H hud | P perf | R reset view"

// initGraphics creates the camera, renderers and panels. Needs a window.
func (s *Scene) initGraphics() {
	cfg := s.cfg
	s.screenW = int32(cfg.Screen.Width)
	s.screenH = int32(cfg.Screen.Height)

	s.cam = camera.New(float64(s.screenW), float64(s.screenH), cfg.Camera.Distance)
	if cfg.Camera.FovY > 0 {
		s.cam.FovY = cfg.Camera.FovY
	}
	s.rig = camera.NewRig(s.cam, cfg.Screen.TargetFPS, cfg.Camera.SpringFrequency, cfg.Camera.SpringDamping)

	base := cfg.Field.BaseColor
	s.points = renderer.NewPointRenderer(float32(cfg.Grid.PixelSize))
	s.backdrop = renderer.NewBackdrop(s.screenW, s.screenH,
		uint8(base[0]*255), uint8(base[1]*255), uint8(base[2]*255))
	s.cells = renderer.NewCellOverlay()

	s.hud = ui.NewHUD()
	s.statsPanel = ui.NewStatsPanel(0, 0, 220)
	s.perfPanel = ui.NewPerfPanel(0, 0)
	s.patternPanel = ui.NewPatternPanel(0, 0, s.image != nil)
	s.layoutPanels()
}

// layoutPanels anchors panels to the current screen size.
func (s *Scene) layoutPanels() {
	s.statsPanel.SetPosition(s.screenW-230, 10)
	s.perfPanel.SetPosition(10, 120)
	s.patternPanel.SetPosition(10, float32(s.screenH)-190)
}

// Draw renders one frame.
func (s *Scene) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	s.backdrop.Draw(rl.GetFrameTime())

	rl.BeginMode3D(renderer.Camera3D(s.cam))
	s.points.Draw(s.Display(), s.cam)
	s.cells.Draw()
	rl.EndMode3D()

	s.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and panels. Pattern clicks are applied next Update.
func (s *Scene) drawUI() {
	current := s.sequence[s.step]
	if s.current != nil {
		current = s.current.Pattern
	}

	s.hud.Draw(ui.HUDData{
		Title:      s.cfg.Screen.Title,
		Pattern:    s.registry.GetName(current),
		Generation: s.Generation(),
		Seed:       s.lastStats.Seed,
		Points:     s.n,
		Drawn:      s.points.Drawn(),
		FPS:        rl.GetFPS(),
		Busy:       s.animator.Busy(),
		Paused:     s.paused,

		SimTime:      s.collector.SimTime(),
		BusyFraction: s.collector.BusyFraction(),
	})
	if !s.hud.Visible {
		return
	}

	s.statsPanel.Draw(s.lastStats)
	if s.showPerf {
		s.perfPanel.Draw(s.perf.Stats())
	}
	if kind, ok := s.patternPanel.Draw(s.registry.All(), current); ok {
		s.pending = &kind
	}
	s.hud.DrawControls(s.screenH, controlsText)
}
