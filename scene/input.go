package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard and mouse input.
func (s *Scene) handleInput() {
	s.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}
	if rl.IsKeyPressed(rl.KeyN) || rl.IsKeyPressed(rl.KeyRight) {
		kind := s.sequence[(s.step+1)%len(s.sequence)]
		s.pending = &kind
	}

	// Number keys pick patterns in registry order
	for i, kind := range s.registry.Kinds() {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
			k := kind
			s.pending = &k
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		s.rig.Reset()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		s.cells.Visible = !s.cells.Visible
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.hud.Visible = !s.hud.Visible
	}
	if rl.IsKeyPressed(rl.KeyP) {
		s.showPerf = !s.showPerf
	}

	s.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (s *Scene) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == s.screenW && h == s.screenH {
		return
	}
	s.screenW = w
	s.screenH = h

	s.cam.Resize(float64(w), float64(h))
	s.backdrop.Resize(w, h)
	s.layoutPanels()
}

// handleCameraInput orbits, pans and zooms the camera. Ctrl+click picks the
// ripple origin on the z = 0 plane.
func (s *Scene) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overPanel := s.hud.Visible && s.patternPanel.Contains(mouse.X, mouse.Y, len(s.registry.All()))
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		s.dragging = !overPanel && !ctrl
		if ctrl && !overPanel {
			if p, ok := s.cam.ScreenToPlane(float64(mouse.X), float64(mouse.Y)); ok {
				s.rippleAt = &r2.Vec{X: p.X, Y: p.Y}
			}
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		s.dragging = false
	}

	delta := rl.GetMouseDelta()
	if s.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		s.rig.Orbit(float64(delta.X), float64(delta.Y))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		s.rig.Pan(float64(delta.X), float64(delta.Y))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.rig.ZoomBy(1 + float64(wheel)*0.1)
	}
}
