// Package renderer draws the animated point buffers with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/animate"
	"github.com/visionbox-team/pixelfield/camera"
)

// PointRenderer draws each point as a thin square tile facing +Z.
type PointRenderer struct {
	PixelSize float32
	Depth     float32 // tile thickness relative to its size

	// Cull skips points the camera cannot see
	Cull bool

	drawn int
}

// NewPointRenderer creates a point renderer for tiles of the given size.
func NewPointRenderer(pixelSize float32) *PointRenderer {
	return &PointRenderer{
		PixelSize: pixelSize,
		Depth:     0.1,
		Cull:      true,
	}
}

// Camera3D converts the orbit camera to a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	_, _, up := c.Basis()
	return rl.Camera3D{
		Position:   vec3(c.Position()),
		Target:     vec3(c.Target),
		Up:         vec3(up),
		Fovy:       float32(c.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the buffers. Must be called between BeginMode3D and EndMode3D.
func (r *PointRenderer) Draw(b *animate.Buffers, cam *camera.Camera) {
	r.drawn = 0
	n := b.Len()
	for i := 0; i < n; i++ {
		o := i * 3
		pos := rl.Vector3{X: b.Offsets[o], Y: b.Offsets[o+1], Z: b.Offsets[o+2]}
		size := r.PixelSize * b.Scales[i]
		if size <= 0 {
			continue
		}

		if r.Cull && cam != nil {
			p := r3.Vec{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)}
			if !cam.IsVisible(p, float64(size)) {
				continue
			}
		}

		col := rl.Color{
			R: unit8(b.Colors[o]),
			G: unit8(b.Colors[o+1]),
			B: unit8(b.Colors[o+2]),
			A: 255,
		}
		rl.DrawCube(pos, size, size, size*r.Depth, col)
		r.drawn++
	}
}

// Drawn returns how many points the last Draw emitted.
func (r *PointRenderer) Drawn() int {
	return r.drawn
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// unit8 maps [0, 1] to a byte, clamping elastic overshoot.
func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
