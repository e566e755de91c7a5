package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/noise"
)

// Backdrop renders the displacement noise field as a dim full-screen texture.
// New fields fade in with CPU-side exponential smoothing.
type Backdrop struct {
	tex        rl.Texture2D
	texW, texH int

	// Double-buffered data for smooth CPU-side blending
	current  []float32 // Target values
	display  []float32 // Currently displayed (interpolated)
	blending bool

	tint             [3]float32
	screenW, screenH float32
	initialized      bool
}

// NewBackdrop creates a backdrop tinted with the given base color.
func NewBackdrop(screenW, screenH int32, baseR, baseG, baseB uint8) *Backdrop {
	return &Backdrop{
		screenW: float32(screenW),
		screenH: float32(screenH),
		tint: [3]float32{
			float32(baseR) / 255.0,
			float32(baseG) / 255.0,
			float32(baseB) / 255.0,
		},
	}
}

// init allocates the texture (must be called after raylib window is created).
func (b *Backdrop) init(w, h int) {
	if b.initialized && w == b.texW && h == b.texH {
		return
	}
	if b.initialized {
		rl.UnloadTexture(b.tex)
	}

	b.texW = w
	b.texH = h

	img := rl.GenImageColor(w, h, rl.Black)
	b.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	rl.SetTextureFilter(b.tex, rl.FilterBilinear)
	rl.SetTextureWrap(b.tex, rl.WrapRepeat)

	b.current = make([]float32, w*h)
	b.display = make([]float32, w*h)
	b.initialized = true
}

// SetField sets a new target noise field.
func (b *Backdrop) SetField(f *noise.Field) {
	if f == nil || f.Len() == 0 {
		return
	}
	b.init(f.Width, f.Height)

	for i, v := range f.Values {
		b.current[i] = float32(v)
	}
	b.blending = true
}

// Draw renders the backdrop, blending toward the current field.
func (b *Backdrop) Draw(dt float32) {
	if !b.initialized {
		return
	}

	if b.blending {
		blendRate := min(float32(1.5)*dt, 1) // Smooth over ~0.7 seconds

		allDone := true
		for i := range b.display {
			diff := b.current[i] - b.display[i]
			if diff > 0.001 || diff < -0.001 {
				b.display[i] += diff * blendRate
				allDone = false
			} else {
				b.display[i] = b.current[i]
			}
		}
		if allDone {
			b.blending = false
		}

		b.uploadTexture()
	}

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(b.texW), Height: float32(b.texH)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: b.screenW, Height: b.screenH}
	rl.DrawTexturePro(b.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// uploadTexture converts the display buffer to tinted pixels and uploads.
func (b *Backdrop) uploadTexture() {
	pixels := make([]color.RGBA, len(b.display))
	for i, val := range b.display {
		val = max(0, min(val, 1)) * 0.25
		pixels[i] = color.RGBA{
			R: uint8(val * b.tint[0] * 255),
			G: uint8(val * b.tint[1] * 255),
			B: uint8(val * b.tint[2] * 255),
			A: 255,
		}
	}
	rl.UpdateTexture(b.tex, pixels)
}

// Resize updates the destination rectangle.
func (b *Backdrop) Resize(screenW, screenH int32) {
	b.screenW = float32(screenW)
	b.screenH = float32(screenH)
}

// Unload frees resources.
func (b *Backdrop) Unload() {
	if b.initialized {
		rl.UnloadTexture(b.tex)
		b.initialized = false
	}
}
