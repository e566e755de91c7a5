// Noise field preview tool - tune the displacement noise with sliders.
//
// Usage: go run ./cmd/noisepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/config"
	"github.com/visionbox-team/pixelfield/noise"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

var kinds = []noise.Kind{noise.KindPerlin, noise.KindSimplex, noise.KindValue}

// panel lays out labeled slider rows top to bottom.
type panel struct {
	x, y  float32
	dirty bool
}

// slider draws one labeled slider and returns the new value.
func (p *panel) slider(label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(p.x), int32(p.y), 14, rl.Gray)
	p.y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: p.y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(p.x+float32(panelWidth-70)), int32(p.y+2), 16, rl.DarkGray)
	p.y += 35
	if next != value {
		p.dirty = true
	}
	return next
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := paramsFromConfig(cfg.Noise)
	if err := defaults.Validate(); err != nil {
		slog.Error("invalid noise config", "error", err)
		os.Exit(1)
	}
	params := defaults
	seed := int64(12345)

	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(params.Width, params.Height, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var nf *noise.Field
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			nf, err = noise.New(params, seed)
			if err != nil {
				slog.Error("generating noise", "error", err)
				params = defaults
				continue
			}
			rl.UpdateTexture(texture, pixels(nf))
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: float32(nf.Width), Height: float32(nf.Height)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		lo, hi := nf.MinMax()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Cells: %d", lo, hi, nf.Len()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Kind: %s  Seed: %d", params.Kind, seed), 15, statsY+20, 16, rl.DarkGray)

		p := &panel{x: float32(previewSize + 20), y: 10}
		rl.DrawText("Noise Field Parameters", int32(p.x), int32(p.y), 20, rl.DarkGray)
		p.y += 35

		for i, k := range kinds {
			bounds := rl.Rectangle{X: p.x + float32(i)*90, Y: p.y, Width: 84, Height: 26}
			label := string(k)
			if k == params.Kind {
				label = "> " + label
			}
			if gui.Button(bounds, label) && k != params.Kind {
				params.Kind = k
				p.dirty = true
			}
		}
		p.y += 40

		params.Scale = float64(p.slider("Scale (base frequency)", "%.1f", float32(params.Scale), 0.5, 20))
		params.Octaves = int(p.slider("Octaves", "%.0f", float32(params.Octaves), 1, 8))
		params.Lacunarity = float64(p.slider("Lacunarity (frequency multiplier)", "%.2f", float32(params.Lacunarity), 1.5, 4))
		params.Gain = float64(p.slider("Gain (amplitude multiplier)", "%.2f", float32(params.Gain), 0.2, 0.9))
		seed = int64(p.slider("Seed", "%.0f", float32(seed), 0, 99999))

		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			p.dirty = true
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			p.dirty = true
		}
		p.y += 55

		yaml := yamlSnippet(params)
		rl.DrawText("YAML Config:", int32(p.x), int32(p.y), 16, rl.DarkGray)
		p.y += 25
		for _, line := range strings.Split(yaml, "\n") {
			rl.DrawText(line, int32(p.x), int32(p.y), 14, rl.Gray)
			p.y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(p.x), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		needsRegen = p.dirty
		rl.EndDrawing()
	}
}

func paramsFromConfig(c config.NoiseConfig) noise.Params {
	return noise.Params{
		Kind:       noise.Kind(strings.ToLower(c.Kind)),
		Width:      c.Width,
		Height:     c.Height,
		Scale:      c.Scale,
		Octaves:    c.Octaves,
		Lacunarity: c.Lacunarity,
		Gain:       c.Gain,
	}
}

func yamlSnippet(p noise.Params) string {
	return fmt.Sprintf(`noise:
  kind: %s
  width: %d
  height: %d
  scale: %.1f
  octaves: %d
  lacunarity: %.2f
  gain: %.2f`,
		p.Kind, p.Width, p.Height, p.Scale, p.Octaves, p.Lacunarity, p.Gain)
}

// pixels maps the field to grayscale with the sketch's magenta tint.
func pixels(nf *noise.Field) []color.RGBA {
	out := make([]color.RGBA, len(nf.Values))
	for i, v := range nf.Values {
		v = max(0, min(v, 1))
		out[i] = color.RGBA{
			R: uint8(v * 255),
			G: uint8(v * 200),
			B: uint8(v * 250),
			A: 255,
		}
	}
	return out
}
