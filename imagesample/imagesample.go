// Package imagesample decodes images into the RGBA pixel grids consumed by
// the image pattern.
package imagesample

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/visionbox-team/pixelfield/field"
)

// Decode reads any registered image format and returns the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	return img, format, nil
}

// Load decodes the image at path and resamples it to cols x rows.
// Zero cols or rows keep the native size along that axis.
func Load(path string, cols, rows int) (field.ImageSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return field.ImageSample{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return field.ImageSample{}, err
	}
	return FromImage(img, cols, rows), nil
}

// FromImage converts img to an ImageSample of cols x rows pixels.
// Zero cols or rows keep the native size along that axis.
func FromImage(img image.Image, cols, rows int) field.ImageSample {
	b := img.Bounds()
	if cols <= 0 {
		cols = b.Dx()
	}
	if rows <= 0 {
		rows = b.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows))
	if cols == b.Dx() && rows == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}

	return field.ImageSample{
		Width:  cols,
		Height: rows,
		Pix:    dst.Pix,
	}
}

// FitColumns returns the grid size with the image's aspect ratio that holds
// at most maxPoints pixels.
func FitColumns(img image.Image, maxPoints int) (cols, rows int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || maxPoints <= 0 {
		return 0, 0
	}
	if w*h <= maxPoints {
		return w, h
	}

	cols = min(w, int(float64(w)*math.Sqrt(float64(maxPoints)/float64(w*h)))+1)
	for cols > 1 {
		rows = max(1, cols*h/w)
		if cols*rows <= maxPoints {
			return cols, rows
		}
		cols--
	}
	return 1, 1
}
