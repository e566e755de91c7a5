package field

import "fmt"

// ImageSample is a decoded RGBA pixel grid, row-major, 4 bytes per pixel.
// Patterns read it; they never modify it.
type ImageSample struct {
	Width  int
	Height int
	Pix    []uint8
}

// Len returns the number of pixels.
func (s ImageSample) Len() int {
	return s.Width * s.Height
}

// RGBA returns the channels of pixel i.
func (s ImageSample) RGBA(i int) (r, g, b, a uint8) {
	o := i * 4
	return s.Pix[o], s.Pix[o+1], s.Pix[o+2], s.Pix[o+3]
}

// Color returns pixel i as a normalized color, ignoring alpha.
func (s ImageSample) Color(i int) Color {
	r, g, b, _ := s.RGBA(i)
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Validate checks that the pixel buffer matches the dimensions.
func (s ImageSample) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidArgument, s.Width, s.Height)
	}
	if len(s.Pix) != 4*s.Width*s.Height {
		return fmt.Errorf("%w: image %dx%d has %d bytes, want %d",
			ErrInvalidArgument, s.Width, s.Height, len(s.Pix), 4*s.Width*s.Height)
	}
	return nil
}
