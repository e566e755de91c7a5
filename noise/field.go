// Package noise builds coherent 2D noise fields that are sampled by index.
package noise

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"github.com/visionbox-team/pixelfield/field"
)

// Kind selects the noise backend.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
	KindValue   Kind = "value"
)

// Params describes a noise field. Values are normalized to [0, 1].
type Params struct {
	Kind       Kind
	Width      int
	Height     int
	Scale      float64 // base frequency across the field
	Octaves    int
	Lacunarity float64 // frequency multiplier per octave
	Gain       float64 // amplitude multiplier per octave
}

// DefaultParams returns a 4-octave Perlin field of the given size.
func DefaultParams(width, height int) Params {
	return Params{
		Kind:       KindPerlin,
		Width:      width,
		Height:     height,
		Scale:      4.1,
		Octaves:    4,
		Lacunarity: 2,
		Gain:       0.5,
	}
}

// Validate checks that the parameters describe a non-empty field.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: noise field size %dx%d", field.ErrInvalidArgument, p.Width, p.Height)
	}
	if p.Octaves < 1 {
		return fmt.Errorf("%w: noise octaves %d", field.ErrInvalidArgument, p.Octaves)
	}
	if !field.Finite(p.Scale, p.Lacunarity, p.Gain) || p.Scale <= 0 || p.Lacunarity <= 0 || p.Gain <= 0 {
		return fmt.Errorf("%w: noise scale/lacunarity/gain must be positive", field.ErrInvalidArgument)
	}
	switch p.Kind {
	case KindPerlin, KindSimplex, KindValue:
	default:
		return fmt.Errorf("%w: unknown noise kind %q", field.ErrInvalidArgument, p.Kind)
	}
	return nil
}

// Field is a width*height grid of noise values, row-major.
type Field struct {
	Width  int
	Height int
	Values []float64
}

// New generates a field for p seeded by seed.
func New(p Params, seed int64) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sample := sampler(p.Kind, seed)
	f := &Field{
		Width:  p.Width,
		Height: p.Height,
		Values: make([]float64, p.Width*p.Height),
	}
	fillRows(f, p, sample)
	return f, nil
}

// sampler returns the single-octave sampler for kind, mapped to [0, 1].
func sampler(kind Kind, seed int64) func(u, v, freq float64) float64 {
	var sample func(u, v, freq float64) float64
	switch kind {
	case KindPerlin:
		perlin := NewPerlin(seed)
		sample = func(u, v, freq float64) float64 {
			return (perlin.Noise2D(u*freq, v*freq) + 1) / 2
		}
	case KindSimplex:
		simplex := opensimplex.NewNormalized(seed)
		sample = func(u, v, freq float64) float64 {
			return simplex.Eval2(u*freq, v*freq)
		}
	case KindValue:
		s := uint32(seed)
		sample = func(u, v, freq float64) float64 {
			return valueNoise2D(u, v, freq, s)
		}
	}
	return sample
}

// fillRange computes rows [start, end) of f.
func fillRange(f *Field, p Params, sample func(u, v, freq float64) float64, start, end int) {
	for y := start; y < end; y++ {
		v := (float64(y) + 0.5) / float64(p.Height)
		for x := 0; x < p.Width; x++ {
			u := (float64(x) + 0.5) / float64(p.Width)
			f.Values[y*p.Width+x] = fbm(u, v, p, sample)
		}
	}
}

// fbm sums octaves and normalizes by the total amplitude.
func fbm(u, v float64, p Params, sample func(u, v, freq float64) float64) float64 {
	sum := 0.0
	total := 0.0
	amp := 1.0
	freq := p.Scale

	for o := 0; o < p.Octaves; o++ {
		sum += amp * sample(u, v, freq)
		total += amp
		freq *= p.Lacunarity
		amp *= p.Gain
	}

	return clamp01(sum / total)
}

// Len returns the number of cells.
func (f *Field) Len() int {
	return len(f.Values)
}

// At returns the value at cell (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Sample returns the value at linear index i, wrapping past either end so
// every index maps to a cell.
func (f *Field) Sample(i int) float64 {
	return f.Values[wrap(i, len(f.Values))]
}

// MinMax returns the smallest and largest values in the field.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = 1, 0
	for _, v := range f.Values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
