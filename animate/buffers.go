package animate

import (
	"gonum.org/v1/gonum/blas/blas32"
)

// Buffers are the flat per-point arrays the renderer uploads each frame.
// Offsets and Colors hold three floats per point, Scales one.
type Buffers struct {
	Offsets []float32
	Scales  []float32
	Colors  []float32
}

// NewBuffers allocates buffers for n points.
func NewBuffers(n int) *Buffers {
	return &Buffers{
		Offsets: make([]float32, n*3),
		Scales:  make([]float32, n),
		Colors:  make([]float32, n*3),
	}
}

// Len returns the number of points.
func (b *Buffers) Len() int {
	return len(b.Scales)
}

func (b *Buffers) set(i int, tr Transform, tint Tint) {
	o := i * 3
	b.Offsets[o] = float32(tr.Position.X)
	b.Offsets[o+1] = float32(tr.Position.Y)
	b.Offsets[o+2] = float32(tr.Position.Z)
	b.Scales[i] = float32(tr.Scale)
	b.Colors[o] = float32(tint.Color.R)
	b.Colors[o+1] = float32(tint.Color.G)
	b.Colors[o+2] = float32(tint.Color.B)
}

// Blend moves b toward src by t in [0, 1]: b = (1-t)*b + t*src.
// Used for motion trails; t = 1 copies src.
func (b *Buffers) Blend(src *Buffers, t float32) {
	blend := func(dst, s []float32) {
		n := min(len(dst), len(s))
		if n == 0 {
			return
		}
		vd := blas32.Vector{N: n, Inc: 1, Data: dst}
		vs := blas32.Vector{N: n, Inc: 1, Data: s}
		blas32.Scal(1-t, vd)
		blas32.Axpy(t, vs, vd)
	}
	blend(b.Offsets, src.Offsets)
	blend(b.Scales, src.Scales)
	blend(b.Colors, src.Colors)
}

// CopyFrom overwrites b with src.
func (b *Buffers) CopyFrom(src *Buffers) {
	copy(b.Offsets, src.Offsets)
	copy(b.Scales, src.Scales)
	copy(b.Colors, src.Colors)
}
