// Package field defines the point-field data model shared by the pattern
// generators, the Voronoi queries and the animator.
package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind identifies the pattern that produced a field.
type Kind string

// Channels is a bit mask of the per-point values a pattern sets.
// A channel that is not set means the consumer keeps its prior value.
type Channels uint8

const (
	ChannelPosition Channels = 1 << iota
	ChannelScale
	ChannelColor
)

// Has reports whether all channels in c2 are set in c.
func (c Channels) Has(c2 Channels) bool {
	return c&c2 == c2
}

// String returns a compact representation such as "psc" or "-".
func (c Channels) String() string {
	s := ""
	if c.Has(ChannelPosition) {
		s += "p"
	}
	if c.Has(ChannelScale) {
		s += "s"
	}
	if c.Has(ChannelColor) {
		s += "c"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Brightness returns the unweighted mean of the three components.
func (c Color) Brightness() float64 {
	return (c.R + c.G + c.B) / 3
}

// Point is the target state of one logical point.
type Point struct {
	Position r3.Vec
	Scale    float64
	Color    Color
	Set      Channels
}

// PointField is the complete output of one pattern evaluation.
type PointField struct {
	Pattern Kind
	Seed    uint64
	Points  []Point

	// Order is the permutation used to sequence the assignment: Order[i] is
	// the logical point that received the geometry computed at step i.
	// Nil means identity order.
	Order []int
}

// NewPointField allocates a field of n points with scale 1 and nothing set.
func NewPointField(kind Kind, n int) *PointField {
	pts := make([]Point, n)
	for i := range pts {
		pts[i].Scale = 1
	}
	return &PointField{Pattern: kind, Points: pts}
}

// Len returns the number of points.
func (f *PointField) Len() int {
	return len(f.Points)
}

// Positions returns a copy of all point positions.
func (f *PointField) Positions() []r3.Vec {
	out := make([]r3.Vec, len(f.Points))
	for i := range f.Points {
		out[i] = f.Points[i].Position
	}
	return out
}

// Rank returns the inverse of Order: Rank()[idx] is the step at which
// logical point idx is assigned. Identity when Order is nil.
func (f *PointField) Rank() []int {
	rank := make([]int, len(f.Points))
	if f.Order == nil {
		for i := range rank {
			rank[i] = i
		}
		return rank
	}
	for step, idx := range f.Order {
		rank[idx] = step
	}
	return rank
}

// ApplyTo copies the channels set in f onto dst, leaving unset channels
// untouched. dst must have the same length as f.
func (f *PointField) ApplyTo(dst []Point) error {
	if len(dst) != len(f.Points) {
		return fmt.Errorf("%w: apply %d points onto %d", ErrInvalidArgument, len(f.Points), len(dst))
	}
	for i := range f.Points {
		src := &f.Points[i]
		d := &dst[i]
		if src.Set.Has(ChannelPosition) {
			d.Position = src.Position
		}
		if src.Set.Has(ChannelScale) {
			d.Scale = src.Scale
		}
		if src.Set.Has(ChannelColor) {
			d.Color = src.Color
		}
		d.Set |= src.Set
	}
	return nil
}

// Validate checks the structural invariants of the field.
func (f *PointField) Validate() error {
	n := len(f.Points)
	if n == 0 {
		return fmt.Errorf("%w: empty field", ErrInvalidArgument)
	}
	if f.Order != nil {
		if err := ValidatePermutation(f.Order, n); err != nil {
			return err
		}
	}
	for i := range f.Points {
		p := &f.Points[i]
		if p.Set.Has(ChannelScale) && !(p.Scale > 0) {
			return fmt.Errorf("%w: point %d has scale %v", ErrInvalidArgument, i, p.Scale)
		}
		if p.Set.Has(ChannelPosition) && !FiniteVec(p.Position) {
			return fmt.Errorf("%w: point %d has non-finite position", ErrInvalidArgument, i)
		}
	}
	return nil
}

// ValidatePermutation reports an error unless perm is a bijection on 0..n-1.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: permutation has %d entries, want %d", ErrInvalidArgument, len(perm), n)
	}
	seen := make([]bool, n)
	for _, idx := range perm {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: permutation entry %d invalid or repeated", ErrInvalidArgument, idx)
		}
		seen[idx] = true
	}
	return nil
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FiniteVec reports whether all components of v are finite.
func FiniteVec(v r3.Vec) bool {
	return Finite(v.X, v.Y, v.Z)
}
