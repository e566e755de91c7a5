// Package patterns computes target point fields for named spatial
// arrangements. Every function is pure: all randomness comes from a
// generator seeded per call.
package patterns

import (
	"fmt"
	"math/rand/v2"

	"github.com/visionbox-team/pixelfield/field"
)

// Pattern kinds.
const (
	KindSpiral   field.Kind = "spiral"
	KindVShape   field.Kind = "vshape"
	KindDisplace field.Kind = "displace"
	KindImage    field.Kind = "image"
	KindGrid     field.Kind = "grid"
)

// MaxPoints bounds the size of a single field.
const MaxPoints = 1 << 26

// Spec selects a pattern and carries its parameters.
// It is implemented by Spiral, VShape, Displace, Image and Grid.
type Spec interface {
	Kind() field.Kind
	generate(n int, rng *rand.Rand) (*field.PointField, error)
}

// Generate evaluates spec for n points.
func Generate(n int, spec Spec, seed uint64) (*field.PointField, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: point count %d", field.ErrInvalidArgument, n)
	}
	if n > MaxPoints {
		return nil, fmt.Errorf("%w: point count %d exceeds %d", field.ErrResourceExhausted, n, MaxPoints)
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: nil pattern", field.ErrInvalidArgument)
	}

	f, err := spec.generate(n, NewRand(seed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Kind(), err)
	}
	f.Seed = seed
	return f, nil
}

// NewRand returns the generator used for a single call.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// stepT normalizes step i of n to [0, 1]. A single point sits at t = 0.
func stepT(i, n int) float64 {
	if n == 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func lerp1(a, b, t float64) float64 {
	return a + (b-a)*t
}
