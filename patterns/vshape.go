package patterns

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float64
}

func (r Range) valid() bool {
	return field.Finite(r.Min, r.Max) && r.Min >= 0 && r.Min <= r.Max
}

// VShape lays points along two arms meeting at Bottom. Unsnapped points are
// pushed left by a random amount drawn from the arm's jitter range.
type VShape struct {
	TopLeft     r3.Vec
	TopRight    r3.Vec
	Bottom      r3.Vec
	LeftJitter  Range
	RightJitter Range
	SnapEvery   int // every SnapEvery-th step lies exactly on its arm
}

// DefaultVShape returns the 88-unit wide V used by the sketch.
func DefaultVShape() VShape {
	return VShape{
		TopLeft:     r3.Vec{X: -44, Y: 44},
		TopRight:    r3.Vec{X: 44, Y: 44},
		Bottom:      r3.Vec{X: 0, Y: -44},
		LeftJitter:  Range{Min: 0, Max: 14},
		RightJitter: Range{Min: 1, Max: 4},
		SnapEvery:   15,
	}
}

// Kind implements Spec.
func (v VShape) Kind() field.Kind { return KindVShape }

func (v VShape) validate() error {
	if !field.FiniteVec(v.TopLeft) || !field.FiniteVec(v.TopRight) || !field.FiniteVec(v.Bottom) {
		return fmt.Errorf("%w: non-finite apex", field.ErrInvalidArgument)
	}
	if !v.LeftJitter.valid() || !v.RightJitter.valid() {
		return fmt.Errorf("%w: jitter ranges need 0 <= min <= max", field.ErrInvalidArgument)
	}
	if v.SnapEvery < 1 {
		return fmt.Errorf("%w: snap_every %d", field.ErrInvalidArgument, v.SnapEvery)
	}
	return nil
}

// arm returns the ideal point on the V for t in [0, 1] and the jitter range
// of the arm it falls on.
func (v VShape) arm(t float64) (x, y float64, jitter Range) {
	if t < 0.5 {
		alpha := t * 2
		return lerp1(v.TopLeft.X, v.Bottom.X, alpha), lerp1(v.TopLeft.Y, v.Bottom.Y, alpha), v.LeftJitter
	}
	alpha := (t - 0.5) * 2
	return lerp1(v.TopRight.X, v.Bottom.X, alpha), lerp1(v.TopRight.Y, v.Bottom.Y, alpha), v.RightJitter
}

func (v VShape) generate(n int, rng *rand.Rand) (*field.PointField, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}

	f := field.NewPointField(KindVShape, n)
	f.Order = Shuffle(n, rng)

	for i, idx := range f.Order {
		x, y, jitter := v.arm(stepT(i, n))
		if i%v.SnapEvery != 0 {
			x -= jitter.Min + rng.Float64()*(jitter.Max-jitter.Min)
		}

		p := &f.Points[idx]
		p.Position = r3.Vec{X: x, Y: y}
		p.Set |= field.ChannelPosition
	}

	return f, nil
}
