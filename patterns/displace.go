package patterns

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
	"github.com/visionbox-team/pixelfield/noise"
)

// Displace nudges the current positions by noise-weighted random offsets.
//
// Point idx reads three consecutive cells of the noise field (idx, idx+1,
// idx+2) for its x, y and z weights; indices past the end wrap around.
type Displace struct {
	Current   []r3.Vec
	Intensity float64

	// Field, when set, is sampled directly. Otherwise a field is built from
	// Noise with a seed drawn from the call's generator.
	Field *noise.Field
	Noise noise.Params
}

// Kind implements Spec.
func (d Displace) Kind() field.Kind { return KindDisplace }

func (d Displace) validate(n int) error {
	if len(d.Current) != n {
		return fmt.Errorf("%w: %d current positions for %d points", field.ErrInvalidArgument, len(d.Current), n)
	}
	if !field.Finite(d.Intensity) || d.Intensity < 0 {
		return fmt.Errorf("%w: intensity %v", field.ErrInvalidArgument, d.Intensity)
	}
	for i, p := range d.Current {
		if !field.FiniteVec(p) {
			return fmt.Errorf("%w: current position %d is not finite", field.ErrInvalidArgument, i)
		}
	}
	if d.Field != nil && d.Field.Len() == 0 {
		return fmt.Errorf("%w: empty noise field", field.ErrInvalidArgument)
	}
	return nil
}

func (d Displace) generate(n int, rng *rand.Rand) (*field.PointField, error) {
	if err := d.validate(n); err != nil {
		return nil, err
	}

	f := field.NewPointField(KindDisplace, n)
	f.Order = Shuffle(n, rng)

	nf := d.Field
	if nf == nil {
		var err error
		nf, err = noise.New(d.Noise, rng.Int64())
		if err != nil {
			return nil, err
		}
	}

	for _, idx := range f.Order {
		offset := r3.Vec{
			X: nf.Sample(idx) * d.Intensity * (rng.Float64() - 0.5),
			Y: nf.Sample(idx+1) * d.Intensity * (rng.Float64() - 0.5),
			Z: nf.Sample(idx+2) * d.Intensity * (rng.Float64() - 0.5),
		}

		p := &f.Points[idx]
		p.Position = r3.Add(d.Current[idx], offset)
		p.Set |= field.ChannelPosition
	}

	return f, nil
}
