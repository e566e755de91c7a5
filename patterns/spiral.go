package patterns

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

// Spiral places points along an Archimedean spiral that climbs in z.
type Spiral struct {
	StartRadius float64 // radius at theta = 0
	WindRate    float64 // radius growth per radian
	ZFactor     float64 // z growth per radian
	Turns       float64 // total angle swept, radians
}

// DefaultSpiral returns five full loops starting just off the axis.
func DefaultSpiral() Spiral {
	return Spiral{
		StartRadius: 0.3,
		WindRate:    1,
		ZFactor:     3,
		Turns:       10 * math.Pi,
	}
}

// Kind implements Spec.
func (s Spiral) Kind() field.Kind { return KindSpiral }

func (s Spiral) validate() error {
	if !field.Finite(s.StartRadius, s.WindRate, s.ZFactor, s.Turns) {
		return fmt.Errorf("%w: non-finite spiral parameter", field.ErrInvalidArgument)
	}
	if s.StartRadius < 0 || s.WindRate <= 0 || s.ZFactor < 0 || s.Turns <= 0 {
		return fmt.Errorf("%w: spiral needs start_radius>=0, wind_rate>0, z_factor>=0, turns>0", field.ErrInvalidArgument)
	}
	return nil
}

func (s Spiral) generate(n int, rng *rand.Rand) (*field.PointField, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	f := field.NewPointField(KindSpiral, n)
	f.Order = Shuffle(n, rng)

	for i, idx := range f.Order {
		theta := stepT(i, n) * s.Turns
		r := s.StartRadius + s.WindRate*theta

		p := &f.Points[idx]
		p.Position = r3.Vec{
			X: r * math.Cos(theta),
			Y: r * math.Sin(theta),
			Z: s.ZFactor * theta,
		}
		p.Set |= field.ChannelPosition
	}

	// Scales are drawn per logical point, after the shuffle
	for idx := range f.Points {
		f.Points[idx].Scale = 0.5 + rng.Float64()*0.5
		f.Points[idx].Set |= field.ChannelScale
	}

	return f, nil
}
