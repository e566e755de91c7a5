package patterns

import (
	"fmt"
	"math/rand/v2"

	"github.com/visionbox-team/pixelfield/field"
)

// Image colors point i from pixel i and sizes it by the pixel's brightness.
// Points beyond the last pixel are left unset.
type Image struct {
	Sample   field.ImageSample
	MinScale float64
	MaxScale float64
}

// Kind implements Spec.
func (im Image) Kind() field.Kind { return KindImage }

func (im Image) validate() error {
	if err := im.Sample.Validate(); err != nil {
		return err
	}
	if !field.Finite(im.MinScale, im.MaxScale) || im.MinScale <= 0 || im.MaxScale < im.MinScale {
		return fmt.Errorf("%w: scale range [%v, %v]", field.ErrInvalidArgument, im.MinScale, im.MaxScale)
	}
	return nil
}

func (im Image) generate(n int, _ *rand.Rand) (*field.PointField, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}

	f := field.NewPointField(KindImage, n)
	count := min(im.Sample.Len(), n)
	for i := 0; i < count; i++ {
		c := im.Sample.Color(i)

		p := &f.Points[i]
		p.Color = c
		p.Scale = im.MinScale + c.Brightness()*(im.MaxScale-im.MinScale)
		p.Set |= field.ChannelColor | field.ChannelScale
	}

	return f, nil
}
