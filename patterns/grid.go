package patterns

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

// Grid lays points out row by row like the pixels of an image, centered on
// the origin with y pointing up.
type Grid struct {
	Columns   int
	PixelSize float64
}

// Kind implements Spec.
func (g Grid) Kind() field.Kind { return KindGrid }

func (g Grid) generate(n int, _ *rand.Rand) (*field.PointField, error) {
	if g.Columns < 1 {
		return nil, fmt.Errorf("%w: grid columns %d", field.ErrInvalidArgument, g.Columns)
	}
	if !field.Finite(g.PixelSize) || g.PixelSize <= 0 {
		return nil, fmt.Errorf("%w: pixel size %v", field.ErrInvalidArgument, g.PixelSize)
	}

	rows := (n + g.Columns - 1) / g.Columns
	offX := float64(g.Columns-1) / 2
	offY := float64(rows-1) / 2

	f := field.NewPointField(KindGrid, n)
	for i := range f.Points {
		col := float64(i % g.Columns)
		row := float64(i / g.Columns)

		p := &f.Points[i]
		p.Position = r3.Vec{
			X: (col - offX) * g.PixelSize,
			Y: -(row - offY) * g.PixelSize,
		}
		p.Scale = 1
		p.Set |= field.ChannelPosition | field.ChannelScale
	}

	return f, nil
}
