package animate

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

// Index ties an entity to its logical point.
type Index struct {
	I int
}

// Transform is the current placement of a point.
type Transform struct {
	Position r3.Vec
	Scale    float64
}

// Tint is the current color of a point.
type Tint struct {
	Color field.Color
}

// Track interpolates up to three values from From to To after Delay seconds.
type Track struct {
	From, To [3]float64
	Delay    float64
	Duration float64
	Elapsed  float64
	Ease     Ease
	Active   bool
}

// Motion holds the in-flight tracks of a point, one per channel.
type Motion struct {
	Position Track
	Scale    Track
	Color    Track
}

// start begins a track from the current value toward target.
func (tr *Track) start(from, to [3]float64, delay float64, t Timing) {
	tr.From = from
	tr.To = to
	tr.Delay = delay
	tr.Duration = t.Duration
	tr.Elapsed = 0
	tr.Ease = t.Ease
	tr.Active = true
}

// advance moves the track forward by dt and returns the current value.
func (tr *Track) advance(dt float64) [3]float64 {
	tr.Elapsed += dt
	local := tr.Elapsed - tr.Delay
	if local < 0 {
		return tr.From
	}
	if tr.Duration <= 0 || local >= tr.Duration {
		tr.Active = false
		return tr.To
	}

	ease := tr.Ease
	if ease == nil {
		ease = Linear
	}
	k := ease(local / tr.Duration)

	var v [3]float64
	for i := range v {
		v[i] = tr.From[i] + (tr.To[i]-tr.From[i])*k
	}
	return v
}

func vecArr(v r3.Vec) [3]float64        { return [3]float64{v.X, v.Y, v.Z} }
func arrVec(a [3]float64) r3.Vec        { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }
func colorArr(c field.Color) [3]float64 { return [3]float64{c.R, c.G, c.B} }
func arrColor(a [3]float64) field.Color { return field.Color{R: a[0], G: a[1], B: a[2]} }
