package noise

import (
	"math"
	"math/rand/v2"
)

// Eight unit gradients spaced 45 degrees apart.
var gradients = func() [8][2]float64 {
	var g [8][2]float64
	for i := range g {
		a := float64(i) * math.Pi / 4
		g[i] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return g
}()

// Perlin is 2D gradient noise over a seeded 256-entry lattice.
// Output lies in [-√2/2, √2/2] and is zero on lattice points.
type Perlin struct {
	perm [256]uint8
}

// NewPerlin shuffles the lattice hash table from seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	for i := range p.perm {
		p.perm[i] = uint8(i)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	rng.Shuffle(len(p.perm), func(i, j int) {
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	})
	return p
}

// corner returns the contribution of lattice corner (ix, iy) at offset (dx, dy).
func (p *Perlin) corner(ix, iy int, dx, dy float64) float64 {
	h := p.perm[(int(p.perm[ix&255])+iy)&255]
	g := gradients[h&7]
	return g[0]*dx + g[1]*dy
}

// Noise2D samples the noise at (x, y).
func (p *Perlin) Noise2D(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int(x0), int(y0)
	dx, dy := x-x0, y-y0

	n00 := p.corner(ix, iy, dx, dy)
	n10 := p.corner(ix+1, iy, dx-1, dy)
	n01 := p.corner(ix, iy+1, dx, dy-1)
	n11 := p.corner(ix+1, iy+1, dx-1, dy-1)

	u, v := quintic(dx), quintic(dy)
	bottom := n00 + u*(n10-n00)
	top := n01 + u*(n11-n01)
	return bottom + v*(top-bottom)
}

// quintic is the 6t⁵ - 15t⁴ + 10t³ interpolant.
func quintic(t float64) float64 {
	return t * t * t * (t*(6*t-15) + 10)
}
