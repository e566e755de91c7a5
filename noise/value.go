package noise

import "math"

// valueNoise2D is lattice value noise at freq over the unit square. The lattice
// has max(1, int(freq)) cells per side and wraps, so the field tiles.
func valueNoise2D(u, v, freq float64, seed uint32) float64 {
	period := max(1, int(freq))
	x, y := u*freq, v*freq
	x0, y0 := math.Floor(x), math.Floor(y)
	tx, ty := smoothstep(x-x0), smoothstep(y-y0)

	cx := [2]int{wrap(int(x0), period), wrap(int(x0)+1, period)}
	cy := [2]int{wrap(int(y0), period), wrap(int(y0)+1, period)}

	lo := lattice(cx[0], cy[0], seed)
	lo += (lattice(cx[1], cy[0], seed) - lo) * tx
	hi := lattice(cx[0], cy[1], seed)
	hi += (lattice(cx[1], cy[1], seed) - hi) * tx
	return lo + (hi-lo)*ty
}

// lattice hashes a cell corner to [0, 1).
func lattice(ix, iy int, seed uint32) float64 {
	h := uint32(ix)*0x165667B1 + uint32(iy)*0x27D4EB2F + seed*0x9E3779B1
	h ^= h >> 15
	h *= 0x85EBCA77
	h ^= h >> 13
	return float64(h>>8) / (1 << 24)
}

func wrap(a, m int) int {
	return ((a % m) + m) % m
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}
