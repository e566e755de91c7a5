package voronoi

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

func randomPoints(n int, w, h float64, seed uint64) []r2.Vec {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	pts := make([]r2.Vec, n)
	for i := range pts {
		pts[i] = r2.Vec{X: rng.Float64() * w, Y: rng.Float64() * h}
	}
	return pts
}

func TestComputeInvalidInput(t *testing.T) {
	pts := []r2.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}}

	_, err := Compute(pts, 0, 10)
	require.ErrorIs(t, err, field.ErrInvalidArgument)

	_, err = Compute(pts, 10, -1)
	require.ErrorIs(t, err, field.ErrInvalidArgument)

	_, err = Compute(pts[:1], 10, 10)
	require.ErrorIs(t, err, field.ErrInvalidArgument)

	_, err = Compute([]r2.Vec{{X: math.NaN()}, {X: 1}}, 10, 10)
	require.ErrorIs(t, err, field.ErrInvalidArgument)
}

func TestCellCountAndSymmetry(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		pts := randomPoints(200, 100, 60, seed)
		d, err := Compute(pts, 100, 60)
		require.NoError(t, err)
		require.Len(t, d.Cells, len(pts))

		for i, c := range d.Cells {
			assert.Equal(t, i, c.Index)
			assert.GreaterOrEqual(t, len(c.Polygon), 3, "cell %d polygon", i)
			for _, j := range c.Neighbors {
				assert.NotEqual(t, i, j)
				assert.Contains(t, d.Cells[j].Neighbors, i, "neighbor %d of %d is not mutual", j, i)
			}
		}
	}
}

func TestCellsTileTheRectangle(t *testing.T) {
	pts := randomPoints(150, 80, 50, 9)
	d, err := Compute(pts, 80, 50)
	require.NoError(t, err)

	total := 0.0
	for i := range d.Cells {
		a := d.Area(i)
		assert.Greater(t, a, 0.0, "cell %d area", i)
		total += a
	}
	assert.InDelta(t, 80*50, total, 1e-6)
}

func TestCellContainsItsSite(t *testing.T) {
	pts := randomPoints(60, 10, 10, 4)
	d, err := Compute(pts, 10, 10)
	require.NoError(t, err)

	for i, p := range pts {
		poly := d.Cells[i].Polygon
		for k := range poly {
			edge := r2.Sub(poly[(k+1)%len(poly)], poly[k])
			rel := r2.Sub(p, poly[k])
			assert.GreaterOrEqual(t, r2.Cross(edge, rel), -1e-9, "site %d outside its cell", i)
		}
	}
}

func TestTwoPoints(t *testing.T) {
	d, err := Compute([]r2.Vec{{X: 2, Y: 5}, {X: 8, Y: 5}}, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, d.Cells[0].Neighbors)
	assert.Equal(t, []int{0}, d.Cells[1].Neighbors)
	assert.InDelta(t, 50, d.Area(0), 1e-9)
	assert.InDelta(t, 50, d.Area(1), 1e-9)
}

func TestCollinearFallsBack(t *testing.T) {
	pts := []r2.Vec{{X: 1, Y: 5}, {X: 3, Y: 5}, {X: 5, Y: 5}, {X: 7, Y: 5}}
	d, err := Compute(pts, 8, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, d.Cells[0].Neighbors)
	assert.Equal(t, []int{0, 2}, d.Cells[1].Neighbors)
	assert.Equal(t, []int{1, 3}, d.Cells[2].Neighbors)
	assert.Equal(t, []int{2}, d.Cells[3].Neighbors)
	assert.InDelta(t, 20, d.Area(0), 1e-9)
	assert.InDelta(t, 20, d.Area(1), 1e-9)
}

func TestCollinearUnsortedDiagonal(t *testing.T) {
	// Sites on y = x given out of order: only neighbours along the line link
	pts := []r2.Vec{{X: 7, Y: 7}, {X: 1, Y: 1}, {X: 5, Y: 5}, {X: 3, Y: 3}}
	d, err := Compute(pts, 8, 8)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, d.Cells[0].Neighbors)
	assert.Equal(t, []int{3}, d.Cells[1].Neighbors)
	assert.Equal(t, []int{0, 3}, d.Cells[2].Neighbors)
	assert.Equal(t, []int{1, 2}, d.Cells[3].Neighbors)
}

func gridPoints(cols, rows int) []r2.Vec {
	var pts []r2.Vec
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pts = append(pts, r2.Vec{X: float64(x)*2 + 1, Y: float64(y)*2 + 1})
		}
	}
	return pts
}

func TestCoincidentSitesShareCell(t *testing.T) {
	pts := gridPoints(3, 3)
	pts = append(pts, pts[4], pts[0], pts[4]) // 9 and 11 repeat the centre, 10 the corner
	d, err := Compute(pts, 6, 6)
	require.NoError(t, err)
	require.Len(t, d.Cells, 12)

	assert.Equal(t, []int{1, 3, 5, 7, 9, 11}, d.Cells[4].Neighbors)
	assert.Equal(t, []int{1, 3, 4, 5, 7}, d.Cells[9].Neighbors)
	assert.Equal(t, []int{0, 1, 3}, d.Cells[10].Neighbors)
	assert.Equal(t, d.Cells[4].Polygon, d.Cells[9].Polygon)
	assert.Equal(t, d.Cells[0].Polygon, d.Cells[10].Polygon)
	assert.InDelta(t, 4, d.Area(11), 1e-9)

	for i, c := range d.Cells {
		assert.Equal(t, i, c.Index)
		for _, j := range c.Neighbors {
			assert.NotEqual(t, i, j)
			assert.Contains(t, d.Cells[j].Neighbors, i, "neighbor %d of %d is not mutual", j, i)
		}
	}
	for i, depth := range d.Rings(10) {
		assert.GreaterOrEqual(t, depth, 0, "cell %d unreachable", i)
	}
	require.NoError(t, field.ValidatePermutation(d.RippleOrder(9), len(pts)))
}

func TestAllCoincident(t *testing.T) {
	pts := []r2.Vec{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}}
	d, err := Compute(pts, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, d.Cells[0].Neighbors)
	assert.Equal(t, []int{0}, d.Cells[1].Neighbors)
	assert.InDelta(t, 16, d.Area(2), 1e-9)
}

func TestDegenerateInputStaysSparse(t *testing.T) {
	const n = 20000

	dup := randomPoints(n, 500, 500, 3)
	dup[n-1] = dup[0]
	line := make([]r2.Vec, n)
	for i := range line {
		line[(i*7919)%n] = r2.Vec{X: float64(i) * 0.01, Y: 1}
	}

	for name, pts := range map[string][]r2.Vec{"duplicate": dup, "collinear": line} {
		t.Run(name, func(t *testing.T) {
			d, err := Compute(pts, 500, 500)
			require.NoError(t, err)
			total := 0
			for _, c := range d.Cells {
				total += len(c.Neighbors)
			}
			// Planar adjacency averages under six neighbours per cell; all pairs would be n-1
			assert.Less(t, total, 7*n, "adjacency is not sparse")
		})
	}
}

func TestGridNeighbors(t *testing.T) {
	// 3x3 lattice: cocircular quads must not link diagonals
	var pts []r2.Vec
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			pts = append(pts, r2.Vec{X: float64(x)*2 + 1, Y: float64(y)*2 + 1})
		}
	}
	d, err := Compute(pts, 6, 6)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 5, 7}, d.Cells[4].Neighbors)
	assert.Equal(t, []int{1, 3}, d.Cells[0].Neighbors)
	assert.InDelta(t, 4, d.Area(4), 1e-9)
}

func TestRingsAndRipple(t *testing.T) {
	pts := []r2.Vec{{X: 1, Y: 5}, {X: 3, Y: 5}, {X: 5, Y: 5}, {X: 7, Y: 5}}
	d, err := Compute(pts, 8, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1, 0, 1}, d.Rings(2))
	order := d.RippleOrder(2)
	assert.Equal(t, []int{2, 1, 3, 0}, order)
	require.NoError(t, field.ValidatePermutation(order, len(pts)))

	for _, v := range d.Rings(99) {
		assert.Equal(t, -1, v)
	}
}

func TestProject(t *testing.T) {
	pts := []field.Point{{Position: r3.Vec{X: 1, Y: 2, Z: 3}}}
	assert.Equal(t, []r2.Vec{{X: 1, Y: 2}}, Project(pts))
}

func BenchmarkCompute(b *testing.B) {
	pts := randomPoints(2000, 100, 100, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compute(pts, 100, 100)
	}
}
