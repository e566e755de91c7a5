// Package voronoi computes Voronoi cells clipped to a rectangle and the
// adjacency between them.
package voronoi

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/visionbox-team/pixelfield/field"
)

// Cell is the clipped Voronoi region of one input point.
type Cell struct {
	Index     int
	Polygon   []r2.Vec // counter-clockwise; nil when the cell lies outside the bounds
	Neighbors []int    // sorted indices of cells sharing an edge
}

// Diagram is the Voronoi diagram of a point set inside [0,0]-[Width,Height].
type Diagram struct {
	Width  float64
	Height float64
	Cells  []Cell
}

// Rectangle edges carry negative labels; bisector edges carry the index of
// the point on the other side.
const (
	edgeBottom = -1 - iota
	edgeRight
	edgeTop
	edgeLeft
)

type vertex struct {
	p    r2.Vec
	edge int // label of the edge from p to the next vertex
}

// Compute builds the diagram for points inside the rectangle [0,0]-[width,height].
func Compute(points []r2.Vec, width, height float64) (*Diagram, error) {
	if !field.Finite(width, height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bounds %vx%v", field.ErrInvalidArgument, width, height)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", field.ErrInvalidArgument, len(points))
	}
	for i, p := range points {
		if !field.Finite(p.X, p.Y) {
			return nil, fmt.Errorf("%w: point %d is not finite", field.ErrInvalidArgument, i)
		}
	}

	eps := 1e-9 * math.Max(width, height)
	sites, rep := dedupe(points)
	candidates := neighborCandidates(points, sites)

	d := &Diagram{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, len(points)),
	}
	adjacent := make([]map[int]struct{}, len(points))
	for i := range points {
		adjacent[i] = make(map[int]struct{})
	}
	link := func(a, b int) {
		adjacent[a][b] = struct{}{}
		adjacent[b][a] = struct{}{}
	}

	// Cells are clipped once per distinct site. Edge labels are site indices.
	polys := make([][]r2.Vec, len(points))
	for _, i := range sites {
		pi := points[i]
		poly := []vertex{
			{r2.Vec{X: 0, Y: 0}, edgeBottom},
			{r2.Vec{X: width, Y: 0}, edgeRight},
			{r2.Vec{X: width, Y: height}, edgeTop},
			{r2.Vec{X: 0, Y: height}, edgeLeft},
		}
		for _, j := range candidates[i] {
			poly = clip(poly, pi, points[j], j, eps)
			if len(poly) == 0 {
				break
			}
		}
		poly = dropShortEdges(poly, eps)
		if len(poly) < 3 {
			continue
		}
		polys[i] = make([]r2.Vec, len(poly))
		for k, v := range poly {
			polys[i][k] = v.p
			if v.edge >= 0 {
				link(i, v.edge)
			}
		}
	}

	// A coincident point shares its site's cell, neighbours its site, and
	// is linked to the site of every adjacent cell.
	members := make(map[int][]int)
	for i, r := range rep {
		if r != i {
			members[r] = append(members[r], i)
		}
	}
	siteNbrs := make(map[int][]int, len(members))
	for r := range members {
		for j := range adjacent[r] {
			siteNbrs[r] = append(siteNbrs[r], j)
		}
	}
	for r, dups := range members {
		for _, i := range dups {
			link(i, r)
			for _, j := range siteNbrs[r] {
				link(i, j)
			}
		}
	}

	for i := range d.Cells {
		d.Cells[i].Index = i
		if poly := polys[rep[i]]; poly != nil {
			d.Cells[i].Polygon = slices.Clone(poly)
		}
		nbrs := make([]int, 0, len(adjacent[i]))
		for j := range adjacent[i] {
			nbrs = append(nbrs, j)
		}
		slices.Sort(nbrs)
		d.Cells[i].Neighbors = nbrs
	}

	return d, nil
}

// dedupe returns the indices of the first occurrence of each distinct point,
// and for every point the index of its first occurrence.
func dedupe(points []r2.Vec) (sites, rep []int) {
	first := make(map[r2.Vec]int, len(points))
	rep = make([]int, len(points))
	for i, p := range points {
		if j, ok := first[p]; ok {
			rep[i] = j
			continue
		}
		first[p] = i
		rep[i] = i
		sites = append(sites, i)
	}
	return sites, rep
}

// neighborCandidates returns, for every site, the sites whose bisectors can
// bound its cell. Indices refer to points; non-site entries are nil.
func neighborCandidates(points []r2.Vec, sites []int) [][]int {
	sets := make([]map[int]struct{}, len(points))
	for _, i := range sites {
		sets[i] = make(map[int]struct{})
	}
	link := func(a, b int) {
		sets[a][b] = struct{}{}
		sets[b][a] = struct{}{}
	}

	if !delaunayLinks(points, sites, link) {
		// Collinear sites: only consecutive ones along the line share an edge.
		chain := slices.Clone(sites)
		slices.SortFunc(chain, func(a, b int) int {
			if c := cmp.Compare(points[a].X, points[b].X); c != 0 {
				return c
			}
			return cmp.Compare(points[a].Y, points[b].Y)
		})
		for k := 1; k < len(chain); k++ {
			link(chain[k-1], chain[k])
		}
	}

	// Sites the triangulation left out borrow from their nearest site.
	for _, i := range sites {
		if len(sets[i]) > 0 || len(sites) < 2 {
			continue
		}
		near := nearestSite(points, sites, i)
		for j := range sets[near] {
			if j != i {
				link(i, j)
			}
		}
		link(i, near)
	}

	out := make([][]int, len(points))
	for _, i := range sites {
		out[i] = make([]int, 0, len(sets[i]))
		for j := range sets[i] {
			out[i] = append(out[i], j)
		}
		slices.Sort(out[i])
	}
	return out
}

// delaunayLinks reports the Delaunay edges between sites through link. It
// returns false when no triangulation exists (fewer than three sites or all
// collinear).
func delaunayLinks(points []r2.Vec, sites []int, link func(a, b int)) bool {
	if len(sites) < 3 {
		return false
	}
	pts := make([]delaunay.Point, len(sites))
	for k, i := range sites {
		pts[k] = delaunay.Point{X: points[i].X, Y: points[i].Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil || len(tri.Triangles) == 0 {
		return false
	}
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		a, b, c := sites[tri.Triangles[t]], sites[tri.Triangles[t+1]], sites[tri.Triangles[t+2]]
		link(a, b)
		link(b, c)
		link(c, a)
	}
	return true
}

func nearestSite(points []r2.Vec, sites []int, i int) int {
	best, bestD := -1, math.Inf(1)
	for _, j := range sites {
		if j == i {
			continue
		}
		if d := r2.Norm2(r2.Sub(points[j], points[i])); d < bestD {
			best, bestD = j, d
		}
	}
	return best
}

// clip intersects poly with the half-plane of points closer to a than to b.
// The new edge along the bisector is labeled with label.
func clip(poly []vertex, a, b r2.Vec, label int, eps float64) []vertex {
	dir := r2.Sub(b, a)
	length := r2.Norm(dir)
	mid := r2.Scale(0.5, r2.Add(a, b))
	side := func(p r2.Vec) float64 {
		return r2.Dot(r2.Sub(p, mid), dir) / length
	}

	out := make([]vertex, 0, len(poly)+1)
	for k := range poly {
		cur := poly[k]
		next := poly[(k+1)%len(poly)]
		dc := side(cur.p)
		dn := side(next.p)
		curIn := dc <= eps
		nextIn := dn <= eps

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := dc / (dc - dn)
			ip := r2.Add(cur.p, r2.Scale(t, r2.Sub(next.p, cur.p)))
			if curIn {
				out = append(out, vertex{ip, label})
			} else {
				out = append(out, vertex{ip, cur.edge})
			}
		}
	}
	return out
}

// dropShortEdges removes vertices whose outgoing edge is shorter than eps.
func dropShortEdges(poly []vertex, eps float64) []vertex {
	for changed := true; changed && len(poly) > 0; {
		changed = false
		for k := 0; k < len(poly); k++ {
			next := poly[(k+1)%len(poly)]
			if r2.Norm(r2.Sub(next.p, poly[k].p)) <= eps {
				poly = append(poly[:k], poly[k+1:]...)
				changed = true
				break
			}
		}
	}
	return poly
}

// Project drops z from the positions of pts.
func Project(pts []field.Point) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Vec{X: p.Position.X, Y: p.Position.Y}
	}
	return out
}

// Area returns the area of cell i.
func (d *Diagram) Area(i int) float64 {
	poly := d.Cells[i].Polygon
	sum := 0.0
	for k := range poly {
		sum += r2.Cross(poly[k], poly[(k+1)%len(poly)])
	}
	return sum / 2
}
