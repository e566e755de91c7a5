package voronoi

import (
	"cmp"
	"slices"
)

// Rings returns the breadth-first distance, in cells, from start to every
// cell. Unreachable cells get -1.
func (d *Diagram) Rings(start int) []int {
	depth := make([]int, len(d.Cells))
	for i := range depth {
		depth[i] = -1
	}
	if start < 0 || start >= len(d.Cells) {
		return depth
	}

	depth[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range d.Cells[cur].Neighbors {
			if depth[nb] < 0 {
				depth[nb] = depth[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return depth
}

// RippleOrder returns a permutation of the cells sorted by ring distance from
// start, ties broken by index. Unreachable cells come last. The result can be
// used as a PointField order so an animation spreads outward from start.
func (d *Diagram) RippleOrder(start int) []int {
	depth := d.Rings(start)
	order := make([]int, len(depth))
	for i := range order {
		order[i] = i
	}

	key := func(i int) int {
		if depth[i] < 0 {
			return len(depth)
		}
		return depth[i]
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(key(a), key(b))
	})
	return order
}
