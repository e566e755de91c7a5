package renderer

import (
	"github.com/crazy3lf/colorconv"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/visionbox-team/pixelfield/voronoi"
)

// CellOverlay draws Voronoi cell outlines on the z = 0 plane, shaded by ring
// depth from the ripple origin.
type CellOverlay struct {
	diagram *voronoi.Diagram
	rings   []int
	maxRing int
	origin  r2.Vec // world position of the diagram's (0, 0) corner

	Visible bool
}

// NewCellOverlay creates a hidden overlay.
func NewCellOverlay() *CellOverlay {
	return &CellOverlay{}
}

// SetDiagram replaces the diagram. origin maps diagram space back to world
// space: world = diagram + origin.
func (c *CellOverlay) SetDiagram(d *voronoi.Diagram, origin r2.Vec, start int) {
	c.diagram = d
	c.origin = origin
	c.rings = nil
	c.maxRing = 0
	if d == nil {
		return
	}
	c.rings = d.Rings(start)
	for _, r := range c.rings {
		c.maxRing = max(c.maxRing, r)
	}
}

// Draw renders the outlines. Must be called between BeginMode3D and EndMode3D.
func (c *CellOverlay) Draw() {
	if !c.Visible || c.diagram == nil {
		return
	}
	for i, cell := range c.diagram.Cells {
		col := c.ringColor(i)
		poly := WorldPolygon(cell.Polygon, c.origin)
		for k := range poly {
			a, b := poly[k], poly[(k+1)%len(poly)]
			rl.DrawLine3D(
				rl.Vector3{X: float32(a.X), Y: float32(a.Y)},
				rl.Vector3{X: float32(b.X), Y: float32(b.Y)},
				col,
			)
		}
	}
}

// WorldPolygon translates a polygon from diagram space, whose (0, 0) corner
// sits at origin, back to world xy.
func WorldPolygon(poly []r2.Vec, origin r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(poly))
	for i, p := range poly {
		out[i] = r2.Add(p, origin)
	}
	return out
}

func (c *CellOverlay) ringColor(i int) rl.Color {
	if c.rings == nil || c.rings[i] < 0 || c.maxRing == 0 {
		return rl.Color{R: 80, G: 80, B: 90, A: 120}
	}
	return RingColor(c.rings[i], c.maxRing)
}

// RingColor maps ring depth to a hue sweep from magenta at the origin
// through blue to cyan at the outermost ring.
func RingColor(ring, maxRing int) rl.Color {
	t := 0.0
	if maxRing > 0 {
		t = float64(min(max(ring, 0), maxRing)) / float64(maxRing)
	}
	r, g, b, err := colorconv.HSVToRGB(302-122*t, 1, 0.9-0.3*t)
	if err != nil {
		return rl.Gray
	}
	return rl.Color{R: r, G: g, B: b, A: 170}
}
