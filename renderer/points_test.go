package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/visionbox-team/pixelfield/camera"
	"github.com/visionbox-team/pixelfield/voronoi"
)

func TestUnit8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-0.3, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{1.4, 255},
	}
	for _, tt := range tests {
		if got := unit8(tt.in); got != tt.want {
			t.Errorf("unit8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCamera3D(t *testing.T) {
	cam := camera.New(800, 600, 50)
	rc := Camera3D(cam)

	if rc.Position.Z != 50 || rc.Target != (rl.Vector3{}) {
		t.Errorf("unexpected eye %v target %v", rc.Position, rc.Target)
	}
	if math.Abs(float64(rc.Up.Y-1)) > 1e-6 {
		t.Errorf("expected +Y up, got %v", rc.Up)
	}
	if rc.Fovy != 75 || rc.Projection != rl.CameraPerspective {
		t.Errorf("unexpected projection %v %v", rc.Fovy, rc.Projection)
	}
}

func TestRingColor(t *testing.T) {
	origin := RingColor(0, 5)
	outer := RingColor(5, 5)
	if origin.R < origin.G || origin.B < origin.G {
		t.Errorf("origin ring should be magenta, got %v", origin)
	}
	if outer.G < outer.R {
		t.Errorf("outer ring should be cyan, got %v", outer)
	}
	if RingColor(9, 5) != outer || RingColor(-1, 5) != origin {
		t.Error("ring depth should clamp")
	}
	if RingColor(0, 0) != origin {
		t.Error("a single ring uses the origin color")
	}
}

func TestWorldPolygonInvertsDiagramOffset(t *testing.T) {
	// 2x2 grid of unit cells centred on the world origin, shifted into
	// diagram space the way the scene does before computing cells.
	world := []r2.Vec{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: -0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}
	origin := r2.Vec{X: -1.5, Y: -1.5}
	proj := make([]r2.Vec, len(world))
	for i, p := range world {
		proj[i] = r2.Sub(p, origin)
	}
	d, err := voronoi.Compute(proj, 3, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i, cell := range d.Cells {
		poly := WorldPolygon(cell.Polygon, origin)
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range poly {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
		site := world[i]
		if site.X < minX || site.X > maxX || site.Y < minY || site.Y > maxY {
			t.Errorf("cell %d spans [%v,%v]x[%v,%v], site %v outside", i, minX, maxX, minY, maxY, site)
		}
		if math.Abs(maxX-minX-1.5) > 1e-9 || math.Abs(maxY-minY-1.5) > 1e-9 {
			t.Errorf("cell %d is %vx%v, want 1.5x1.5", i, maxX-minX, maxY-minY)
		}
	}

	if got := WorldPolygon([]r2.Vec{{X: 4.5, Y: 4.5}}, r2.Vec{X: -4.5, Y: -4.5}); got[0] != (r2.Vec{}) {
		t.Errorf("diagram centre maps to %v, want world origin", got[0])
	}
}
