// Package camera provides an orbit camera around the point field.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxPitch keeps the camera off the poles where the up vector degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera orbits a target point at a given distance.
// Yaw 0 and pitch 0 look down the -Z axis with +Y up.
type Camera struct {
	// Target is the point the camera orbits and looks at
	Target r3.Vec

	// Orbit angles in radians
	Yaw, Pitch float64

	// Distance from target, clamped to [MinDistance, MaxDistance]
	Distance                 float64
	MinDistance, MaxDistance float64

	// FovY is the vertical field of view in degrees
	FovY float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// OrbitSpeed is radians per dragged pixel
	OrbitSpeed float64

	homeDistance float64
}

// New creates a camera on the +Z axis looking at the origin.
func New(viewportW, viewportH, distance float64) *Camera {
	return &Camera{
		Distance:     distance,
		MinDistance:  distance / 20,
		MaxDistance:  distance * 10,
		FovY:         75,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		OrbitSpeed:   0.005,
		homeDistance: distance,
	}
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	offset := r3.Vec{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, offset))
}

// Basis returns the forward, right and up unit vectors of the view.
func (c *Camera) Basis() (forward, right, up r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position()))
	right = r3.Unit(r3.Cross(forward, r3.Vec{Y: 1}))
	up = r3.Cross(right, forward)
	return forward, right, up
}

// focal returns the projection scale in pixels at unit depth.
func (c *Camera) focal() float64 {
	return (c.ViewportH / 2) / math.Tan(c.FovY*math.Pi/360)
}

// WorldToScreen projects p to screen pixels. ok is false when p is behind
// the camera.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	forward, right, up := c.Basis()
	v := r3.Sub(p, c.Position())
	depth := r3.Dot(v, forward)
	if depth <= 1e-9 {
		return 0, 0, false
	}
	f := c.focal() / depth
	sx = c.ViewportW/2 + r3.Dot(v, right)*f
	sy = c.ViewportH/2 - r3.Dot(v, up)*f
	return sx, sy, true
}

// ScreenRay returns the eye position and the unit direction through a
// screen pixel.
func (c *Camera) ScreenRay(sx, sy float64) (origin, dir r3.Vec) {
	forward, right, up := c.Basis()
	f := c.focal()
	dir = r3.Add(forward, r3.Add(
		r3.Scale((sx-c.ViewportW/2)/f, right),
		r3.Scale(-(sy-c.ViewportH/2)/f, up),
	))
	return c.Position(), r3.Unit(dir)
}

// ScreenToPlane intersects the ray through a screen pixel with the z = 0
// plane. ok is false when the ray is parallel to or points away from it.
func (c *Camera) ScreenToPlane(sx, sy float64) (p r3.Vec, ok bool) {
	origin, dir := c.ScreenRay(sx, sy)
	if math.Abs(dir.Z) < 1e-12 {
		return r3.Vec{}, false
	}
	t := -origin.Z / dir.Z
	if t <= 0 {
		return r3.Vec{}, false
	}
	return r3.Add(origin, r3.Scale(t, dir)), true
}

// IsVisible returns true if a sphere at p with the given radius could be
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p r3.Vec, radius float64) bool {
	forward, _, _ := c.Basis()
	depth := r3.Dot(r3.Sub(p, c.Position()), forward)
	if depth+radius <= 0 {
		return false
	}
	sx, sy, ok := c.WorldToScreen(p)
	if !ok {
		// Straddles the eye plane
		return true
	}
	margin := radius * c.focal() / depth
	return sx >= -margin && sx <= c.ViewportW+margin &&
		sy >= -margin && sy <= c.ViewportH+margin
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Orbit rotates the camera by a mouse drag in screen pixels.
func (c *Camera) Orbit(dx, dy float64) {
	c.Yaw -= dx * c.OrbitSpeed
	c.Pitch = clamp(c.Pitch+dy*c.OrbitSpeed, -maxPitch, maxPitch)
}

// Pan moves the target by a drag in screen pixels, scaled so the point
// under the cursor follows it at the target's depth.
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.Basis()
	perPixel := c.Distance / c.focal()
	c.Target = r3.Add(c.Target, r3.Add(
		r3.Scale(-dx*perPixel, right),
		r3.Scale(dy*perPixel, up),
	))
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy moves closer by the given factor (2 halves the distance).
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.Target = r3.Vec{}
	c.Yaw = 0
	c.Pitch = 0
	c.Distance = c.homeDistance
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
