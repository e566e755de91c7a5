package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r3"
)

// settleEps is how close every channel must be to its goal for Settled.
const settleEps = 1e-4

// orbit is the springed state of a camera.
type orbit struct {
	Yaw, Pitch, Distance float64
	Target               r3.Vec
}

// Rig moves a camera toward goal orbit values with a damped spring, so
// mouse input eases in instead of jumping. A zero frequency disables the
// spring and input applies directly.
type Rig struct {
	Cam *Camera

	goal   orbit
	vel    orbit
	spring harmonica.Spring
	direct bool
}

// NewRig wraps c. fps is the update rate, frequency the spring's angular
// frequency and damping its ratio (1 = critically damped).
func NewRig(c *Camera, fps int, frequency, damping float64) *Rig {
	r := &Rig{
		Cam:    c,
		direct: frequency <= 0,
	}
	if !r.direct {
		r.spring = harmonica.NewSpring(harmonica.FPS(max(fps, 1)), frequency, damping)
	}
	r.goal = r.current()
	return r
}

func (r *Rig) current() orbit {
	return orbit{Yaw: r.Cam.Yaw, Pitch: r.Cam.Pitch, Distance: r.Cam.Distance, Target: r.Cam.Target}
}

// Goal returns the orbit the camera is heading to.
func (r *Rig) Goal() (yaw, pitch, distance float64, target r3.Vec) {
	return r.goal.Yaw, r.goal.Pitch, r.goal.Distance, r.goal.Target
}

// steer applies move to a copy of the camera posed at the goal and takes
// the result as the new goal.
func (r *Rig) steer(move func(c *Camera)) {
	ghost := *r.Cam
	ghost.Yaw, ghost.Pitch = r.goal.Yaw, r.goal.Pitch
	ghost.Distance, ghost.Target = r.goal.Distance, r.goal.Target
	move(&ghost)
	r.goal = orbit{Yaw: ghost.Yaw, Pitch: ghost.Pitch, Distance: ghost.Distance, Target: ghost.Target}
	r.snap()
}

// Orbit turns the goal by a mouse drag in screen pixels. Yaw is left
// unwrapped so the spring never takes the long way round.
func (r *Rig) Orbit(dx, dy float64) {
	r.steer(func(c *Camera) { c.Orbit(dx, dy) })
}

// Pan moves the goal target by a drag in screen pixels.
func (r *Rig) Pan(dx, dy float64) {
	r.steer(func(c *Camera) { c.Pan(dx, dy) })
}

// ZoomBy moves the goal closer by factor (2 halves the distance).
func (r *Rig) ZoomBy(factor float64) {
	r.steer(func(c *Camera) { c.ZoomBy(factor) })
}

// Reset heads back to the camera's home orbit. The current yaw is unwound
// to the nearest full turn so the camera does not spin.
func (r *Rig) Reset() {
	home := math.Round(r.Cam.Yaw/(2*math.Pi)) * 2 * math.Pi
	r.steer(func(c *Camera) {
		c.Reset()
		c.Yaw = home
	})
}

// snap applies the goal at once when the spring is off.
func (r *Rig) snap() {
	if !r.direct {
		return
	}
	r.apply(r.goal)
	r.vel = orbit{}
}

func (r *Rig) apply(o orbit) {
	r.Cam.Yaw = o.Yaw
	r.Cam.Pitch = o.Pitch
	r.Cam.Distance = o.Distance
	r.Cam.Target = o.Target
}

// Update advances the spring by one frame.
func (r *Rig) Update() {
	if r.direct {
		return
	}
	cur := r.current()
	var next orbit
	next.Yaw, r.vel.Yaw = r.spring.Update(cur.Yaw, r.vel.Yaw, r.goal.Yaw)
	next.Pitch, r.vel.Pitch = r.spring.Update(cur.Pitch, r.vel.Pitch, r.goal.Pitch)
	next.Distance, r.vel.Distance = r.spring.Update(cur.Distance, r.vel.Distance, r.goal.Distance)
	next.Target.X, r.vel.Target.X = r.spring.Update(cur.Target.X, r.vel.Target.X, r.goal.Target.X)
	next.Target.Y, r.vel.Target.Y = r.spring.Update(cur.Target.Y, r.vel.Target.Y, r.goal.Target.Y)
	next.Target.Z, r.vel.Target.Z = r.spring.Update(cur.Target.Z, r.vel.Target.Z, r.goal.Target.Z)

	next.Pitch = clamp(next.Pitch, -maxPitch, maxPitch)
	next.Distance = clamp(next.Distance, r.Cam.MinDistance, r.Cam.MaxDistance)
	r.apply(next)
}

// Settled reports whether the camera has reached its goal.
func (r *Rig) Settled() bool {
	c := r.current()
	return math.Abs(c.Yaw-r.goal.Yaw) < settleEps &&
		math.Abs(c.Pitch-r.goal.Pitch) < settleEps &&
		math.Abs(c.Distance-r.goal.Distance) < settleEps &&
		r3.Norm(r3.Sub(c.Target, r.goal.Target)) < settleEps
}
