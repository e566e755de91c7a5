// Package animate owns the current visual state of every point and tweens it
// toward generated fields. Each point is an ECS entity; the packed render
// buffers are rebuilt from the entities after every update.
package animate

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/visionbox-team/pixelfield/field"
)

// Timing controls one channel's tween. Point i starts Stagger*rank seconds
// late, where rank is its position in the field's Order.
type Timing struct {
	Duration float64
	Stagger  float64
	Ease     Ease
}

// Schedule holds per-channel timings.
type Schedule struct {
	Position Timing
	Scale    Timing
	Color    Timing
}

// DefaultSchedule mirrors the sketch: two second eased moves and a quick
// elastic color ripple.
func DefaultSchedule() Schedule {
	return Schedule{
		Position: Timing{Duration: 2, Ease: PowerInOut(2)},
		Scale:    Timing{Duration: 2, Ease: PowerInOut(2)},
		Color:    Timing{Duration: 0.2, Stagger: 0.0002, Ease: ElasticInOut(1.5, 0.5)},
	}
}

// Animator tweens n points. Not safe for concurrent use.
type Animator struct {
	world *ecs.World

	pointMapper *ecs.Map4[Index, Transform, Tint, Motion]
	pointFilter *ecs.Filter4[Index, Transform, Tint, Motion]
	transforms  *ecs.Map1[Transform]
	tints       *ecs.Map1[Tint]
	motions     *ecs.Map1[Motion]

	entities []ecs.Entity
	buffers  *Buffers
	timing   Schedule
	active   int
}

// New creates an animator for n points at the origin with unit scale and
// white color.
func New(n int, timing Schedule) *Animator {
	world := ecs.NewWorld()
	a := &Animator{
		world:       world,
		pointMapper: ecs.NewMap4[Index, Transform, Tint, Motion](world),
		pointFilter: ecs.NewFilter4[Index, Transform, Tint, Motion](world),
		transforms:  ecs.NewMap1[Transform](world),
		tints:       ecs.NewMap1[Tint](world),
		motions:     ecs.NewMap1[Motion](world),
		entities:    make([]ecs.Entity, n),
		buffers:     NewBuffers(n),
		timing:      timing,
	}

	for i := range n {
		idx := Index{I: i}
		tr := Transform{Scale: 1}
		tint := Tint{Color: field.Color{R: 1, G: 1, B: 1}}
		motion := Motion{}
		a.entities[i] = a.pointMapper.NewEntity(&idx, &tr, &tint, &motion)
		a.buffers.set(i, tr, tint)
	}
	return a
}

// Len returns the number of animated points.
func (a *Animator) Len() int {
	return len(a.entities)
}

// Timing returns the default schedule.
func (a *Animator) Timing() Schedule {
	return a.timing
}

// Reset snaps every channel set in points without animating.
func (a *Animator) Reset(points []field.Point) error {
	if len(points) != len(a.entities) {
		return fmt.Errorf("%w: reset with %d points, animator has %d",
			field.ErrInvalidArgument, len(points), len(a.entities))
	}
	for i, e := range a.entities {
		p := points[i]
		tr := a.transforms.Get(e)
		tint := a.tints.Get(e)
		*a.motions.Get(e) = Motion{}
		if p.Set.Has(field.ChannelPosition) {
			tr.Position = p.Position
		}
		if p.Set.Has(field.ChannelScale) {
			tr.Scale = p.Scale
		}
		if p.Set.Has(field.ChannelColor) {
			tint.Color = p.Color
		}
		a.buffers.set(i, *tr, *tint)
	}
	a.active = 0
	return nil
}

// Apply starts tweens from the current state toward f. Only channels set on
// a target point are animated; the rest keep their value. In-flight tweens
// on those channels restart from wherever they are now.
func (a *Animator) Apply(f *field.PointField, timing Schedule) error {
	if f.Len() != len(a.entities) {
		return fmt.Errorf("%w: field has %d points, animator has %d",
			field.ErrInvalidArgument, f.Len(), len(a.entities))
	}
	rank := f.Rank()

	for i, e := range a.entities {
		p := f.Points[i]
		tr := a.transforms.Get(e)
		tint := a.tints.Get(e)
		m := a.motions.Get(e)
		r := float64(rank[i])

		if p.Set.Has(field.ChannelPosition) {
			m.Position.start(vecArr(tr.Position), vecArr(p.Position), timing.Position.Stagger*r, timing.Position)
		}
		if p.Set.Has(field.ChannelScale) {
			m.Scale.start([3]float64{tr.Scale}, [3]float64{p.Scale}, timing.Scale.Stagger*r, timing.Scale)
		}
		if p.Set.Has(field.ChannelColor) {
			m.Color.start(colorArr(tint.Color), colorArr(p.Color), timing.Color.Stagger*r, timing.Color)
		}
	}

	// Settle zero-length tweens right away so the buffers reflect them.
	a.Update(0)
	return nil
}

// Update advances every active tween by dt seconds and rebuilds the buffers.
func (a *Animator) Update(dt float64) {
	active := 0
	query := a.pointFilter.Query()
	for query.Next() {
		idx, tr, tint, m := query.Get()
		changed := false

		if m.Position.Active {
			tr.Position = arrVec(m.Position.advance(dt))
			changed = true
		}
		if m.Scale.Active {
			tr.Scale = m.Scale.advance(dt)[0]
			changed = true
		}
		if m.Color.Active {
			tint.Color = arrColor(m.Color.advance(dt))
			changed = true
		}
		if m.Position.Active || m.Scale.Active || m.Color.Active {
			active++
		}
		if changed {
			a.buffers.set(idx.I, *tr, *tint)
		}
	}
	a.active = active
}

// Busy reports whether any tween is still running.
func (a *Animator) Busy() bool {
	return a.active > 0
}

// Buffers returns the packed render state. The returned value is reused.
func (a *Animator) Buffers() *Buffers {
	return a.buffers
}

// Current returns a snapshot of every point with all channels set.
func (a *Animator) Current() []field.Point {
	out := make([]field.Point, len(a.entities))
	for i, e := range a.entities {
		tr := a.transforms.Get(e)
		tint := a.tints.Get(e)
		out[i] = field.Point{
			Position: tr.Position,
			Scale:    tr.Scale,
			Color:    tint.Color,
			Set:      field.ChannelPosition | field.ChannelScale | field.ChannelColor,
		}
	}
	return out
}
