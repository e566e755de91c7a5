package telemetry

import (
	"time"

	"github.com/visionbox-team/pixelfield/field"
)

// Collector counts generations and frames and stamps GenerationStats.
type Collector struct {
	generation int
	simTime    float64

	frames     int64
	busyFrames int64
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Tick advances simulated time by dt. busy marks frames with tweens running.
func (c *Collector) Tick(dt float64, busy bool) {
	c.simTime += dt
	c.frames++
	if busy {
		c.busyFrames++
	}
}

// Record produces GenerationStats for a freshly generated field and advances
// the generation counter.
func (c *Collector) Record(f *field.PointField, generate time.Duration) GenerationStats {
	c.generation++
	stats := ComputeFieldStats(f)
	stats.Generation = c.generation
	stats.SimTimeSec = c.simTime
	stats.GenerateMS = durationMS(generate)
	return stats
}

// Generation returns the number of recorded generations.
func (c *Collector) Generation() int {
	return c.generation
}

// SimTime returns accumulated simulated seconds.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// Frames returns the number of ticks seen.
func (c *Collector) Frames() int64 {
	return c.frames
}

// BusyFraction returns the share of frames spent tweening.
func (c *Collector) BusyFraction() float64 {
	if c.frames == 0 {
		return 0
	}
	return float64(c.busyFrames) / float64(c.frames)
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
