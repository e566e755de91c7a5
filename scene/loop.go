package scene

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/visionbox-team/pixelfield/telemetry"
)

// Step advances the scene by dt seconds: tweens move, and once they settle
// and the hold time runs out the next pattern starts.
func (s *Scene) Step(dt float64) {
	if s.paused {
		return
	}

	s.perf.StartPhase(telemetry.PhaseAnimate)
	s.animator.Update(dt)
	busy := s.animator.Busy()
	s.collector.Tick(dt, busy)

	if !busy {
		s.hold -= dt
		if s.hold <= 0 {
			if err := s.Next(); err != nil {
				slog.Error("advancing pattern", "error", err)
				s.hold = s.cfg.Sequence.Hold
			}
		}
	}

	s.perf.StartPhase(telemetry.PhaseTrail)
	s.commitTrail()
}

// commitTrail fades the displayed buffers toward the animator's.
func (s *Scene) commitTrail() {
	trail := s.cfg.Animation.Trail
	if trail <= 0 {
		return
	}
	s.trail.Blend(s.animator.Buffers(), float32(1-trail))
}

// UpdateHeadless runs one fixed-step frame without graphics.
func (s *Scene) UpdateHeadless() {
	s.perf.StartTick()
	s.Step(s.fixedDT)
	s.perf.EndTick()

	s.frame++
	s.flushPerf()
}

// Update runs one frame of the graphical loop.
func (s *Scene) Update() {
	s.handleInput()
	s.rig.Update()

	if s.pending != nil {
		kind := *s.pending
		s.pending = nil
		if err := s.Select(kind); err != nil {
			slog.Error("selecting pattern", "pattern", kind, "error", err)
		}
	}

	dt := float64(rl.GetFrameTime())
	s.perf.StartTick()
	s.Step(dt)
	s.perf.EndTick()
	s.perf.RecordFrame()

	s.frame++
	s.flushPerf()
}

// flushPerf reports the perf window every perfWindow frames.
func (s *Scene) flushPerf() {
	if s.frame%perfWindow != 0 {
		return
	}
	stats := s.perf.Stats()
	if s.opts.LogStats {
		stats.LogStats()
	}
	if err := s.output.WritePerf(stats, s.frame); err != nil {
		slog.Error("writing perf stats", "error", err)
	}
}
