package animate

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/visionbox-team/pixelfield/field"
)

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":  Linear,
		"power1":  PowerInOut(1),
		"power2":  PowerInOut(2),
		"power3":  PowerInOut(3),
		"elastic": ElasticInOut(1.5, 0.5),
	}
	for name, e := range eases {
		t.Run(name, func(t *testing.T) {
			if v := e(0); math.Abs(v) > 1e-9 {
				t.Errorf("ease(0) = %v", v)
			}
			if v := e(1); math.Abs(v-1) > 1e-9 {
				t.Errorf("ease(1) = %v", v)
			}
			if v := e(0.5); math.Abs(v-0.5) > 1e-9 {
				t.Errorf("ease(0.5) = %v, want symmetric midpoint", v)
			}
		})
	}
}

func TestPower2IsCubic(t *testing.T) {
	e := PowerInOut(2)
	if v := e(0.25); math.Abs(v-4*0.25*0.25*0.25) > 1e-12 {
		t.Errorf("power2(0.25) = %v", v)
	}
}

func TestElasticOvershoots(t *testing.T) {
	e := ElasticInOut(1.5, 0.5)
	over := false
	for i := 0; i <= 100; i++ {
		v := e(float64(i) / 100)
		if v > 1 || v < 0 {
			over = true
		}
	}
	if !over {
		t.Error("elastic ease never left [0, 1]")
	}
}

func TestParseEase(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"linear", false},
		{"", false},
		{"power2.inOut", false},
		{"elastic.inOut(1.5, 0.5)", false},
		{"elastic.inOut", false},
		{"elastic.inOut(0, 1)", true},
		{"elastic.inOut(x)", true},
		{"bounce.out", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseEase(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v := e(1); math.Abs(v-1) > 1e-9 {
				t.Errorf("ease(1) = %v", v)
			}
		})
	}
}

func targetField(n int) *field.PointField {
	f := field.NewPointField("test", n)
	for i := range f.Points {
		f.Points[i].Position = r3.Vec{X: float64(i), Y: 2, Z: -1}
		f.Points[i].Scale = 0.5
		f.Points[i].Color = field.Color{R: 0.2, G: 0.4, B: 0.6}
		f.Points[i].Set = field.ChannelPosition | field.ChannelScale | field.ChannelColor
	}
	return f
}

func linearSchedule(d, stagger float64) Schedule {
	tm := Timing{Duration: d, Stagger: stagger, Ease: Linear}
	return Schedule{Position: tm, Scale: tm, Color: tm}
}

func TestAnimatorReachesTarget(t *testing.T) {
	const n = 10
	a := New(n, DefaultSchedule())
	f := targetField(n)
	f.Order = []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	if err := a.Apply(f, linearSchedule(1, 0.1)); err != nil {
		t.Fatal(err)
	}
	if !a.Busy() {
		t.Fatal("expected busy after Apply")
	}

	// Point 9 has rank 0 and is halfway; point 0 has rank 9 and has not started.
	a.Update(0.5)
	cur := a.Current()
	if math.Abs(cur[9].Position.X-4.5) > 1e-9 {
		t.Errorf("point 9 x = %v, want 4.5", cur[9].Position.X)
	}
	if cur[0].Scale != 1 {
		t.Errorf("point 0 scale = %v, want untouched 1", cur[0].Scale)
	}

	// Duration plus the last point's stagger.
	a.Update(1.5)
	if a.Busy() {
		t.Error("still busy after duration + stagger")
	}
	for i, p := range a.Current() {
		want := f.Points[i]
		if p.Position != want.Position || p.Scale != want.Scale || p.Color != want.Color {
			t.Errorf("point %d = %+v, want %+v", i, p, want)
		}
	}

	b := a.Buffers()
	if b.Offsets[3*4] != 4 || b.Scales[4] != 0.5 || b.Colors[3*4+2] != float32(0.6) {
		t.Errorf("buffers not committed: %v %v %v", b.Offsets[12], b.Scales[4], b.Colors[14])
	}
}

func TestAnimatorKeepsUnsetChannels(t *testing.T) {
	const n = 3
	a := New(n, DefaultSchedule())
	if err := a.Apply(targetField(n), linearSchedule(0, 0)); err != nil {
		t.Fatal(err)
	}

	colorOnly := field.NewPointField("image", n)
	for i := range colorOnly.Points {
		colorOnly.Points[i] = field.Point{Color: field.Color{R: 1}, Set: field.ChannelColor}
	}
	if err := a.Apply(colorOnly, linearSchedule(0, 0)); err != nil {
		t.Fatal(err)
	}
	if a.Busy() {
		t.Error("zero-duration tweens should settle immediately")
	}
	for i, p := range a.Current() {
		if p.Position.X != float64(i) || p.Scale != 0.5 {
			t.Errorf("point %d lost position or scale: %+v", i, p)
		}
		if p.Color != (field.Color{R: 1}) {
			t.Errorf("point %d color = %+v", i, p.Color)
		}
	}
}

func TestAnimatorRejectsWrongLength(t *testing.T) {
	a := New(4, DefaultSchedule())
	if err := a.Apply(targetField(3), a.Timing()); !errors.Is(err, field.ErrInvalidArgument) {
		t.Errorf("Apply error = %v", err)
	}
	if err := a.Reset(make([]field.Point, 5)); !errors.Is(err, field.ErrInvalidArgument) {
		t.Errorf("Reset error = %v", err)
	}
}

func TestAnimatorReset(t *testing.T) {
	a := New(2, DefaultSchedule())
	_ = a.Apply(targetField(2), linearSchedule(5, 0))
	if err := a.Reset(targetField(2).Points); err != nil {
		t.Fatal(err)
	}
	if a.Busy() {
		t.Error("Reset should stop tweens")
	}
	if got := a.Current()[1].Position.X; got != 1 {
		t.Errorf("x = %v, want 1", got)
	}
}

func TestBuffersBlend(t *testing.T) {
	dst := NewBuffers(1)
	src := NewBuffers(1)
	src.Offsets[0], src.Scales[0], src.Colors[2] = 2, 4, 1
	dst.Scales[0] = 2

	dst.Blend(src, 0.5)
	if dst.Offsets[0] != 1 || dst.Scales[0] != 3 || dst.Colors[2] != 0.5 {
		t.Errorf("blend = %v %v %v", dst.Offsets[0], dst.Scales[0], dst.Colors[2])
	}

	dst.CopyFrom(src)
	if dst.Scales[0] != 4 {
		t.Errorf("copy scale = %v", dst.Scales[0])
	}
}

func BenchmarkAnimatorUpdate(b *testing.B) {
	const n = 10000
	a := New(n, DefaultSchedule())
	_ = a.Apply(targetField(n), linearSchedule(1000, 0))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Update(1.0 / 60)
	}
}
