package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/visionbox-team/pixelfield/field"
)

func TestNewFieldRangeAndSize(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex, KindValue} {
		t.Run(string(kind), func(t *testing.T) {
			p := DefaultParams(32, 16)
			p.Kind = kind
			f, err := New(p, 7)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if f.Len() != 32*16 {
				t.Fatalf("expected %d cells, got %d", 32*16, f.Len())
			}
			lo, hi := f.MinMax()
			if lo < 0 || hi > 1 {
				t.Errorf("values out of [0,1]: min=%v max=%v", lo, hi)
			}
			if hi-lo < 1e-6 {
				t.Errorf("field is flat: min=%v max=%v", lo, hi)
			}
		})
	}
}

func TestNewFieldDeterministic(t *testing.T) {
	p := DefaultParams(16, 16)
	a, err := New(p, 99)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(p, 99)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
}

func TestSampleWraps(t *testing.T) {
	f := &Field{Width: 2, Height: 2, Values: []float64{0.1, 0.2, 0.3, 0.4}}

	tests := []struct {
		idx  int
		want float64
	}{
		{0, 0.1},
		{3, 0.4},
		{4, 0.1},
		{5, 0.2},
		{-1, 0.4},
	}
	for _, tt := range tests {
		if got := f.Sample(tt.idx); got != tt.want {
			t.Errorf("Sample(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"no octaves", func(p *Params) { p.Octaves = 0 }},
		{"nan scale", func(p *Params) { p.Scale = math.NaN() }},
		{"unknown kind", func(p *Params) { p.Kind = "worley" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams(8, 8)
			tt.mutate(&p)
			if _, err := New(p, 1); !errors.Is(err, field.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPerlinLatticeIsZero(t *testing.T) {
	p := NewPerlin(3)
	// Gradient noise vanishes on integer lattice points
	for _, c := range [][2]float64{{0, 0}, {1, 2}, {5, 7}} {
		if v := p.Noise2D(c[0], c[1]); math.Abs(v) > 1e-12 {
			t.Errorf("Noise2D(%v) = %v, want 0", c, v)
		}
	}
}

func TestParallelFillMatchesSerial(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex, KindValue} {
		p := DefaultParams(160, 128)
		p.Kind = kind
		if p.Width*p.Height < parallelThreshold {
			t.Fatal("field too small to exercise the parallel path")
		}

		got, err := New(p, 42)
		if err != nil {
			t.Fatal(err)
		}

		want := &Field{Width: p.Width, Height: p.Height, Values: make([]float64, p.Width*p.Height)}
		fillRange(want, p, sampler(kind, 42), 0, p.Height)

		for i := range want.Values {
			if got.Values[i] != want.Values[i] {
				t.Fatalf("%s: cell %d = %v, serial %v", kind, i, got.Values[i], want.Values[i])
			}
		}
	}
}

func BenchmarkNewField(b *testing.B) {
	p := DefaultParams(256, 256)
	for i := 0; i < b.N; i++ {
		if _, err := New(p, int64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func TestValueNoiseTiles(t *testing.T) {
	for _, v := range []float64{0, 0.3, 0.75} {
		a := valueNoise2D(0, v, 4, 11)
		b := valueNoise2D(1, v, 4, 11)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("v=%v: left edge %v != right edge %v", v, a, b)
		}
	}
	if got := valueNoise2D(0.5, 0.5, 0.5, 3); got < 0 || got >= 1 {
		t.Errorf("sub-unit frequency out of range: %v", got)
	}
}
