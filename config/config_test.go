package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Field.Points != 6000 {
		t.Errorf("expected 6000 points, got %d", cfg.Field.Points)
	}
	if cfg.VShape.SnapEvery != 15 || cfg.VShape.RightJitter != [2]float64{1, 4} {
		t.Errorf("unexpected vshape defaults %+v", cfg.VShape)
	}
	if cfg.Animation.Color.Ease != "elastic.inOut(1.5, 0.5)" {
		t.Errorf("unexpected color ease %q", cfg.Animation.Color.Ease)
	}
	if cfg.Derived.GridColumns != 78 || cfg.Derived.GridRows != 77 {
		t.Errorf("expected 78x77 grid, got %dx%d", cfg.Derived.GridColumns, cfg.Derived.GridRows)
	}
	if cfg.Derived.ScreenW32 != 1280 {
		t.Errorf("expected ScreenW32 1280, got %f", cfg.Derived.ScreenW32)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := "field:\n  points: 100\nsequence:\n  patterns: [' Spiral ', image]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Points != 100 {
		t.Errorf("expected 100 points, got %d", cfg.Field.Points)
	}
	if cfg.Spiral.ZFactor != 3 {
		t.Errorf("expected default z_factor to survive, got %f", cfg.Spiral.ZFactor)
	}
	if strings.Join(cfg.Sequence.Patterns, ",") != "spiral,image" {
		t.Errorf("patterns not normalized: %v", cfg.Sequence.Patterns)
	}
	if cfg.Derived.GridColumns != 10 || cfg.Derived.GridRows != 10 {
		t.Errorf("expected 10x10 grid, got %dx%d", cfg.Derived.GridColumns, cfg.Derived.GridRows)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero points", "field:\n  points: 0\n"},
		{"bad trail", "animation:\n  trail: 1.0\n"},
		{"bad pixel size", "grid:\n  pixel_size: 0\n"},
		{"empty sequence", "sequence:\n  patterns: []\n"},
		{"malformed", "field: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Noise != cfg.Noise || back.Animation != cfg.Animation {
		t.Error("roundtrip changed values")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestInit(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Cfg().Screen.Width != 1280 {
		t.Errorf("unexpected width %d", Cfg().Screen.Width)
	}
}
