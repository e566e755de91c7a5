// Package ui draws the viewer overlay. Panels are declared as typed rows
// over the value they display, so layout lives next to the stats it reads.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RowKind selects how a row is drawn.
type RowKind int

const (
	RowText RowKind = iota
	RowBar          // filled between Lo and Hi
	RowGap
)

// Row is one line of a panel reading from a T.
type Row[T any] struct {
	ID     string
	Label  string
	Kind   RowKind
	Format string // for Value; "%.2f" when empty
	Lo, Hi float64

	Value func(T) float64
	Text  func(T) string
	Show  func(T) bool
}

// Section groups rows under a title.
type Section[T any] struct {
	ID    string
	Title string
	Rows  []Row[T]
	Show  func(T) bool
}

func (r Row[T]) shown(v T) bool     { return r.Show == nil || r.Show(v) }
func (s Section[T]) shown(v T) bool { return s.Show == nil || s.Show(v) }

// Render formats the row's value for v.
func (r Row[T]) Render(v T) string {
	switch {
	case r.Text != nil:
		return r.Text(v)
	case r.Value != nil:
		format := r.Format
		if format == "" {
			format = "%.2f"
		}
		return fmt.Sprintf(format, r.Value(v))
	}
	return ""
}

// Style is the overlay palette and metrics.
type Style struct {
	Background rl.Color
	Border     rl.Color
	Heading    rl.Color
	Label      rl.Color
	Value      rl.Color
	Track      rl.Color
	Fill       rl.Color

	Pad, Line, LabelW, BarH int32
	TextSize, HeadingSize   int32
}

// DefaultStyle is the magenta overlay look.
func DefaultStyle() Style {
	return Style{
		Background:  rl.Color{R: 20, G: 18, B: 26, A: 220},
		Border:      rl.Color{R: 70, G: 60, B: 85, A: 255},
		Heading:     rl.Color{R: 230, G: 120, B: 225, A: 255},
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		Track:       rl.Color{R: 40, G: 40, B: 48, A: 255},
		Fill:        rl.Color{R: 186, G: 0, B: 178, A: 255},
		Pad:         10,
		Line:        16,
		LabelW:      90,
		BarH:        12,
		TextSize:    12,
		HeadingSize: 14,
	}
}
