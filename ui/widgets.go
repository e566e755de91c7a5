package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gapH        = 6
	sectionTail = 4
)

// Painter draws panel primitives in one Style.
type Painter struct {
	Style Style
}

// NewPainter returns a painter using DefaultStyle.
func NewPainter() *Painter {
	return &Painter{Style: DefaultStyle()}
}

// Panel fills and outlines a rectangle.
func (p *Painter) Panel(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, p.Style.Background)
	rl.DrawRectangleLines(x, y, w, h, p.Style.Border)
}

// Heading draws a section title and returns the next y.
func (p *Painter) Heading(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, p.Style.HeadingSize, p.Style.Heading)
	return y + p.Style.Line
}

// Text draws "label: value" and returns the next y.
func (p *Painter) Text(x, y int32, label, value string) int32 {
	st := p.Style
	rl.DrawText(label+":", x, y, st.TextSize, st.Label)
	rl.DrawText(value, x+st.LabelW, y, st.TextSize, st.Value)
	return y + st.Line
}

// Bar draws a labelled track filled to frac of its width.
func (p *Painter) Bar(x, y, w int32, label string, frac float64, value string) int32 {
	st := p.Style
	trackX := x + st.LabelW
	trackW := w - st.LabelW - 50

	rl.DrawText(label+":", x, y, st.TextSize, st.Label)
	rl.DrawRectangle(trackX, y+2, trackW, st.BarH, st.Track)
	rl.DrawRectangle(trackX, y+2, int32(float64(trackW)*frac), st.BarH, st.Fill)
	rl.DrawText(value, trackX+trackW+5, y, st.TextSize, st.Value)
	return y + rowHeight(st, RowBar)
}

func rowHeight(st Style, k RowKind) int32 {
	switch k {
	case RowBar:
		return st.Line + 2
	case RowGap:
		return gapH
	}
	return st.Line
}

// DrawSections lays out secs for v starting at (x, y) and returns the next y.
func DrawSections[T any](p *Painter, x, y, w int32, secs []Section[T], v T) int32 {
	for _, s := range secs {
		if !s.shown(v) {
			continue
		}
		if s.Title != "" {
			y = p.Heading(x, y, s.Title)
		}
		for _, r := range s.Rows {
			if !r.shown(v) {
				continue
			}
			switch r.Kind {
			case RowBar:
				val := 0.0
				if r.Value != nil {
					val = r.Value(v)
				}
				y = p.Bar(x, y, w, r.Label, fraction(val, r.Lo, r.Hi), fmt.Sprintf("%.2f", val))
			case RowGap:
				y += gapH
			default:
				y = p.Text(x, y, r.Label, r.Render(v))
			}
		}
		y += sectionTail
	}
	return y
}

// SectionsHeight is the height DrawSections would use.
func SectionsHeight[T any](st Style, secs []Section[T], v T) int32 {
	var h int32
	for _, s := range secs {
		if !s.shown(v) {
			continue
		}
		h += sectionTail
		if s.Title != "" {
			h += st.Line
		}
		for _, r := range s.Rows {
			if r.shown(v) {
				h += rowHeight(st, r.Kind)
			}
		}
	}
	return h
}

// fraction maps v into [0, 1] over [lo, hi].
func fraction(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return max(0, min((v-lo)/(hi-lo), 1))
}
