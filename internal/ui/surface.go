package ui

import (
	"image/color"

	"PolyBoard/internal/render"
	"PolyBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// objectSurface is a render.Surface that turns draw calls into fyne
// canvas objects. It is rebuilt on every refresh.
type objectSurface struct {
	objects []fyne.CanvasObject
}

var _ render.Surface = (*objectSurface)(nil)

func pos(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (s *objectSurface) Clear(size render.Size, background state.Color) error {
	bg := canvas.NewRectangle(render.ParseColor(background))
	bg.Resize(fyne.NewSize(float32(size.Width), float32(size.Height)))
	s.objects = []fyne.CanvasObject{bg}
	return nil
}

func (s *objectSurface) StrokePolyline(points []state.Point, closed bool, c state.Color, width float64) error {
	col := render.ParseColor(c)
	for i := 1; i < len(points); i++ {
		s.line(points[i-1], points[i], col, width)
	}
	if closed && len(points) > 2 {
		first, last := points[0], points[len(points)-1]
		if !first.Eq(last) {
			s.line(last, first, col, width)
		}
	}
	return nil
}

func (s *objectSurface) MarkVertex(p state.Point, radius float64, c state.Color) error {
	dot := canvas.NewCircle(render.ParseColor(c))
	dot.Position1 = pos(state.Pt(p.X-radius, p.Y-radius))
	dot.Position2 = pos(state.Pt(p.X+radius, p.Y+radius))
	s.objects = append(s.objects, dot)
	return nil
}

func (s *objectSurface) StrokeSegment(from, to state.Point, c state.Color, width float64) error {
	s.line(from, to, render.ParseColor(c), width)
	return nil
}

func (s *objectSurface) line(from, to state.Point, col color.Color, width float64) {
	segment := canvas.NewLine(col)
	segment.StrokeWidth = float32(width)
	segment.Position1 = pos(from)
	segment.Position2 = pos(to)
	s.objects = append(s.objects, segment)
}
