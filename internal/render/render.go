// Package render paints a drawing state onto a surface.
//
// Render is stateless: given the same state, live segment and style it
// issues the same sequence of surface calls. Surfaces never report
// anything back to the board except errors.
package render

import (
	"fmt"

	"PolyBoard/internal/state"
)

// Size is the extent of a drawing surface in canvas units.
type Size struct {
	Width, Height float64
}

// Surface is a 2D target that can stroke polylines and mark vertices.
type Surface interface {
	// Clear erases the surface to the background color.
	Clear(size Size, background state.Color) error
	// StrokePolyline strokes connected segments through points, joining
	// the last point back to the first when closed is set.
	StrokePolyline(points []state.Point, closed bool, c state.Color, width float64) error
	// MarkVertex fills a dot of the given radius centered on p.
	MarkVertex(p state.Point, radius float64, c state.Color) error
	// StrokeSegment strokes a single straight line.
	StrokeSegment(from, to state.Point, c state.Color, width float64) error
}

// Style holds the stroke and color settings used by Render.
type Style struct {
	Background   state.Color
	Preview      state.Color
	LineWidth    float64
	VertexRadius float64
}

// DefaultStyle returns a 3 unit stroke with 4 unit vertex dots on white,
// previewing in the drawing color.
func DefaultStyle() Style {
	return Style{
		Background:   "#ffffff",
		Preview:      state.ColorDrawing,
		LineWidth:    3,
		VertexRadius: 4,
	}
}

// Render paints every path of s onto surf, then the live segment if
// one is given. Each path is stroked in its own color and every vertex
// is marked. Paths without points are skipped.
func Render(surf Surface, size Size, s state.DrawingState, live *state.Segment, style Style) error {
	if err := surf.Clear(size, style.Background); err != nil {
		return fmt.Errorf("clear surface: %w", err)
	}
	for i, p := range s {
		if len(p.Points) == 0 {
			continue
		}
		if err := surf.StrokePolyline(p.Points, p.Closed, p.Color, style.LineWidth); err != nil {
			return fmt.Errorf("stroke path %d: %w", i, err)
		}
		for _, pt := range p.Points {
			if err := surf.MarkVertex(pt, style.VertexRadius, p.Color); err != nil {
				return fmt.Errorf("mark vertex of path %d: %w", i, err)
			}
		}
	}
	if live != nil {
		if err := surf.StrokeSegment(live.From, live.To, style.Preview, style.LineWidth); err != nil {
			return fmt.Errorf("stroke preview: %w", err)
		}
	}
	return nil
}
