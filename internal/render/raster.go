package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"PolyBoard/internal/state"

	"github.com/gogpu/gg"
)

// Raster is a Surface backed by a software gg context.
type Raster struct {
	dc *gg.Context
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a raster surface of the given pixel size.
func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

// ParseColor converts a hex color tag to a color.Color.
func ParseColor(c state.Color) color.Color {
	return gg.Hex(string(c)).Color()
}

// Clear resizes the context when size differs from its current extent
// and fills it with the background color.
func (r *Raster) Clear(size Size, background state.Color) error {
	w, h := int(math.Ceil(size.Width)), int(math.Ceil(size.Height))
	if w > 0 && h > 0 && (w != r.dc.Width() || h != r.dc.Height()) {
		if err := r.dc.Resize(w, h); err != nil {
			return fmt.Errorf("resize raster to %dx%d: %w", w, h, err)
		}
	}
	r.dc.ClearWithColor(gg.Hex(string(background)))
	return nil
}

func (r *Raster) StrokePolyline(points []state.Point, closed bool, c state.Color, width float64) error {
	if len(points) == 0 {
		return nil
	}
	r.dc.ClearPath()
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	if closed {
		r.dc.ClosePath()
	}
	r.pen(c, width)
	return r.dc.Stroke()
}

func (r *Raster) MarkVertex(p state.Point, radius float64, c state.Color) error {
	r.dc.ClearPath()
	r.dc.DrawCircle(p.X, p.Y, radius)
	r.dc.SetColor(ParseColor(c))
	return r.dc.Fill()
}

func (r *Raster) StrokeSegment(from, to state.Point, c state.Color, width float64) error {
	r.dc.ClearPath()
	r.dc.MoveTo(from.X, from.Y)
	r.dc.LineTo(to.X, to.Y)
	r.pen(c, width)
	return r.dc.Stroke()
}

func (r *Raster) pen(c state.Color, width float64) {
	r.dc.SetColor(ParseColor(c))
	r.dc.SetLineWidth(width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
}

// Image returns the rendered pixels.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the rendered pixels to w as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Close releases the underlying context.
func (r *Raster) Close() error {
	return r.dc.Close()
}
