package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"testing"

	"PolyBoard/internal/state"

	"github.com/google/go-cmp/cmp"
)

// recorder is a Surface that logs every call it receives.
type recorder struct {
	calls  []string
	failOn string
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failOn != "" && r.failOn == call {
		return errors.New("surface failure")
	}
	return nil
}

func (r *recorder) Clear(size Size, bg state.Color) error {
	return r.record(fmt.Sprintf("clear %vx%v %s", size.Width, size.Height, bg))
}

func (r *recorder) StrokePolyline(pts []state.Point, closed bool, c state.Color, w float64) error {
	return r.record(fmt.Sprintf("polyline %v closed=%v %s w=%v", pts, closed, c, w))
}

func (r *recorder) MarkVertex(p state.Point, radius float64, c state.Color) error {
	return r.record(fmt.Sprintf("vertex %v r=%v %s", p, radius, c))
}

func (r *recorder) StrokeSegment(from, to state.Point, c state.Color, w float64) error {
	return r.record(fmt.Sprintf("segment %v-%v %s w=%v", from, to, c, w))
}

func TestRenderCallSequence(t *testing.T) {
	s := state.DrawingState{
		{Points: []state.Point{state.Pt(0, 0), state.Pt(1, 0), state.Pt(0, 0)}, Closed: true, Color: state.ColorDone},
		{},
		{Points: []state.Point{state.Pt(5, 5)}, Color: state.ColorDrawing},
	}
	live := &state.Segment{From: state.Pt(5, 5), To: state.Pt(8, 9)}

	var r recorder
	if err := Render(&r, Size{Width: 800, Height: 600}, s, live, DefaultStyle()); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"clear 800x600 #ffffff",
		"polyline [{0 0} {1 0} {0 0}] closed=true #22c55e w=3",
		"vertex {0 0} r=4 #22c55e",
		"vertex {1 0} r=4 #22c55e",
		"vertex {0 0} r=4 #22c55e",
		"polyline [{5 5}] closed=false #ef4444 w=3",
		"vertex {5 5} r=4 #ef4444",
		"segment {5 5}-{8 9} #ef4444 w=3",
	}
	if d := cmp.Diff(want, r.calls); d != "" {
		t.Error(d)
	}
}

func TestRenderWithoutLiveSegment(t *testing.T) {
	var r recorder
	if err := Render(&r, Size{Width: 10, Height: 10}, state.DrawingState{}, nil, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"clear 10x10 #ffffff"}, r.calls); d != "" {
		t.Error(d)
	}
}

func TestRenderStopsOnSurfaceError(t *testing.T) {
	s := state.DrawingState{
		{Points: []state.Point{state.Pt(1, 1)}, Color: state.ColorDrawing},
		{Points: []state.Point{state.Pt(2, 2)}, Color: state.ColorDrawing},
	}
	r := recorder{failOn: "vertex {1 1} r=4 #ef4444"}
	err := Render(&r, Size{Width: 10, Height: 10}, s, nil, DefaultStyle())
	if err == nil {
		t.Fatal("Render returned nil error")
	}
	if n := len(r.calls); n != 3 {
		t.Errorf("surface saw %d calls after failure, want 3", n)
	}
}

func TestRasterPaintsPaths(t *testing.T) {
	r := NewRaster(100, 100)
	defer r.Close()

	s := state.DrawingState{
		{Points: []state.Point{state.Pt(10, 50.5), state.Pt(90, 50.5)}, Color: state.ColorDrawing},
	}
	if err := Render(r, Size{Width: 100, Height: 100}, s, nil, DefaultStyle()); err != nil {
		t.Fatal(err)
	}

	img := r.Image()
	red, green, _, _ := img.At(50, 50).RGBA()
	if red>>8 < 200 || green>>8 > 120 {
		t.Errorf("pixel on stroke = (%d, %d), want drawing red", red>>8, green>>8)
	}
	red, green, blue, _ := img.At(5, 95).RGBA()
	if red>>8 < 250 || green>>8 < 250 || blue>>8 < 250 {
		t.Errorf("background pixel = (%d, %d, %d), want white", red>>8, green>>8, blue>>8)
	}
}

func TestRasterResizesOnClear(t *testing.T) {
	r := NewRaster(10, 10)
	defer r.Close()
	if err := r.Clear(Size{Width: 40, Height: 30}, "#000000"); err != nil {
		t.Fatal(err)
	}
	b := r.Image().Bounds()
	if b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %v, want 40x30", b)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(16, 16)
	defer r.Close()
	if err := Render(r, Size{Width: 16, Height: 16}, state.DrawingState{}, nil, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("decoded bounds = %v, want 16x16", b)
	}
}

func TestParseColor(t *testing.T) {
	near := func(got uint32, want uint32) bool {
		got >>= 8
		return got+1 >= want && got <= want+1
	}
	r, g, b, a := ParseColor(state.ColorDone).RGBA()
	if !near(r, 0x22) || !near(g, 0xc5) || !near(b, 0x5e) || !near(a, 0xff) {
		t.Errorf("ParseColor(%s) = (%x, %x, %x, %x)", state.ColorDone, r>>8, g>>8, b>>8, a>>8)
	}
}
