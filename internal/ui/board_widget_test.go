package ui

import (
	"testing"

	"PolyBoard/internal/render"
	"PolyBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/google/go-cmp/cmp"
)

func newTestBoard(t *testing.T, opts ...state.Option) *BoardWidget {
	t.Helper()
	test.NewApp()
	return NewBoardWidget(state.NewBoard(opts...), render.DefaultStyle(), render.Size{Width: 200, Height: 100}, nil)
}

func hover(b *BoardWidget, x, y float32) {
	b.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func countLines(objs []fyne.CanvasObject) int {
	n := 0
	for _, o := range objs {
		if _, ok := o.(*canvas.Line); ok {
			n++
		}
	}
	return n
}

func TestBoardWidgetTapsBuildPath(t *testing.T) {
	b := newTestBoard(t)
	test.TapAt(b, fyne.NewPos(10, 10))
	test.TapAt(b, fyne.NewPos(50, 10))
	test.TapAt(b, fyne.NewPos(50, 50))
	test.DoubleTap(b)

	want := state.DrawingState{{
		Points: []state.Point{state.Pt(10, 10), state.Pt(50, 10), state.Pt(50, 50), state.Pt(10, 10)},
		Closed: true,
		Color:  state.ColorDone,
	}}
	if d := cmp.Diff(want, b.Board().CurrentState()); d != "" {
		t.Error(d)
	}
}

func TestBoardWidgetRendersPreview(t *testing.T) {
	b := newTestBoard(t)
	r := test.WidgetRenderer(b)

	test.TapAt(b, fyne.NewPos(10, 10))
	test.TapAt(b, fyne.NewPos(50, 10))
	if got := countLines(r.Objects()); got != 1 {
		t.Fatalf("lines without pointer = %d, want 1", got)
	}

	hover(b, 80, 80)
	if got := countLines(r.Objects()); got != 2 {
		t.Errorf("lines with pointer = %d, want 2", got)
	}

	b.MouseOut()
	if got := countLines(r.Objects()); got != 1 {
		t.Errorf("lines after pointer left = %d, want 1", got)
	}
}

func TestBoardWidgetBackground(t *testing.T) {
	b := newTestBoard(t)
	content, _ := NewContent(b)
	test.TapAt(b, fyne.NewPos(10, 10))

	stack := content.(*fyne.Container)
	bd := stack.Objects[0].(*backdrop)
	test.Tap(bd)

	if b.Board().IsDrawing() {
		t.Error("board still drawing after background tap")
	}
	if got := len(b.Board().CurrentState()); got != 1 {
		t.Errorf("paths = %d, want 1 with keep policy", got)
	}
}

func TestToolbarTracksHistory(t *testing.T) {
	b := newTestBoard(t)
	_, tb := NewContent(b)

	if !tb.Undo.Disabled() || !tb.Redo.Disabled() {
		t.Fatal("history buttons enabled on empty board")
	}

	test.TapAt(b, fyne.NewPos(10, 10))
	if tb.Undo.Disabled() {
		t.Error("Undo disabled after adding a point")
	}

	test.Tap(tb.Undo)
	if !tb.Undo.Disabled() {
		t.Error("Undo enabled at initial state")
	}
	if tb.Redo.Disabled() {
		t.Error("Redo disabled after undo")
	}

	test.Tap(tb.Redo)
	test.Tap(tb.Clear)
	if got := len(b.Board().CurrentState()); got != 0 {
		t.Errorf("paths after clear = %d, want 0", got)
	}
	if tb.Status.Text != "0 paths" {
		t.Errorf("status = %q, want %q", tb.Status.Text, "0 paths")
	}
}

func TestObjectSurfaceClosesLoop(t *testing.T) {
	var s objectSurface
	s.Clear(render.Size{Width: 10, Height: 10}, "#ffffff")
	s.StrokePolyline([]state.Point{state.Pt(0, 0), state.Pt(5, 0), state.Pt(5, 5)}, true, state.ColorDone, 3)
	if got := countLines(s.objects); got != 3 {
		t.Errorf("lines = %d, want 3 for an unterminated closed path", got)
	}

	s.Clear(render.Size{Width: 10, Height: 10}, "#ffffff")
	s.StrokePolyline([]state.Point{state.Pt(0, 0), state.Pt(5, 0), state.Pt(5, 5), state.Pt(0, 0)}, true, state.ColorDone, 3)
	if got := countLines(s.objects); got != 3 {
		t.Errorf("lines = %d, want 3 when the path already ends on its start", got)
	}

	s.MarkVertex(state.Pt(5, 5), 4, state.ColorDone)
	dot, ok := s.objects[len(s.objects)-1].(*canvas.Circle)
	if !ok {
		t.Fatalf("last object %T, want *canvas.Circle", s.objects[len(s.objects)-1])
	}
	if dot.Position1 != fyne.NewPos(1, 1) || dot.Position2 != fyne.NewPos(9, 9) {
		t.Errorf("circle bounds = %v-%v, want (1,1)-(9,9)", dot.Position1, dot.Position2)
	}
}
