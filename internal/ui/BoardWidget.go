package ui

import (
	"log/slog"

	"PolyBoard/internal/render"
	"PolyBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget is the drawing canvas. A tap places a point, a double tap
// finishes the current path and hovering shows the live preview.
// All methods run on the fyne event goroutine.
type BoardWidget struct {
	widget.BaseWidget
	board *state.Board
	style render.Style
	size  render.Size
	log   *slog.Logger

	pointer    state.Point
	hasPointer bool

	// OnChanged runs after every action that may change the board.
	OnChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ fyne.DoubleTappable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(board *state.Board, style render.Style, size render.Size, log *slog.Logger) *BoardWidget {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &BoardWidget{
		board: board,
		style: style,
		size:  size,
		log:   log,
	}
	b.ExtendBaseWidget(b)
	return b
}

// Board returns the state machine behind the widget.
func (b *BoardWidget) Board() *state.Board { return b.board }

func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	p := state.Pt(float64(e.Position.X), float64(e.Position.Y))
	if err := b.board.AddPoint(p); err != nil {
		b.log.Warn("point rejected", "err", err)
		return
	}
	b.changed()
}

func (b *BoardWidget) DoubleTapped(_ *fyne.PointEvent) {
	b.board.FinishPath()
	b.changed()
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.track(e.Position)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.track(e.Position)
}

func (b *BoardWidget) MouseOut() {
	b.hasPointer = false
	b.Refresh()
}

func (b *BoardWidget) track(p fyne.Position) {
	b.pointer = state.Pt(float64(p.X), float64(p.Y))
	b.hasPointer = true
	// Only the preview moves with the pointer.
	if b.board.IsDrawing() {
		b.Refresh()
	}
}

// Background is called for taps that land outside the canvas and its
// controls.
func (b *BoardWidget) Background() {
	b.board.OnBackgroundInteraction()
	b.changed()
}

func (b *BoardWidget) Undo() {
	b.board.Undo()
	b.changed()
}

func (b *BoardWidget) Redo() {
	b.board.Redo()
	b.changed()
}

func (b *BoardWidget) Clear() {
	b.board.Clear()
	b.changed()
}

func (b *BoardWidget) changed() {
	b.Refresh()
	if b.OnChanged != nil {
		b.OnChanged()
	}
}

// liveSegment returns the preview segment when the pointer is over the
// canvas and a path is being drawn.
func (b *BoardWidget) liveSegment() *state.Segment {
	if !b.hasPointer {
		return nil
	}
	return b.board.LiveSegment(b.pointer)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.rebuild(fyne.NewSize(float32(b.size.Width), float32(b.size.Height)))
	return r
}

type boardWidgetRenderer struct {
	board   *BoardWidget
	surface objectSurface
	size    fyne.Size
}

func (r *boardWidgetRenderer) rebuild(size fyne.Size) {
	r.size = size
	b := r.board
	extent := render.Size{Width: float64(size.Width), Height: float64(size.Height)}
	if err := render.Render(&r.surface, extent, b.board.CurrentState(), b.liveSegment(), b.style); err != nil {
		b.log.Error("render board", "err", err)
	}
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.surface.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild(r.size)
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.board.size.Width), float32(r.board.size.Height))
}

func (r *boardWidgetRenderer) Destroy() {}
