package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// backdrop fills the window behind the board and the toolbar. Taps that
// reach it missed every control, so they count as background clicks.
type backdrop struct {
	widget.BaseWidget
	OnTapped func()
}

func newBackdrop(tapped func()) *backdrop {
	d := &backdrop{OnTapped: tapped}
	d.ExtendBaseWidget(d)
	return d
}

func (d *backdrop) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (d *backdrop) Tapped(_ *fyne.PointEvent) {
	if d.OnTapped != nil {
		d.OnTapped()
	}
}

// Toolbar holds the history controls and a status line for a board.
type Toolbar struct {
	Undo   *widget.Button
	Redo   *widget.Button
	Clear  *widget.Button
	Status *widget.Label

	board *BoardWidget
}

// NewToolbar builds the controls for board. Call Sync after the board
// changes; NewContent wires that up.
func NewToolbar(board *BoardWidget) *Toolbar {
	t := &Toolbar{board: board}
	t.Undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), board.Undo)
	t.Redo = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), board.Redo)
	t.Clear = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), board.Clear)
	t.Status = widget.NewLabel("")
	t.Sync()
	return t
}

// Sync enables the buttons that can act and refreshes the status line.
func (t *Toolbar) Sync() {
	sb := t.board.Board()
	setEnabled(t.Undo, sb.CanUndo())
	setEnabled(t.Redo, sb.CanRedo())

	paths := len(sb.CurrentState())
	status := fmt.Sprintf("%d paths", paths)
	if sb.IsDrawing() {
		status += " · drawing (double-click to close)"
	}
	t.Status.SetText(status)
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (t *Toolbar) object() fyne.CanvasObject {
	return container.NewHBox(
		t.Undo,
		t.Redo,
		widget.NewSeparator(),
		t.Clear,
		layout.NewSpacer(),
		t.Status,
	)
}

// NewContent lays out the toolbar above the board, with a backdrop that
// turns stray taps into background interactions.
func NewContent(board *BoardWidget) (fyne.CanvasObject, *Toolbar) {
	tb := NewToolbar(board)
	board.OnChanged = tb.Sync
	body := container.NewBorder(tb.object(), nil, nil, nil, container.NewCenter(board))
	return container.NewStack(newBackdrop(board.Background), body), tb
}
