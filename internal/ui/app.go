package ui

import (
	"log/slog"

	"PolyBoard/internal/config"
	"PolyBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// RunApp opens the desktop window and blocks until it closes.
func RunApp(cfg config.Config, log *slog.Logger) {
	myApp := app.New()
	myWindow := myApp.NewWindow("PolyBoard")

	board := state.NewBoard(
		state.WithAbandonPolicy(cfg.Policy()),
		state.WithPalette(cfg.Palette()),
		state.WithLogger(log.With("shell", "desktop")),
	)
	w := NewBoardWidget(board, cfg.RenderStyle(), cfg.Size(), log)
	content, _ := NewContent(w)

	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width)+40, float32(cfg.Canvas.Height)+80))
	log.Info("desktop shell started", "policy", cfg.Policy(), "width", cfg.Canvas.Width, "height", cfg.Canvas.Height)
	myWindow.ShowAndRun()
}
