package state

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidPoint is returned by AddPoint when a coordinate is NaN or
// infinite and no geometry can be built from it.
var ErrInvalidPoint = errors.New("point has no finite coordinates")

// ErrUnknownPolicy is returned when parsing an abandon policy name fails.
var ErrUnknownPolicy = errors.New("unknown abandon policy")

// AbandonPolicy decides what happens to an unfinished path when the
// user interacts with the background while drawing.
type AbandonPolicy int

const (
	// AbandonKeep leaves the open path on the canvas as it is.
	AbandonKeep AbandonPolicy = iota
	// AbandonDiscard removes the open path with an undoable commit.
	AbandonDiscard
)

func (p AbandonPolicy) String() string {
	switch p {
	case AbandonKeep:
		return "keep"
	case AbandonDiscard:
		return "discard"
	default:
		return fmt.Sprintf("AbandonPolicy(%d)", int(p))
	}
}

// ParseAbandonPolicy maps "keep" or "discard" (any case) to a policy.
// The empty string selects AbandonKeep.
func ParseAbandonPolicy(s string) (AbandonPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return AbandonKeep, nil
	case "discard":
		return AbandonDiscard, nil
	}
	return AbandonKeep, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
}

// Board is the path construction state machine. It owns the history
// log and the construction flag and is driven by explicit calls from
// a shell. A Board is not safe for concurrent use; each shell owns one.
//
// The machine is Idle when the next point starts a new path and
// Drawing while the newest path is still being built.
type Board struct {
	history  *History
	current  DrawingState
	startNew bool
	policy   AbandonPolicy
	palette  Palette
	log      *slog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithAbandonPolicy sets the policy applied by OnBackgroundInteraction.
func WithAbandonPolicy(p AbandonPolicy) Option {
	return func(b *Board) { b.policy = p }
}

// WithPalette sets the colors given to paths in progress and finished paths.
func WithPalette(p Palette) Option {
	return func(b *Board) {
		if p.Drawing != "" {
			b.palette.Drawing = p.Drawing
		}
		if p.Done != "" {
			b.palette.Done = p.Done
		}
	}
}

// WithLogger sets the logger used for transition diagnostics.
// A nil logger keeps the board silent.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBoard returns an Idle board with an empty canvas.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		history:  NewHistory(),
		current:  DrawingState{},
		startNew: true,
		palette:  DefaultPalette(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPoint places p on the canvas. From Idle it starts a new path,
// while Drawing it extends the newest one.
func (b *Board) AddPoint(p Point) error {
	if !p.finite() {
		return fmt.Errorf("add point (%v, %v): %w", p.X, p.Y, ErrInvalidPoint)
	}

	next := b.current.Clone()
	if b.startNew || len(next) == 0 {
		next = append(next, Path{
			Points: []Point{p},
			Color:  b.palette.Drawing,
		})
		b.startNew = false
		b.log.Debug("path started", "x", p.X, "y", p.Y, "paths", len(next))
	} else {
		last := next.last()
		last.Points = append(last.Points, p)
		b.log.Debug("point appended", "x", p.X, "y", p.Y, "points", len(last.Points))
	}
	b.commit(next)
	return nil
}

// FinishPath closes the path under construction. The first point is
// repeated at the end unless the last point already sits on it.
// Without an active path this is a no-op.
func (b *Board) FinishPath() {
	if b.startNew || len(b.current) == 0 {
		return
	}
	next := b.current.Clone()
	last := next.last()
	first, ok := last.First()
	if !ok {
		return
	}
	if end, _ := last.Last(); !end.Eq(first) {
		last.Points = append(last.Points, first)
	}
	last.Closed = true
	last.Color = b.palette.Done
	b.startNew = true
	b.log.Debug("path finished", "points", len(last.Points))
	b.commit(next)
}

// OnBackgroundInteraction handles a click outside the canvas and its
// controls. While Drawing it returns the board to Idle and applies the
// abandon policy to the unfinished path.
func (b *Board) OnBackgroundInteraction() {
	if b.startNew {
		return
	}
	b.startNew = true

	switch b.policy {
	case AbandonDiscard:
		if len(b.current) == 0 {
			return
		}
		next := b.current.Clone()
		next = next[:len(next)-1]
		b.log.Debug("open path discarded", "paths", len(next))
		b.commit(next)
	default:
		b.log.Debug("open path kept", "paths", len(b.current))
	}
}

// Undo steps back one snapshot. At the initial state it does nothing.
func (b *Board) Undo() {
	s, ok := b.history.Undo()
	if !ok {
		return
	}
	b.current = s
	b.startNew = true
	b.log.Debug("undo", "cursor", b.history.Cursor(), "len", b.history.Len())
}

// Redo steps forward one snapshot. At the newest state it does nothing.
func (b *Board) Redo() {
	s, ok := b.history.Redo()
	if !ok {
		return
	}
	b.current = s
	b.startNew = true
	b.log.Debug("redo", "cursor", b.history.Cursor(), "len", b.history.Len())
}

// Clear commits an empty canvas. It can be undone like any other action.
func (b *Board) Clear() {
	b.startNew = true
	b.log.Debug("clear", "paths", len(b.current))
	b.commit(DrawingState{})
}

func (b *Board) CanUndo() bool { return b.history.CanUndo() }
func (b *Board) CanRedo() bool { return b.history.CanRedo() }

// CurrentState returns a copy of the canonical drawing state. Callers
// may modify the result freely.
func (b *Board) CurrentState() DrawingState {
	return b.current.Clone()
}

// IsDrawing reports whether a path is under construction.
func (b *Board) IsDrawing() bool {
	return !b.startNew
}

// ActivePoint returns the last point of the path under construction.
func (b *Board) ActivePoint() (Point, bool) {
	if b.startNew {
		return Point{}, false
	}
	last := b.current.last()
	if last == nil {
		return Point{}, false
	}
	return last.Last()
}

// LiveSegment returns the preview segment from the active point to
// pointer, or nil when nothing is being drawn.
func (b *Board) LiveSegment(pointer Point) *Segment {
	from, ok := b.ActivePoint()
	if !ok {
		return nil
	}
	return &Segment{From: from, To: pointer}
}

// Policy returns the abandon policy in effect.
func (b *Board) Policy() AbandonPolicy { return b.policy }

// Palette returns the colors assigned to new and finished paths.
func (b *Board) Palette() Palette { return b.palette }

// commit makes next canonical. The log receives its own copy so the
// live state never shares memory with a stored snapshot.
func (b *Board) commit(next DrawingState) {
	b.history.Commit(next.Clone())
	b.current = next
}
