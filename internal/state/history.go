package state

import (
	"errors"
	"fmt"
)

// ErrCorruptHistory is wrapped by the panic raised when the history log
// no longer satisfies its invariants. It always indicates a bug.
var ErrCorruptHistory = errors.New("history log corrupted")

// History is a linear undo/redo log of DrawingState snapshots.
//
// The first snapshot is always the empty state. Committing while the
// cursor is behind the tail discards everything after the cursor, so
// there is only ever one redo branch.
type History struct {
	states  []DrawingState
	current int
}

// NewHistory returns a log holding only the empty initial state.
func NewHistory() *History {
	return &History{
		states: []DrawingState{{}},
	}
}

// Commit appends s and makes it the current snapshot. The log takes
// ownership of s; callers must not modify it afterwards.
func (h *History) Commit(s DrawingState) {
	if s == nil {
		s = DrawingState{}
	}
	if h.current < len(h.states)-1 {
		// Drop the redo branch. Clear the tail so the discarded
		// snapshots can be collected.
		clear(h.states[h.current+1:])
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, s)
	h.current = len(h.states) - 1
	h.check()
}

// Undo moves the cursor back one step and returns a copy of the
// snapshot it lands on. It returns false at the initial state.
func (h *History) Undo() (DrawingState, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	h.check()
	return h.states[h.current].Clone(), true
}

// Redo moves the cursor forward one step and returns a copy of the
// snapshot it lands on. It returns false at the tail.
func (h *History) Redo() (DrawingState, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	h.check()
	return h.states[h.current].Clone(), true
}

// CanUndo reports whether there is a snapshot before the cursor.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo reports whether there is a snapshot after the cursor.
func (h *History) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() DrawingState {
	h.check()
	return h.states[h.current].Clone()
}

// Len returns the number of snapshots in the log.
func (h *History) Len() int { return len(h.states) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.current }

func (h *History) check() {
	switch {
	case len(h.states) == 0:
		panic(fmt.Errorf("empty log: %w", ErrCorruptHistory))
	case h.current < 0 || h.current >= len(h.states):
		panic(fmt.Errorf("cursor %d outside [0, %d): %w", h.current, len(h.states), ErrCorruptHistory))
	case len(h.states[0]) != 0:
		panic(fmt.Errorf("initial snapshot holds %d paths: %w", len(h.states[0]), ErrCorruptHistory))
	}
}
