package net

import "PolyBoard/internal/state"

// MessageType names an input event sent by a remote shell.
type MessageType string

const (
	MsgAddPoint     MessageType = "add_point"
	MsgFinishPath   MessageType = "finish_path"
	MsgBackground   MessageType = "background"
	MsgUndo         MessageType = "undo"
	MsgRedo         MessageType = "redo"
	MsgClear        MessageType = "clear"
	MsgPointer      MessageType = "pointer"
	MsgPointerLeave MessageType = "pointer_leave"
	MsgState        MessageType = "state"
)

// Message is one input event. X and Y are required for add_point and
// pointer and ignored otherwise.
type Message struct {
	Type MessageType `json:"type"`
	X    *float64    `json:"x,omitempty"`
	Y    *float64    `json:"y,omitempty"`
}

// point returns the coordinates carried by m.
func (m Message) point() (state.Point, bool) {
	if m.X == nil || m.Y == nil {
		return state.Point{}, false
	}
	return state.Pt(*m.X, *m.Y), true
}

// Frame is the state reply sent after every message. Error is set when
// the message was rejected; the state is then unchanged.
type Frame struct {
	Session     string             `json:"session"`
	Paths       state.DrawingState `json:"paths"`
	CanUndo     bool               `json:"can_undo"`
	CanRedo     bool               `json:"can_redo"`
	Drawing     bool               `json:"drawing"`
	ActivePoint *state.Point       `json:"active_point,omitempty"`
	Error       string             `json:"error,omitempty"`
}
