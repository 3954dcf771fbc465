package net

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"PolyBoard/internal/render"
	"PolyBoard/internal/state"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Peer is one connected remote shell. It owns its board; the board is
// only touched from the goroutine serving the peer's connection.
type Peer struct {
	ID    string
	Conn  *websocket.Conn
	Board *state.Board

	size    render.Size
	style   render.Style
	raster  *render.Raster
	pointer *state.Point
	log     *slog.Logger
}

// newPeer returns a peer without a board; the caller attaches one built
// with the peer's logger.
func newPeer(conn *websocket.Conn, size render.Size, style render.Style, frames bool, log *slog.Logger) *Peer {
	p := &Peer{
		ID:    uuid.NewString(),
		Conn:  conn,
		size:  size,
		style: style,
	}
	p.log = log.With("session", p.ID)
	if frames {
		p.raster = render.NewRaster(int(size.Width), int(size.Height))
	}
	return p
}

// handle applies msg to the peer's board and returns the reply frame.
func (p *Peer) handle(msg Message) Frame {
	var err error
	switch msg.Type {
	case MsgAddPoint:
		pt, ok := msg.point()
		if !ok {
			err = fmt.Errorf("%s needs x and y", msg.Type)
			break
		}
		err = p.Board.AddPoint(pt)
	case MsgFinishPath:
		p.Board.FinishPath()
	case MsgBackground:
		p.Board.OnBackgroundInteraction()
	case MsgUndo:
		p.Board.Undo()
	case MsgRedo:
		p.Board.Redo()
	case MsgClear:
		p.Board.Clear()
	case MsgPointer:
		pt, ok := msg.point()
		if !ok {
			err = fmt.Errorf("%s needs x and y", msg.Type)
			break
		}
		p.pointer = &pt
	case MsgPointerLeave:
		p.pointer = nil
	case MsgState:
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	f := p.frame()
	if err != nil {
		p.log.Warn("message rejected", "type", msg.Type, "err", err)
		f.Error = err.Error()
	}
	return f
}

func (p *Peer) frame() Frame {
	f := Frame{
		Session: p.ID,
		Paths:   p.Board.CurrentState(),
		CanUndo: p.Board.CanUndo(),
		CanRedo: p.Board.CanRedo(),
		Drawing: p.Board.IsDrawing(),
	}
	if ap, ok := p.Board.ActivePoint(); ok {
		f.ActivePoint = &ap
	}
	return f
}

// errorFrame reports a message that could not be decoded.
func (p *Peer) errorFrame(err error) Frame {
	f := p.frame()
	f.Error = err.Error()
	return f
}

// send writes f as a text message, followed by a PNG of the canvas when
// frame rendering is enabled.
func (p *Peer) send(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := p.write(websocket.TextMessage, data); err != nil {
		return err
	}
	if p.raster == nil {
		return nil
	}

	var live *state.Segment
	if p.pointer != nil {
		live = p.Board.LiveSegment(*p.pointer)
	}
	if err := render.Render(p.raster, p.size, f.Paths, live, p.style); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	var buf bytes.Buffer
	if err := p.raster.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return p.write(websocket.BinaryMessage, buf.Bytes())
}

func (p *Peer) write(messageType int, data []byte) error {
	if err := p.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return p.Conn.WriteMessage(messageType, data)
}

func (p *Peer) close() {
	if p.raster != nil {
		if err := p.raster.Close(); err != nil {
			p.log.Warn("release raster", "err", err)
		}
	}
	p.Conn.Close()
}

// PeerManager tracks the remote shells connected to the server.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
	log   *slog.Logger
}

// NewPeerManager creates a new manager.
func NewPeerManager(log *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		log:   log,
	}
}

// Add registers a freshly connected peer.
func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.ID] = peer
	pm.log.Info("shell connected", "session", peer.ID, "remote", peer.Conn.RemoteAddr().String(), "active", len(pm.peers))
}

// Remove forgets a peer. It does not close the connection.
func (pm *PeerManager) Remove(id string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if _, ok := pm.peers[id]; !ok {
		return
	}
	delete(pm.peers, id)
	pm.log.Info("shell disconnected", "session", id, "active", len(pm.peers))
}

// Count returns the number of connected peers.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll sends a going-away close message to every peer and closes
// their connections. Their serving goroutines then exit on read error.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for id, p := range pm.peers {
		err := p.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			pm.log.Warn("send close", "session", id, "err", err)
		}
		p.Conn.Close()
	}
}
