package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"PolyBoard/internal/config"
	"PolyBoard/internal/state"

	"github.com/gorilla/websocket"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a board per websocket connection. Remote shells send
// Message values and receive a Frame after each one.
type Server struct {
	cfg      config.Config
	log      *slog.Logger
	peers    *PeerManager
	upgrader websocket.Upgrader
}

func NewServer(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		peers: NewPeerManager(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Shells are served from anywhere on the LAN, including file:// pages.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Peers returns the connection registry.
func (s *Server) Peers() *PeerManager { return s.peers }

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Server.Path, s.serveWS)
	return mux
}

// ListenAndServe listens on the configured port until ctx is cancelled.
// When advertising is enabled the endpoint is announced over mDNS.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	s.log.Info("remote shell listening", "url", ShareURL(port, s.cfg.Server.Path))

	if s.cfg.Server.Advertise {
		m, err := Advertise(port, s.cfg.Server.Path)
		if err != nil {
			s.log.Warn("mDNS advertisement unavailable", "err", err)
		} else {
			defer m.Shutdown()
		}
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("remote shell stopping", "active", s.peers.Count())
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(sctx)
	// Hijacked websocket connections are not closed by Shutdown.
	s.peers.CloseAll()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) newBoard(log *slog.Logger) *state.Board {
	return state.NewBoard(
		state.WithAbandonPolicy(s.cfg.Policy()),
		state.WithPalette(s.cfg.Palette()),
		state.WithLogger(log),
	)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	peer := newPeer(conn, s.cfg.Size(), s.cfg.RenderStyle(), s.cfg.Server.RenderFrames, s.log)
	peer.Board = s.newBoard(peer.log)
	s.peers.Add(peer)
	defer s.peers.Remove(peer.ID)
	defer peer.close()

	if err := peer.send(peer.frame()); err != nil {
		peer.log.Warn("send initial frame", "err", err)
		return
	}

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				peer.log.Warn("connection lost", "err", err)
			}
			return
		}

		var f Frame
		var msg Message
		switch {
		case mt != websocket.TextMessage:
			f = peer.errorFrame(errors.New("expected a text message"))
		default:
			if err := json.Unmarshal(data, &msg); err != nil {
				f = peer.errorFrame(fmt.Errorf("decode message: %w", err))
			} else {
				f = peer.handle(msg)
			}
		}

		if err := peer.send(f); err != nil {
			peer.log.Warn("send frame", "err", err)
			return
		}
	}
}
