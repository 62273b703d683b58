package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/render"
	"github.com/zishang520/socket.io/v2/socket"
)

// Socket event names.
const (
	EventRender      = "render"
	EventAction      = "action"
	EventActionError = "action_error"
)

type client struct {
	sock     *socket.Socket
	renderer *render.Renderer

	// sendMu keeps deltas in render order. It is held from Render to Emit.
	sendMu sync.Mutex
}

// Server pushes render deltas of a Session to socket.io clients and applies
// the actions they send.
type Server struct {
	ctx     context.Context
	session *Session
	io      *socket.Server

	mu      sync.Mutex
	clients map[socket.SocketId]*client
}

// NewServer creates a socket.io server over sess. ctx carries the logger
// used by the event handlers.
func NewServer(ctx context.Context, sess *Session) *Server {
	s := &Server{
		ctx:     ctx,
		session: sess,
		io:      socket.NewServer(nil, nil),
		clients: make(map[socket.SocketId]*client),
	}
	s.io.On("connection", func(args ...any) {
		sock, ok := args[0].(*socket.Socket)
		if !ok {
			return
		}
		s.onConnect(sock)
	})
	return s
}

// Handler returns the HTTP handler to mount at "/socket.io/".
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) onConnect(sock *socket.Socket) {
	logger := ctxlog.FromContext(s.ctx).With("sid", sock.Id())
	c := &client{sock: sock, renderer: s.session.NewRenderer()}

	s.mu.Lock()
	s.clients[sock.Id()] = c
	s.mu.Unlock()
	logger.Info("Client connected.")

	sock.On("disconnect", func(reason ...any) {
		s.mu.Lock()
		delete(s.clients, sock.Id())
		s.mu.Unlock()
		logger.Info("Client disconnected.", "reason", reason)
	})

	sock.On(EventAction, func(data ...any) {
		if len(data) == 0 {
			return
		}
		s.onAction(c, data[0])
	})

	s.push(c)
}

func (s *Server) onAction(from *client, data any) {
	logger := ctxlog.FromContext(s.ctx).With("sid", from.sock.Id())

	req, err := requestFromEvent(data)
	if err == nil {
		_, err = s.session.Dispatch(s.ctx, req)
	}
	if err != nil {
		logger.Warn("Action failed.", "error", err)
		if emitErr := from.sock.Emit(EventActionError, map[string]any{"error": err.Error()}); emitErr != nil {
			logger.Error("Failed to report action error.", "error", emitErr)
		}
		return
	}
	logger.Debug("Action applied.", "component", req.Component.String(), "action", req.Action)

	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.push(c)
	}
}

// push sends the next delta of c unless nothing changed.
func (s *Server) push(c *client) {
	logger := ctxlog.FromContext(s.ctx)
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	delta := s.session.Render(s.ctx, c.renderer)
	if delta.Empty() {
		return
	}
	payload, err := Payload(delta)
	if err != nil {
		logger.Error("Failed to encode render delta.", "error", err)
		return
	}
	if err := c.sock.Emit(EventRender, payload); err != nil {
		logger.Error("Failed to send render delta.", "sid", c.sock.Id(), "error", err)
	}
}

// Payload converts a delta to the plain map emitted to clients.
func Payload(d *render.Delta) (map[string]any, error) {
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delta: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to decode delta: %w", err)
	}
	return out, nil
}
