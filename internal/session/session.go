// Package session serves one loaded document to concurrent users. The engine
// is single-threaded, so a Session serializes every call into it behind one
// mutex. Server exposes a Session over socket.io and Watch follows a running
// server from the command line.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/engine"
	"github.com/specialistvlad/propgraph/internal/render"
	"github.com/zclconf/go-cty/cty"
)

// Session owns the engine of one document.
type Session struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// New wraps e. The caller must not use e directly afterwards.
func New(e *engine.Engine) *Session {
	return &Session{engine: e}
}

// NewRenderer creates a renderer with its own change tracking.
func (s *Session) NewRenderer() *render.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.New(s.engine)
}

// Render produces the next delta of r.
func (s *Session) Render(ctx context.Context, r *render.Renderer) *render.Delta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.Render(ctx)
}

// Dispatch runs one action request.
func (s *Session) Dispatch(ctx context.Context, req ActionRequest) (*engine.UpdateReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.engine.ComponentByAddress(req.Component)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.Dispatch(ctx, engine.Action{Component: idx, Name: req.Action, Args: req.Args})
	if err != nil {
		return report, err
	}
	logDropped(ctx, s.engine, report)
	return report, nil
}

// Set requests a new value for a public prop.
func (s *Session) Set(ctx context.Context, a Assignment) (*engine.UpdateReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.engine.PropByAddress(a.Prop)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.RequestUpdate(ctx, p, cty.StringVal(a.Value))
	if err != nil {
		return report, fmt.Errorf("failed to set %s: %w", a.Prop, err)
	}
	logDropped(ctx, s.engine, report)
	return report, nil
}

func logDropped(ctx context.Context, e *engine.Engine, report *engine.UpdateReport) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range report.Dropped {
		logger.Warn("Update could not be applied.", "prop", e.Label(d.Prop), "error", d.Err)
	}
}
