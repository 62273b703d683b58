package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/session"
)

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	if a.config.WatchURL != "" {
		a.logger.Info("👀 Watching server.", "url", a.config.WatchURL)
		return session.Watch(ctx, a.config.WatchURL, a.outW)
	}

	if err := a.Load(ctx); err != nil {
		return err
	}
	if err := a.ApplyRequests(ctx); err != nil {
		return err
	}

	if a.config.ServePort > 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.ServePort))
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", a.config.ServePort, err)
		}
		return a.Serve(ctx, ln)
	}

	err := a.PrintRender(ctx)
	a.logger.Debug("App.Run method finished.")
	return err
}

// ApplyRequests applies the configured assignments, then the configured
// actions, in order. Branches an updater refuses are logged, not returned.
func (a *App) ApplyRequests(ctx context.Context) error {
	for _, raw := range a.config.Sets {
		assignment, err := session.ParseAssignment(raw)
		if err != nil {
			return err
		}
		if _, err := a.session.Set(ctx, assignment); err != nil {
			return fmt.Errorf("--set %s: %w", raw, err)
		}
	}
	for _, raw := range a.config.Actions {
		req, err := session.ParseActionRequest(raw)
		if err != nil {
			return err
		}
		if _, err := a.session.Dispatch(ctx, req); err != nil {
			return fmt.Errorf("--action %s: %w", raw, err)
		}
	}
	return nil
}

// PrintRender writes the complete render of the document as one JSON line.
func (a *App) PrintRender(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	delta := a.session.Render(ctx, a.session.NewRenderer())
	if err := delta.Errs(); err != nil {
		logger.Warn("Some props could not be rendered.", "error", err)
	}

	buf, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to encode render: %w", err)
	}
	_, err = fmt.Fprintln(a.outW, string(buf))
	return err
}
