package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/session"
)

// Serve exposes the loaded document to socket.io clients on ln until ctx is
// done. The mux also answers health checks.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)

	io := session.NewServer(ctx, a.session)

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.Handler())
	mux.HandleFunc("/health", a.healthHandler)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	failed := make(chan error, 1)
	go func() {
		logger.Info("🚀 Serving document.", "address", fmt.Sprintf("http://%s/socket.io/", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	var serveErr error
	select {
	case serveErr = <-failed:
	case <-ctx.Done():
	}
	io.Close()
	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	logger.Info("🏁 Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
