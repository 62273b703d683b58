package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/propgraph/internal/config"
	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	loader   config.Loader
	registry *registry.Registry
	session  *session.Session

	healthServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Without modules the core catalog is registered.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Component definitions are validated on registration; an invalid one is
	// a programmer error and panics.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   appConfig,
		loader:   loader,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Session returns the loaded document's session, or nil before Load.
func (a *App) Session() *session.Session {
	return a.session
}
