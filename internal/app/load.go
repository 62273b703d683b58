package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/engine"
	"github.com/specialistvlad/propgraph/internal/session"
	"github.com/specialistvlad/propgraph/internal/structure"
)

// Load reads and builds the document. Syntax errors are fatal. Structure
// errors are printed and the document still loads: each problem renders as
// an error component in place of the broken content.
func (a *App) Load(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading document...", "paths", a.config.DocPaths)

	doc, diags := a.loader.Load(ctx, a.config.DocPaths...)
	if diags.HasErrors() {
		a.printDiagnostics(diags)
		return fmt.Errorf("failed to load document: %w", diags)
	}

	store, buildDiags := structure.Build(ctx, doc, a.registry)
	diags = append(diags, buildDiags...)
	if len(diags) > 0 {
		a.printDiagnostics(diags)
	}
	if buildDiags.HasErrors() {
		logger.Warn("Document has errors; they are rendered in place.", "count", len(buildDiags.Errs()))
	}

	a.session = session.New(engine.New(ctx, store))
	logger.Info("Document loaded.",
		"files", len(doc.Files),
		"components", store.NumComponents(),
		"props", store.NumProps(),
	)
	return nil
}

func (a *App) printDiagnostics(diags hcl.Diagnostics) {
	wr := hcl.NewDiagnosticTextWriter(a.outW, a.loader.Files(), 78, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to print diagnostics.", "error", err)
	}
}
