package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/propgraph/internal/model"
)

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads the documents at the given paths and translates them into
	// one format-agnostic model. Paths may name files or directories.
	Load(ctx context.Context, paths ...string) (*model.Document, hcl.Diagnostics)

	// Files returns the parsed source files, keyed by filename, for printing
	// diagnostics with source snippets.
	Files() map[string]*hcl.File
}
