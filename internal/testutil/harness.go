package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/engine"
	hclloader "github.com/specialistvlad/propgraph/internal/hcl"
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/structure"
	"github.com/specialistvlad/propgraph/modules/errorbox"
	"github.com/specialistvlad/propgraph/modules/input"
	"github.com/specialistvlad/propgraph/modules/layout"
	"github.com/specialistvlad/propgraph/modules/text"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Modules is the catalog documents are built against when a test does not
// pass its own.
func Modules() []registry.Module {
	return []registry.Module{&layout.Module{}, &text.Module{}, &input.Module{}, &errorbox.Module{}}
}

// HarnessResult holds the outcome of loading and building a document.
type HarnessResult struct {
	Dir    string
	Ctx    context.Context
	Logs   *SafeBuffer
	Doc    *model.Document
	Diags  hcl.Diagnostics
	Engine *engine.Engine
}

// RunDocumentTest writes files (relative path to source) to a temporary
// directory, loads every .hcl file in it and builds the result. Engine is nil
// when loading or building produced errors; the diagnostics are returned
// instead of failing the test.
func RunDocumentTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	t.Cleanup(func() {
		if os.Getenv("PROPGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	if len(modules) == 0 {
		modules = Modules()
	}
	reg := registry.New()
	for _, m := range modules {
		m.Register(reg)
	}

	res := &HarnessResult{Dir: dir, Ctx: ctx, Logs: logs}
	res.Doc, res.Diags = hclloader.NewLoader().Load(ctx, dir)
	if res.Diags.HasErrors() {
		return res
	}

	store, diags := structure.Build(ctx, res.Doc, reg)
	res.Diags = append(res.Diags, diags...)
	if res.Diags.HasErrors() {
		return res
	}
	res.Engine = engine.New(ctx, store)
	return res
}
