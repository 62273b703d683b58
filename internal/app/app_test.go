package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	hclloader "github.com/specialistvlad/propgraph/internal/hcl"
	"github.com/specialistvlad/propgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetingDoc = `
text "store" {
  content = "abc"
}

textInput "field" {
  bind_value_to = store
}

section "intro" {
  title = "Hello ${store}"
}
`

// setupApp writes src to a temporary main.hcl and creates an app over it.
func setupApp(t *testing.T, src string, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg.DocPaths = []string{path}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	out := &testutil.SafeBuffer{}
	a := NewApp(out, &cfg, hclloader.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("PROPGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})
	return a, out
}

// renderLine returns the JSON render line of out.
func renderLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, `{"first":`) {
			return line
		}
	}
	t.Fatalf("no render in output:\n%s", out)
	return ""
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "document", cfg: Config{DocPaths: []string{"doc"}}},
		{name: "serve", cfg: Config{DocPaths: []string{"doc"}, ServePort: 8080, HealthcheckPort: 8081}},
		{name: "watch", cfg: Config{WatchURL: "http://localhost:8080"}},
		{name: "no document", cfg: Config{}, wantErr: "DocPaths is a required"},
		{name: "watch with document", cfg: Config{WatchURL: "http://x", DocPaths: []string{"doc"}}, wantErr: "watch mode"},
		{name: "watch with set", cfg: Config{WatchURL: "http://x", Sets: []string{"a=b"}}, wantErr: "watch mode"},
		{name: "port range", cfg: Config{DocPaths: []string{"doc"}, ServePort: 70000}, wantErr: "serve-port"},
		{name: "same ports", cfg: Config{DocPaths: []string{"doc"}, ServePort: 9000, HealthcheckPort: 9000}, wantErr: "must differ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg.DocPaths, cfg.DocPaths)
		})
	}
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, _ := setupApp(t, greetingDoc, Config{})
	for _, typ := range []string{"document", "section", "text", "number", "boolean", "textInput", "booleanInput", "env"} {
		_, ok := a.Registry().Lookup(typ)
		assert.True(t, ok, "missing %s", typ)
	}
}

func TestRun_PrintsRender(t *testing.T) {
	a, out := setupApp(t, greetingDoc, Config{LogLevel: "error"})

	require.NoError(t, a.Run(context.Background()))

	line := renderLine(t, out.String())
	assert.Contains(t, line, `"title":"Hello abc"`)
}

func TestRun_AppliesSetsThenActions(t *testing.T) {
	a, out := setupApp(t, greetingDoc, Config{
		Sets:    []string{"store=first"},
		Actions: []string{`field:updateValue:{"text":"second"}`},
	})

	require.NoError(t, a.Run(context.Background()))

	line := renderLine(t, out.String())
	assert.Contains(t, line, `"title":"Hello second"`)
	assert.Contains(t, out.String(), "Action dispatched.")
}

func TestRun_RequestErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "malformed set", cfg: Config{Sets: []string{"store"}}, wantErr: "invalid request"},
		{name: "unknown component", cfg: Config{Sets: []string{"ghost=1"}}, wantErr: "unknown component"},
		{name: "unknown action", cfg: Config{Actions: []string{"field:explode"}}, wantErr: "unknown action"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := setupApp(t, greetingDoc, tc.cfg)
			err := a.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_SyntaxErrorIsFatal(t *testing.T) {
	a, out := setupApp(t, "text \"broken\" {\n", Config{})

	err := a.Load(a.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load document")
	assert.Contains(t, out.String(), "Error: ")
	assert.Nil(t, a.Session())
}

func TestLoad_StructureErrorsRenderInPlace(t *testing.T) {
	a, out := setupApp(t, `
widget "w" {}

text "ok" {
  content = "fine"
}
`, Config{})

	require.NoError(t, a.Load(a.ctx))
	require.NotNil(t, a.Session())
	assert.Contains(t, out.String(), "Unknown component type")

	require.NoError(t, a.PrintRender(a.ctx))
	line := renderLine(t, out.String())
	assert.Contains(t, line, `"type":"_error"`)
	assert.Contains(t, line, `"fine"`)
}

func TestHealthHandler(t *testing.T) {
	a, _ := setupApp(t, greetingDoc, Config{})

	rec := httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, a.Load(a.ctx))
	rec = httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestServe_StopsWithContext(t *testing.T) {
	a, _ := setupApp(t, greetingDoc, Config{})
	require.NoError(t, a.Load(a.ctx))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(a.ctx)
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "OK\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
