package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional paths", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"a.hcl", "pages"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, []string{"a.hcl", "pages"}, cfg.DocPaths)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("doc flag comes first", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-d", "main.hcl", "extra.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []string{"main.hcl", "extra.hcl"}, cfg.DocPaths)
	})

	t.Run("repeatable requests keep order", func(t *testing.T) {
		cfg, _, err := Parse([]string{
			"--set", "a=1",
			"--action", "field:updateValue",
			"--set", "b.value=2",
			"--log-level", "DEBUG",
			"--serve-port", "8080",
			"--doc", "main.hcl",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a=1", "b.value=2"}, cfg.Sets)
		assert.Equal(t, []string{"field:updateValue"}, cfg.Actions)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 8080, cfg.ServePort)
	})

	t.Run("watch needs no document", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"--watch", "http://localhost:8080"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "http://localhost:8080", cfg.WatchURL)
		assert.Empty(t, cfg.DocPaths)
	})

	t.Run("no arguments prints usage", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		require.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "log format", args: []string{"--log-format", "xml", "a.hcl"}, wantMsg: "invalid log-format"},
		{name: "log level", args: []string{"--log-level", "loud", "a.hcl"}, wantMsg: "invalid log-level"},
		{name: "watch with document", args: []string{"--watch", "http://x", "a.hcl"}, wantMsg: "watch mode"},
		{name: "bad port", args: []string{"--serve-port", "-1", "a.hcl"}, wantMsg: "serve-port"},
		{name: "unknown flag", args: []string{"--nope"}, wantMsg: "flag provided but not defined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
