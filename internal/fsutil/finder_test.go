package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# test"), 0o600))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "nested/c.hcl", "notes.txt")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dir/one.hcl", "dir/two.hcl", "single.hcl")
	single := filepath.Join(root, "single.hcl")

	files, err := ResolvePaths([]string{filepath.Join(root, "dir"), single, single}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "dir", "one.hcl"),
		filepath.Join(root, "dir", "two.hcl"),
		single,
	}, files)

	_, err = ResolvePaths([]string{filepath.Join(root, "missing")}, ".hcl")
	assert.ErrorContains(t, err, "error accessing path")
}
