package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes each file under root, creating subdirectories as needed.
// Paths are slash-separated and relative to root. An empty root writes into a
// fresh temporary directory, returned with symlinks resolved. The root used
// is returned.
func WriteFiles(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	if root == "" {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		root = dir
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// ReadFile returns a file's content as a string, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
