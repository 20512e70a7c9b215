package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestDir creates a temporary data directory with a config.yaml that
// selects the file backend and disables the date line and colour, so
// rendered output is deterministic. The directory is removed when the
// test completes.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	configContent := `storage:
  backend: file
ui:
  width: 40
  color: false
  date: false
log:
  level: error
`
	WriteTestFile(t, dir, "config.yaml", []byte(configContent))
	return dir
}

// WriteStoreFile writes a file-backed store at <dir>/store.json holding
// value verbatim under the "todos" key.
func WriteStoreFile(t *testing.T, dir, value string) string {
	t.Helper()

	path := filepath.Join(dir, "store.json")
	content := `{"todos": ` + value + `}`
	WriteTestFile(t, dir, "store.json", []byte(content))
	return path
}

// MustMarshalJSON marshals v to JSON, failing the test on error.
func MustMarshalJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

// WriteTestFile writes content to basePath/relativePath, creating
// parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) {
	t.Helper()
	path := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}
