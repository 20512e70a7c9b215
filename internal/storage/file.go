package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/thruflo/tasklist/internal/logging"
)

// FileKV stores all keys in one JSON object on disk.
// Every Set rewrites the whole file through a temp file and rename, so
// readers never observe a partial write.
type FileKV struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFileKV creates a FileKV at path. The file and its directory are
// created on the first Set.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the file backing the store.
func (f *FileKV) Path() string {
	return f.path
}

// Get reads the value under key.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, false, ErrClosed
	}

	entries, err := f.read()
	if err != nil {
		return nil, false, err
	}

	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set writes value under key and preserves all other keys.
// value must be valid JSON because it is embedded verbatim.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for key %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	entries, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		// Keep the unreadable file for inspection and start over.
		backup := f.path + ".corrupt"
		if rerr := os.Rename(f.path, backup); rerr != nil {
			return fmt.Errorf("failed to move corrupt store aside: %w", rerr)
		}
		logging.Warn("moved corrupt store file aside", "path", f.path, "backup", backup, "error", err)
		entries, err = make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return err
	}
	entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	return writeFileAtomic(f.path, data)
}

// Close marks the store closed.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// read loads the key map. A missing or empty file is an empty map. A file
// that is not a JSON object is reported as ErrCorrupt.
func (f *FileKV) read() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	// A file holding a bare null decodes to a nil map.
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}
	return entries, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
