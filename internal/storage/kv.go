// Package storage persists the task list in a key-value byte store.
//
// A KV holds opaque values under string keys, like a browser's
// localStorage. Three backends are provided: a single JSON file, a SQLite
// database and an in-process map. Persister layers the task encoding on
// top and always uses the same fixed key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/thruflo/tasklist/internal/config"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrCorrupt is returned when the backing file cannot be decoded at all.
var ErrCorrupt = errors.New("corrupt store")

// ErrClosed is returned by operations on a closed KV.
var ErrClosed = errors.New("storage closed")

// KV is a persistent key-value byte store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates the KV for the given backend. path is ignored by the
// memory backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case config.BackendFile:
		return NewFileKV(path), nil
	case config.BackendSQLite:
		return OpenSQLiteKV(path)
	case config.BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
