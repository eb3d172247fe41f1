// Package kv is a tiny string key/value store, the local stand-in for a
// browser's localStorage. Values are opaque strings; callers own encoding.
package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

var ErrClosed = errors.New("kv: store closed")

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Store interface {
	// Get reports ok=false for an absent key; that is not an error.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the whole value stored under key.
	Set(key, value string) error
	Close() error
}

// Open returns the backend named by kind, rooted in dir.
func Open(kind, dir string, logger *slog.Logger) (Store, error) {
	switch kind {
	case BackendFile, "":
		return NewFile(filepath.Join(dir, "state.json"), logger), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "recall.db"))
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("kv: unknown backend %q", kind)
}
