// Package storage provides durable backends for the leaderboard: a versioned
// document file (JSON or YAML) and a SQLite database.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// schemaVersion is the on-disk record schema understood by this package.
const schemaVersion = 1

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Store is a leaderboard.Store that holds resources until closed.
type Store interface {
	leaderboard.Store
	io.Closer
}

// Open returns the store for backend at path. An empty backend means file.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
