package persist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Backend names a storage implementation.
type Backend string

const (
	// BackendFile stores slots as JSON files.
	BackendFile Backend = "file"
	// BackendSQLite stores slots in a SQLite database.
	BackendSQLite Backend = "sqlite"
	// BackendMemory keeps slots in memory only.
	BackendMemory Backend = "memory"
)

// Open constructs the storage for backend. path is a directory for the file
// backend and a database file for sqlite; an empty sqlite path resolves to
// stateDir/tabs.db. The returned closer is never nil.
func Open(backend Backend, stateDir, path string, logger pslog.Logger) (Storage, io.Closer, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(string(backend)))) {
	case BackendFile, "":
		dir := path
		if strings.TrimSpace(dir) == "" {
			dir = stateDir
		}
		store, err := NewFileStorageWithLogger(dir, logger)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, nopCloser{}, nil
	case BackendSQLite:
		dsn := path
		if strings.TrimSpace(dsn) == "" {
			if strings.TrimSpace(stateDir) == "" {
				return nil, nopCloser{}, fmt.Errorf("sqlite storage requires a path or state_dir")
			}
			dsn = filepath.Join(stateDir, "tabs.db")
		}
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
				return nil, nopCloser{}, err
			}
		}
		store, err := NewSQLiteStorage(dsn)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, store, nil
	case BackendMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("unsupported storage backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
