package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"pkt.systems/pslog"
)

// FileStorage persists each slot as a file under a state directory.
type FileStorage struct {
	dir string
	log pslog.Logger
}

// NewFileStorage constructs a file-backed storage at dir.
func NewFileStorage(dir string) (*FileStorage, error) {
	return NewFileStorageWithLogger(dir, nil)
}

// NewFileStorageWithLogger constructs a file-backed storage with logging.
func NewFileStorageWithLogger(dir string, logger pslog.Logger) (*FileStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &FileStorage{dir: dir, log: logger}, nil
}

// GetItem reads the slot for key.
func (s *FileStorage) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(s.pathForKey(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("storage load miss", "key", key)
			}
			return "", false, nil
		}
		if s.log != nil {
			s.log.Warn("storage load failed", "key", key, "err", err)
		}
		return "", false, err
	}
	if s.log != nil {
		s.log.Debug("storage load ok", "key", key, "bytes", len(data))
	}
	return string(data), true, nil
}

// SetItem writes the slot for key using a temp file and rename.
func (s *FileStorage) SetItem(key, value string) error {
	if err := s.writeAtomic(s.pathForKey(key), []byte(value)); err != nil {
		if s.log != nil {
			s.log.Warn("storage save failed", "key", key, "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Trace("storage save ok", "key", key, "bytes", len(value))
	}
	return nil
}

// RemoveItem deletes the slot for key. Missing slots are not an error.
func (s *FileStorage) RemoveItem(key string) error {
	err := os.Remove(s.pathForKey(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStorage) writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "slot-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FileStorage) pathForKey(key string) string {
	name := sanitizeKey(key)
	if name == "" {
		name = "default"
	}
	return filepath.Join(s.dir, name+".json")
}

func sanitizeKey(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}
