package persist

import (
	"sync"
)

// Storage is a synchronous string-keyed slot store.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// MemoryStorage keeps slots in process memory.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
	// SetErr, when non-nil, is returned by SetItem without storing.
	SetErr error
	// GetErr, when non-nil, is returned by GetItem.
	GetErr error
	writes int
}

// NewMemoryStorage constructs an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem returns the stored value for key.
func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	value, ok := m.items[key]
	return value, ok, nil
}

// SetItem stores value under key.
func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.items[key] = value
	m.writes++
	return nil
}

// RemoveItem deletes key.
func (m *MemoryStorage) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Writes returns the number of successful SetItem calls.
func (m *MemoryStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
