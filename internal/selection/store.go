package selection

import (
	"sync"

	"github.com/NexusOnePlus/spacedrive/schema"
)

// Store holds the ordered set of selected item ids for each tab. It is never
// persisted.
type Store struct {
	mu    sync.Mutex
	items map[schema.TabID][]string
}

// New constructs an empty Store.
func New() *Store {
	return &Store{items: make(map[schema.TabID][]string)}
}

// Get returns a copy of the tab's selection, empty when unset.
func (s *Store) Get(tabID schema.TabID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.items[tabID]...)
}

// Set replaces the tab's selection. Duplicate ids keep their first position.
func (s *Store) Set(tabID schema.TabID, ids []string) {
	next := dedupe(ids)
	s.mu.Lock()
	s.items[tabID] = next
	s.mu.Unlock()
}

// Toggle adds id to the end of the selection, or removes it if present.
// It reports whether id is selected afterwards.
func (s *Store) Toggle(tabID schema.TabID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.items[tabID]
	for i, existing := range current {
		if existing == id {
			next := append(append([]string{}, current[:i]...), current[i+1:]...)
			s.items[tabID] = next
			return false
		}
	}
	s.items[tabID] = append(append([]string{}, current...), id)
	return true
}

// Clear empties the tab's selection but keeps its entry.
func (s *Store) Clear(tabID schema.TabID) {
	s.mu.Lock()
	s.items[tabID] = []string{}
	s.mu.Unlock()
}

// Delete drops the tab's entry.
func (s *Store) Delete(tabID schema.TabID) {
	s.mu.Lock()
	delete(s.items, tabID)
	s.mu.Unlock()
}

// Has reports whether the tab has an entry.
func (s *Store) Has(tabID schema.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[tabID]
	return ok
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
