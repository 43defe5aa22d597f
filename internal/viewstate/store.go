package viewstate

import (
	"context"
	"sync"

	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

// AllTabs is delivered to listeners when every tab's state may have changed.
const AllTabs schema.TabID = "*"

// Listener receives the id of the tab whose state changed, or AllTabs.
type Listener func(tabID schema.TabID)

// Store holds per-tab explorer view state outside of the tab list. Every
// listener sees every notification; binding to one tab is the listener's job.
type Store struct {
	mu        sync.Mutex
	states    map[schema.TabID]schema.ExplorerViewState
	listeners map[uint64]Listener
	nextID    uint64
	log       pslog.Logger
}

// New constructs an empty Store.
func New(logger pslog.Logger) *Store {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Store{
		states:    make(map[schema.TabID]schema.ExplorerViewState),
		listeners: make(map[uint64]Listener),
		log:       logger,
	}
}

// Get returns a copy of the tab's state, or the default state if none is set.
func (s *Store) Get(tabID schema.TabID) schema.ExplorerViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[tabID]; ok {
		return state.Clone()
	}
	return schema.DefaultExplorerState()
}

// Has reports whether the tab has an explicit entry.
func (s *Store) Has(tabID schema.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.states[tabID]
	return ok
}

// Set replaces the tab's state.
func (s *Store) Set(tabID schema.TabID, state schema.ExplorerViewState) {
	s.mu.Lock()
	s.states[tabID] = state.Clone()
	s.mu.Unlock()
	s.notify(tabID)
}

// Update merges patch onto the tab's current or default state.
func (s *Store) Update(tabID schema.TabID, patch schema.ExplorerPatch) schema.ExplorerViewState {
	s.mu.Lock()
	current, ok := s.states[tabID]
	if !ok {
		current = schema.DefaultExplorerState()
	}
	next := current.Apply(patch)
	s.states[tabID] = next
	s.mu.Unlock()
	s.notify(tabID)
	return next.Clone()
}

// Delete removes the tab's state.
func (s *Store) Delete(tabID schema.TabID) {
	s.mu.Lock()
	delete(s.states, tabID)
	s.mu.Unlock()
	s.notify(tabID)
}

// SnapshotAll returns a copy of the full table.
func (s *Store) SnapshotAll() map[schema.TabID]schema.ExplorerViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[schema.TabID]schema.ExplorerViewState, len(s.states))
	for id, state := range s.states {
		out[id] = state.Clone()
	}
	return out
}

// LoadAll replaces the full table and notifies listeners with AllTabs.
func (s *Store) LoadAll(table map[schema.TabID]schema.ExplorerViewState) {
	next := make(map[schema.TabID]schema.ExplorerViewState, len(table))
	for id, state := range table {
		next[id] = state.Clone()
	}
	s.mu.Lock()
	s.states = next
	s.mu.Unlock()
	s.log.Trace("viewstate table loaded", "tabs", len(next))
	s.notify(AllTabs)
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	count := len(s.listeners)
	s.mu.Unlock()
	s.log.Debug("viewstate subscribe", "subs", count)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
			s.log.Debug("viewstate unsubscribe")
		})
	}
}

// Watch binds fn to a single tab. fn is called immediately with the current
// state and again whenever a notification names tabID or AllTabs.
func (s *Store) Watch(tabID schema.TabID, fn func(schema.ExplorerViewState)) func() {
	if fn == nil {
		return func() {}
	}
	cancel := s.Subscribe(func(changed schema.TabID) {
		if changed != tabID && changed != AllTabs {
			return
		}
		fn(s.Get(tabID))
	})
	fn(s.Get(tabID))
	return cancel
}

func (s *Store) notify(tabID schema.TabID) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()
	for _, listener := range listeners {
		listener(tabID)
	}
}
