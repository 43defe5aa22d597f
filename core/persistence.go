package core

import (
	"time"

	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/NexusOnePlus/spacedrive/schema"
)

// Snapshot assembles the durable workspace representation from the tab list
// and the current explorer store contents.
func (m *Manager) Snapshot() schema.Snapshot {
	m.mu.Lock()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	snapshot.ExplorerStates = m.explorer.SnapshotAll()
	return snapshot
}

func (m *Manager) snapshotLocked() schema.Snapshot {
	tabs := make([]schema.Tab, 0, len(m.tabs))
	for _, tab := range m.tabs {
		tabs = append(tabs, tab.Clone())
	}
	return schema.Snapshot{
		Tabs:              tabs,
		ActiveTabID:       m.active,
		DefaultNewTabPath: m.defaultPath,
	}
}

// schedule arranges for pending changes to be written. Without a debounce the
// write happens now; otherwise the first change of a burst arms a timer and
// later changes ride along.
func (m *Manager) schedule() {
	if m.storage == nil {
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.cfg.PersistDebounce <= 0 {
		m.mu.Unlock()
		m.Flush()
		return
	}
	defer m.mu.Unlock()
	if m.timer != nil || !m.dirty {
		return
	}
	m.timer = time.AfterFunc(m.cfg.PersistDebounce, m.Flush)
}

// Flush writes the snapshot if tab list, active tab or default path changed
// since the last write.
func (m *Manager) Flush() {
	m.write(false)
}

// SaveNow writes the snapshot unconditionally, picking up explorer state
// changes that do not schedule writes on their own.
func (m *Manager) SaveNow() {
	m.write(true)
}

// Close flushes pending changes and stops the debounce timer. Later changes
// stay in memory until Flush or SaveNow.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()
	m.Flush()
	return nil
}

// write never reports failures: the in-memory state stays authoritative and
// the next change writes again.
func (m *Manager) write(force bool) {
	if m.storage == nil {
		return
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if !m.dirty && !force {
		m.mu.Unlock()
		return
	}
	m.dirty = false
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	snapshot.ExplorerStates = m.explorer.SnapshotAll()

	data, err := persist.Encode(snapshot)
	if err != nil {
		m.logger.Warn("tabs persist failed", "err", err)
		return
	}
	if err := m.storage.SetItem(m.cfg.StorageKey, data); err != nil {
		m.logger.Warn("tabs persist failed", "err", err)
		return
	}
	m.logger.Trace("tabs state persisted", "tabs", len(snapshot.Tabs), "active", snapshot.ActiveTabID)
}
