package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/NexusOnePlus/spacedrive/internal/logx"
	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/NexusOnePlus/spacedrive/internal/selection"
	"github.com/NexusOnePlus/spacedrive/internal/title"
	"github.com/NexusOnePlus/spacedrive/internal/viewstate"
	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

// Manager owns the tab list and the active tab pointer, and wires the
// explorer and selection stores to individual tabs. The tab list always
// holds at least one tab.
type Manager struct {
	cfg       ManagerConfig
	storage   persist.Storage
	explorer  *viewstate.Store
	selection *selection.Store
	sink      EventSink
	logger    pslog.Logger
	now       func() time.Time
	newID     func() schema.TabID

	mu          sync.Mutex
	tabs        []schema.Tab
	active      schema.TabID
	defaultPath string
	dirty       bool
	timer       *time.Timer
	closed      bool

	writeMu sync.Mutex
}

// CreateTabRequest describes a new tab. Empty fields fall back to the
// derived title and the default new tab path.
type CreateTabRequest struct {
	Title string
	Path  string
}

// NewManager constructs a manager and restores the persisted workspace, or
// starts a fresh single-tab workspace when none can be loaded.
func NewManager(cfg ManagerConfig, deps ManagerDeps) *Manager {
	if strings.TrimSpace(cfg.StorageKey) == "" {
		cfg.StorageKey = persist.DefaultKey
	}
	if strings.TrimSpace(cfg.DefaultNewTabPath) == "" {
		cfg.DefaultNewTabPath = schema.DefaultNewTabPath
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if deps.Explorer == nil {
		deps.Explorer = viewstate.New(logger)
	}
	if deps.Selection == nil {
		deps.Selection = selection.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = newID
	}
	m := &Manager{
		cfg:         cfg,
		storage:     deps.Storage,
		explorer:    deps.Explorer,
		selection:   deps.Selection,
		sink:        deps.EventSink,
		logger:      logger.With("storage_key", cfg.StorageKey),
		now:         deps.Now,
		newID:       deps.NewID,
		defaultPath: cfg.DefaultNewTabPath,
	}
	m.bootstrap()
	return m
}

// Explorer returns the explorer view state store.
func (m *Manager) Explorer() *viewstate.Store {
	return m.explorer
}

func (m *Manager) bootstrap() {
	if snapshot, ok := m.loadSnapshot(); ok {
		m.restore(snapshot)
	} else {
		m.fresh()
	}
	m.mu.Lock()
	m.dirty = true
	event := schema.TabEvent{Type: schema.TabEventRestored, ActiveTab: m.active}
	if tab, ok := m.findLocked(m.active); ok {
		event.Tab = tab.Clone()
	}
	m.mu.Unlock()
	m.emit(event)
	m.schedule()
}

func (m *Manager) loadSnapshot() (schema.Snapshot, bool) {
	if m.storage == nil {
		return schema.Snapshot{}, false
	}
	data, ok, err := m.storage.GetItem(m.cfg.StorageKey)
	if err != nil {
		m.logger.Warn("tabs state load failed", "err", err)
		return schema.Snapshot{}, false
	}
	if !ok {
		m.logger.Debug("tabs state missing")
		return schema.Snapshot{}, false
	}
	snapshot, err := persist.Decode(data)
	if err != nil {
		m.logger.Warn("tabs state discarded", "err", err)
		return schema.Snapshot{}, false
	}
	if len(snapshot.Tabs) == 0 {
		m.logger.Warn("tabs state discarded", "reason", "no tabs")
		return schema.Snapshot{}, false
	}
	return snapshot, true
}

func (m *Manager) restore(snapshot schema.Snapshot) {
	m.mu.Lock()
	m.tabs = make([]schema.Tab, 0, len(snapshot.Tabs))
	for _, tab := range snapshot.Tabs {
		m.tabs = append(m.tabs, tab.Clone())
	}
	m.active = m.tabs[0].ID
	if _, ok := m.findLocked(snapshot.ActiveTabID); ok {
		m.active = snapshot.ActiveTabID
	}
	if snapshot.DefaultNewTabPath != "" {
		m.defaultPath = snapshot.DefaultNewTabPath
	}
	ids := m.idsLocked()
	active := m.active
	m.mu.Unlock()

	states := make(map[schema.TabID]schema.ExplorerViewState, len(ids))
	for _, id := range ids {
		if state, ok := snapshot.ExplorerStates[id]; ok {
			states[id] = state
		}
	}
	if dropped := len(snapshot.ExplorerStates) - len(states); dropped > 0 {
		m.logger.Debug("tabs orphan explorer states dropped", "count", dropped)
	}
	m.explorer.LoadAll(states)
	for _, id := range ids {
		m.selection.Set(id, nil)
	}
	m.logger.Info("tabs state restored", "tabs", len(ids), "active", active)
}

func (m *Manager) fresh() {
	m.mu.Lock()
	tab := m.newTabLocked("", m.defaultPath)
	m.tabs = []schema.Tab{tab}
	m.active = tab.ID
	m.mu.Unlock()

	m.explorer.LoadAll(nil)
	m.explorer.Set(tab.ID, schema.DefaultExplorerState())
	m.selection.Set(tab.ID, nil)
	logx.WithTabFields(m.logger, tab).Info("tabs state initialized")
}

func (m *Manager) newTabLocked(tabTitle, path string) schema.Tab {
	tab := schema.Tab{
		ID:         m.newID(),
		Title:      tabTitle,
		LastActive: m.now().UnixMilli(),
		SavedPath:  path,
	}
	if strings.TrimSpace(tabTitle) == "" {
		tab.Title = title.FromPath(path)
	} else {
		tab.TitleOverridden = true
	}
	return tab
}

// CreateTab appends a new tab and makes it active.
func (m *Manager) CreateTab(ctx context.Context, req CreateTabRequest) schema.Tab {
	m.mu.Lock()
	path := req.Path
	if strings.TrimSpace(path) == "" {
		path = m.defaultPath
	}
	tab := m.newTabLocked(req.Title, path)
	m.tabs = append(m.tabs, tab)
	m.active = tab.ID
	m.dirty = true
	m.mu.Unlock()

	m.selection.Set(tab.ID, nil)
	m.explorer.Set(tab.ID, schema.DefaultExplorerState())
	m.emit(schema.TabEvent{Type: schema.TabEventCreated, Tab: tab.Clone(), ActiveTab: tab.ID})
	m.schedule()
	logx.WithTabFields(logx.Ctx(ctx), tab).Info("tabs tab created", "title", tab.Title)
	return tab.Clone()
}

// CloseTab removes a tab. Closing the last tab or an unknown tab does nothing.
// When the active tab closes, the tab before it becomes active, or the first
// tab when it was first.
func (m *Manager) CloseTab(ctx context.Context, id schema.TabID) bool {
	log := logx.WithTab(ctx, id)
	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 || len(m.tabs) <= 1 {
		m.mu.Unlock()
		log.Debug("tabs tab close ignored", "known", idx >= 0, "tabs", len(m.tabs))
		return false
	}
	closed := m.tabs[idx]
	prev := m.tabs
	m.tabs = make([]schema.Tab, 0, len(prev)-1)
	m.tabs = append(m.tabs, prev[:idx]...)
	m.tabs = append(m.tabs, prev[idx+1:]...)
	if m.active == id {
		if idx > 0 {
			m.active = prev[idx-1].ID
		} else {
			m.active = m.tabs[0].ID
		}
	}
	active := m.active
	m.dirty = true
	m.mu.Unlock()

	m.explorer.Delete(id)
	m.selection.Delete(id)
	m.emit(schema.TabEvent{Type: schema.TabEventClosed, Tab: closed.Clone(), ActiveTab: active})
	m.schedule()
	log.Info("tabs tab closed", "active", active)
	return true
}

// SwitchTab makes id the active tab and stamps its LastActive time.
func (m *Manager) SwitchTab(ctx context.Context, id schema.TabID) bool {
	m.mu.Lock()
	tab, ok := m.switchLocked(id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	m.emit(schema.TabEvent{Type: schema.TabEventActivated, Tab: tab, ActiveTab: id})
	m.schedule()
	logx.WithTab(ctx, id).Debug("tabs tab activated")
	return true
}

func (m *Manager) switchLocked(id schema.TabID) (schema.Tab, bool) {
	if id == m.active {
		return schema.Tab{}, false
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		return schema.Tab{}, false
	}
	m.tabs[idx].LastActive = m.now().UnixMilli()
	m.active = id
	m.dirty = true
	return m.tabs[idx].Clone(), true
}

// UpdateTabTitle sets an explicit title. An empty title reverts to the title
// derived from the tab's path.
func (m *Manager) UpdateTabTitle(ctx context.Context, id schema.TabID, tabTitle string) bool {
	return m.updateTab(ctx, id, func(tab *schema.Tab) bool {
		next := *tab
		if strings.TrimSpace(tabTitle) == "" {
			next.Title = title.FromPath(tab.SavedPath)
			next.TitleOverridden = false
		} else {
			next.Title = tabTitle
			next.TitleOverridden = true
		}
		if next.Title == tab.Title && next.TitleOverridden == tab.TitleOverridden {
			return false
		}
		*tab = next
		return true
	})
}

// UpdateTabPath records the tab's navigation target. Derived titles follow
// the new path.
func (m *Manager) UpdateTabPath(ctx context.Context, id schema.TabID, path string) bool {
	return m.updateTab(ctx, id, func(tab *schema.Tab) bool {
		if tab.SavedPath == path {
			return false
		}
		tab.SavedPath = path
		if !tab.TitleOverridden {
			tab.Title = title.FromPath(path)
		}
		return true
	})
}

func (m *Manager) updateTab(ctx context.Context, id schema.TabID, mutate func(tab *schema.Tab) bool) bool {
	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 || !mutate(&m.tabs[idx]) {
		m.mu.Unlock()
		return false
	}
	tab := m.tabs[idx].Clone()
	active := m.active
	m.dirty = true
	m.mu.Unlock()

	m.emit(schema.TabEvent{Type: schema.TabEventUpdated, Tab: tab, ActiveTab: active})
	m.schedule()
	logx.WithTabFields(logx.Ctx(ctx), tab).Debug("tabs tab updated", "title", tab.Title)
	return true
}

// ReorderTabs moves movedID to the index targetID held before the move.
func (m *Manager) ReorderTabs(ctx context.Context, movedID, targetID schema.TabID) bool {
	if movedID == targetID {
		return false
	}
	m.mu.Lock()
	from := m.indexLocked(movedID)
	to := m.indexLocked(targetID)
	if from < 0 || to < 0 {
		m.mu.Unlock()
		return false
	}
	m.tabs = moveTab(m.tabs, from, to)
	tab := m.tabs[to].Clone()
	active := m.active
	m.dirty = true
	m.mu.Unlock()

	m.emit(schema.TabEvent{Type: schema.TabEventReordered, Tab: tab, ActiveTab: active})
	m.schedule()
	logx.WithTab(ctx, movedID).Debug("tabs tab moved", "from", from, "to", to)
	return true
}

// NextTab activates the tab after the active one, wrapping around.
func (m *Manager) NextTab(ctx context.Context) bool {
	return m.step(ctx, 1)
}

// PreviousTab activates the tab before the active one, wrapping around.
func (m *Manager) PreviousTab(ctx context.Context) bool {
	return m.step(ctx, -1)
}

func (m *Manager) step(ctx context.Context, delta int) bool {
	m.mu.Lock()
	n := len(m.tabs)
	idx := m.indexLocked(m.active)
	if n <= 1 || idx < 0 {
		m.mu.Unlock()
		return false
	}
	target := m.tabs[((idx+delta)%n+n)%n].ID
	m.mu.Unlock()
	return m.SwitchTab(ctx, target)
}

// SelectTabAtIndex activates the tab at position i when i is in range.
func (m *Manager) SelectTabAtIndex(ctx context.Context, i int) bool {
	m.mu.Lock()
	if i < 0 || i >= len(m.tabs) {
		m.mu.Unlock()
		return false
	}
	target := m.tabs[i].ID
	m.mu.Unlock()
	return m.SwitchTab(ctx, target)
}

// SetDefaultNewTabPath changes the path used by CreateTab without an explicit path.
func (m *Manager) SetDefaultNewTabPath(ctx context.Context, path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	m.mu.Lock()
	if m.defaultPath == path {
		m.mu.Unlock()
		return false
	}
	m.defaultPath = path
	m.dirty = true
	m.mu.Unlock()
	m.schedule()
	logx.Ctx(ctx).Debug("tabs default path updated", "path", path)
	return true
}

// Tabs returns a copy of the tab list in order.
func (m *Manager) Tabs() []schema.Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]schema.Tab, 0, len(m.tabs))
	for _, tab := range m.tabs {
		out = append(out, tab.Clone())
	}
	return out
}

// Tab returns the tab with the given id.
func (m *Manager) Tab(id schema.TabID) (schema.Tab, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, ok := m.findLocked(id)
	if !ok {
		return schema.Tab{}, false
	}
	return tab.Clone(), true
}

// ActiveTabID returns the id of the active tab.
func (m *Manager) ActiveTabID() schema.TabID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ActiveTab returns the active tab.
func (m *Manager) ActiveTab() schema.Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, _ := m.findLocked(m.active)
	return tab.Clone()
}

// DefaultNewTabPath returns the path used for new tabs.
func (m *Manager) DefaultNewTabPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultPath
}

// ExplorerState returns the tab's view state, or the default.
func (m *Manager) ExplorerState(id schema.TabID) schema.ExplorerViewState {
	return m.explorer.Get(id)
}

// UpdateExplorerState merges patch into the view state of a known tab. A merge
// that fails schema.ValidateExplorerState is rejected and the current state
// is returned with false.
func (m *Manager) UpdateExplorerState(id schema.TabID, patch schema.ExplorerPatch) (schema.ExplorerViewState, bool) {
	if !m.hasTab(id) {
		return schema.ExplorerViewState{}, false
	}
	current := m.explorer.Get(id)
	next := current.Apply(patch)
	if err := schema.ValidateExplorerState(next); err != nil {
		m.logger.Debug("tabs explorer state rejected", "tab", id, "err", err)
		return current, false
	}
	m.explorer.Set(id, next)
	return next, true
}

// SetExplorerState replaces the view state of a known tab when it is valid.
func (m *Manager) SetExplorerState(id schema.TabID, state schema.ExplorerViewState) bool {
	if !m.hasTab(id) {
		return false
	}
	if err := schema.ValidateExplorerState(state); err != nil {
		m.logger.Debug("tabs explorer state rejected", "tab", id, "err", err)
		return false
	}
	m.explorer.Set(id, state)
	return true
}

// WatchExplorerState calls fn with the tab's current view state and again on
// every change to it. The returned function stops the watch.
func (m *Manager) WatchExplorerState(id schema.TabID, fn func(schema.ExplorerViewState)) func() {
	return m.explorer.Watch(id, fn)
}

// Selection returns the tab's selected item ids.
func (m *Manager) Selection(id schema.TabID) []string {
	return m.selection.Get(id)
}

// SetSelection replaces the selection of a known tab.
func (m *Manager) SetSelection(id schema.TabID, ids []string) bool {
	if !m.hasTab(id) {
		return false
	}
	m.selection.Set(id, ids)
	return true
}

// ToggleSelection flips one item in the selection of a known tab.
func (m *Manager) ToggleSelection(id schema.TabID, item string) bool {
	if !m.hasTab(id) {
		return false
	}
	m.selection.Toggle(id, item)
	return true
}

// ClearSelection empties the selection of a known tab.
func (m *Manager) ClearSelection(id schema.TabID) bool {
	if !m.hasTab(id) {
		return false
	}
	m.selection.Clear(id)
	return true
}

func (m *Manager) hasTab(id schema.TabID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexLocked(id) >= 0
}

func (m *Manager) indexLocked(id schema.TabID) int {
	for i, tab := range m.tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) findLocked(id schema.TabID) (schema.Tab, bool) {
	if idx := m.indexLocked(id); idx >= 0 {
		return m.tabs[idx], true
	}
	return schema.Tab{}, false
}

func (m *Manager) idsLocked() []schema.TabID {
	ids := make([]schema.TabID, 0, len(m.tabs))
	for _, tab := range m.tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

func (m *Manager) emit(event schema.TabEvent) {
	if m.sink == nil {
		return
	}
	m.sink.OnTabEvent(event)
}

func moveTab(tabs []schema.Tab, from, to int) []schema.Tab {
	out := make([]schema.Tab, 0, len(tabs))
	out = append(out, tabs[:from]...)
	out = append(out, tabs[from+1:]...)
	moved := tabs[from]
	out = append(out[:to], append([]schema.Tab{moved}, out[to:]...)...)
	return out
}
