package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NexusOnePlus/spacedrive/core"
	"github.com/NexusOnePlus/spacedrive/internal/appconfig"
	"github.com/NexusOnePlus/spacedrive/internal/eventbus"
	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

// workspace is one CLI invocation's view of the persisted tabs.
type workspace struct {
	manager *core.Manager
	closer  io.Closer
	cancel  func()
	done    chan struct{}
}

func openWorkspace(ctx context.Context, cfgPath string) (*workspace, error) {
	cfg, err := appconfig.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := pslog.Ctx(ctx)
	storage, closer, err := persist.Open(persist.Backend(cfg.Storage.Backend), cfg.StateDir, cfg.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrStorageUnavailable, err)
	}

	bus := eventbus.New(logger)
	events, cancel := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			logger.Debug("tabs event", "type", event.Type, "tab", event.Tab.ID, "active", event.ActiveTab)
		}
	}()

	manager := core.NewManager(core.ManagerConfig{
		StorageKey:        cfg.Storage.Key,
		DefaultNewTabPath: cfg.Tabs.DefaultNewTabPath,
		PersistDebounce:   time.Duration(cfg.Tabs.PersistDebounceMS) * time.Millisecond,
	}, core.ManagerDeps{
		Storage:   storage,
		EventSink: bus,
		Logger:    logger,
	})
	return &workspace{manager: manager, closer: closer, cancel: cancel, done: done}, nil
}

// Close writes the final snapshot, including explorer state changes.
func (w *workspace) Close() error {
	w.manager.SaveNow()
	err := w.manager.Close()
	w.cancel()
	<-w.done
	if closeErr := w.closer.Close(); err == nil {
		err = closeErr
	}
	return err
}

// resolveTab accepts a tab id or a 1-based position; empty means the active tab.
func resolveTab(m *core.Manager, ref string) (schema.Tab, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return m.ActiveTab(), nil
	}
	if tab, ok := m.Tab(schema.TabID(ref)); ok {
		return tab, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		tabs := m.Tabs()
		if n >= 1 && n <= len(tabs) {
			return tabs[n-1], nil
		}
	}
	return schema.Tab{}, fmt.Errorf("%w: %s", schema.ErrTabNotFound, ref)
}

func withWorkspace(ctx context.Context, cfgPath string, fn func(*workspace) error) (err error) {
	ws, err := openWorkspace(ctx, cfgPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, ws.Close())
	}()
	return fn(ws)
}
