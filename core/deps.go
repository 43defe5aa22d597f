package core

import (
	"time"

	"github.com/NexusOnePlus/spacedrive/internal/persist"
	"github.com/NexusOnePlus/spacedrive/internal/selection"
	"github.com/NexusOnePlus/spacedrive/internal/viewstate"
	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

// ManagerConfig controls tab manager behavior.
type ManagerConfig struct {
	// StorageKey names the storage slot of the snapshot; defaults to persist.DefaultKey.
	StorageKey string
	// DefaultNewTabPath is used when no snapshot provides one; defaults to "/".
	DefaultNewTabPath string
	// PersistDebounce coalesces snapshot writes; zero writes after every mutating call.
	PersistDebounce time.Duration
}

// ManagerDeps captures optional dependencies for the tab manager.
type ManagerDeps struct {
	Storage   persist.Storage
	Explorer  *viewstate.Store
	Selection *selection.Store
	EventSink EventSink
	Logger    pslog.Logger
	Now       func() time.Time
	NewID     func() schema.TabID
}
