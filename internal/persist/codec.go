package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NexusOnePlus/spacedrive/schema"
)

// DefaultKey is the storage slot that holds the workspace snapshot.
const DefaultKey = "spacedrive-tabs"

type rawSnapshot struct {
	Tabs              json.RawMessage `json:"tabs"`
	ActiveTabID       json.RawMessage `json:"activeTabId"`
	ExplorerStates    json.RawMessage `json:"explorerStates"`
	DefaultNewTabPath json.RawMessage `json:"defaultNewTabPath"`
}

// Encode serializes a snapshot for storage.
func Encode(snapshot schema.Snapshot) (string, error) {
	if snapshot.Tabs == nil {
		snapshot.Tabs = []schema.Tab{}
	}
	if snapshot.ExplorerStates == nil {
		snapshot.ExplorerStates = map[schema.TabID]schema.ExplorerViewState{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// Decode parses and validates a stored snapshot. tabs must be an array,
// activeTabId a string and explorerStates an object; anything else is
// schema.ErrInvalidSnapshot.
func Decode(data string) (schema.Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return schema.Snapshot{}, fmt.Errorf("%w: %v", schema.ErrInvalidSnapshot, err)
	}
	if jsonKind(raw.Tabs) != '[' {
		return schema.Snapshot{}, fmt.Errorf("%w: tabs must be an array", schema.ErrInvalidSnapshot)
	}
	if jsonKind(raw.ActiveTabID) != '"' {
		return schema.Snapshot{}, fmt.Errorf("%w: activeTabId must be a string", schema.ErrInvalidSnapshot)
	}
	if jsonKind(raw.ExplorerStates) != '{' {
		return schema.Snapshot{}, fmt.Errorf("%w: explorerStates must be an object", schema.ErrInvalidSnapshot)
	}

	var snapshot schema.Snapshot
	if err := json.Unmarshal(raw.Tabs, &snapshot.Tabs); err != nil {
		return schema.Snapshot{}, fmt.Errorf("%w: tabs: %v", schema.ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw.ActiveTabID, &snapshot.ActiveTabID); err != nil {
		return schema.Snapshot{}, fmt.Errorf("%w: activeTabId: %v", schema.ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw.ExplorerStates, &snapshot.ExplorerStates); err != nil {
		return schema.Snapshot{}, fmt.Errorf("%w: explorerStates: %v", schema.ErrInvalidSnapshot, err)
	}
	if jsonKind(raw.DefaultNewTabPath) == '"' {
		var path string
		if err := json.Unmarshal(raw.DefaultNewTabPath, &path); err == nil && strings.TrimSpace(path) != "" {
			snapshot.DefaultNewTabPath = path
		}
	}
	return sanitize(snapshot), nil
}

// sanitize drops tabs without ids or with duplicate ids and repairs explorer
// states whose fields are out of range.
func sanitize(snapshot schema.Snapshot) schema.Snapshot {
	tabs := make([]schema.Tab, 0, len(snapshot.Tabs))
	seen := make(map[schema.TabID]struct{}, len(snapshot.Tabs))
	for _, tab := range snapshot.Tabs {
		if strings.TrimSpace(string(tab.ID)) == "" {
			continue
		}
		if _, ok := seen[tab.ID]; ok {
			continue
		}
		seen[tab.ID] = struct{}{}
		tabs = append(tabs, tab)
	}
	snapshot.Tabs = tabs
	states := make(map[schema.TabID]schema.ExplorerViewState, len(snapshot.ExplorerStates))
	for id, state := range snapshot.ExplorerStates {
		states[id] = schema.NormalizeExplorerState(state)
	}
	snapshot.ExplorerStates = states
	return snapshot
}

func jsonKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
