package schema

import "time"

// TabID identifies a workspace tab.
type TabID string

// Tab is the identity and chrome metadata of one workspace slot.
type Tab struct {
	ID       TabID   `json:"id"`
	Title    string  `json:"title"`
	Icon     *string `json:"icon"`
	IsPinned bool    `json:"isPinned"`
	// LastActive is a Unix timestamp in milliseconds.
	LastActive int64  `json:"lastActive"`
	SavedPath  string `json:"savedPath"`
	// TitleOverridden marks titles supplied by the user rather than derived
	// from SavedPath.
	TitleOverridden bool `json:"titleOverridden,omitempty"`
}

// LastActiveTime returns LastActive as a time value.
func (t Tab) LastActiveTime() time.Time {
	return time.UnixMilli(t.LastActive)
}

// Clone returns a deep copy of the tab.
func (t Tab) Clone() Tab {
	out := t
	if t.Icon != nil {
		icon := *t.Icon
		out.Icon = &icon
	}
	return out
}

// ViewMode selects how a tab's explorer lays out its items.
type ViewMode string

const (
	// ViewGrid renders items as a grid of cells.
	ViewGrid ViewMode = "grid"
	// ViewList renders items as rows.
	ViewList ViewMode = "list"
	// ViewColumn renders a breadcrumb of nested columns.
	ViewColumn ViewMode = "column"
	// ViewMedia renders a media gallery.
	ViewMedia ViewMode = "media"
	// ViewSize renders a pan/zoom size map.
	ViewSize ViewMode = "size"
)

// SortBy selects the explorer sort key.
type SortBy string

const (
	SortName     SortBy = "name"
	SortSize     SortBy = "size"
	SortModified SortBy = "modified"
	SortCreated  SortBy = "created"
	SortKind     SortBy = "kind"
)

// ScrollPosition is a scroll offset in pixels.
type ScrollPosition struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Transform is a 2D pan/zoom transform: scale K, translation X/Y.
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IdentityTransform returns the transform with unit scale and no translation.
func IdentityTransform() Transform {
	return Transform{K: 1}
}

// ExplorerViewState captures how one tab's content is displayed.
type ExplorerViewState struct {
	ViewMode          ViewMode       `json:"viewMode"`
	SortBy            SortBy         `json:"sortBy"`
	GridSize          int            `json:"gridSize"`
	GapSize           int            `json:"gapSize"`
	FoldersFirst      bool           `json:"foldersFirst"`
	ColumnStack       []string       `json:"columnStack"`
	ScrollPosition    ScrollPosition `json:"scrollPosition"`
	SizeViewTransform Transform      `json:"sizeViewTransform"`
}

// ExplorerPatch is a partial update of an ExplorerViewState. Nil fields are
// left unchanged.
type ExplorerPatch struct {
	ViewMode          *ViewMode
	SortBy            *SortBy
	GridSize          *int
	GapSize           *int
	FoldersFirst      *bool
	ColumnStack       *[]string
	ScrollPosition    *ScrollPosition
	SizeViewTransform *Transform
}

// Snapshot is the durable representation of a workspace.
type Snapshot struct {
	Tabs              []Tab                       `json:"tabs"`
	ActiveTabID       TabID                       `json:"activeTabId"`
	ExplorerStates    map[TabID]ExplorerViewState `json:"explorerStates"`
	DefaultNewTabPath string                      `json:"defaultNewTabPath"`
}
