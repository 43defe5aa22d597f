package schema

const (
	// DefaultGridSize is the default grid cell size in pixels.
	DefaultGridSize = 120
	// DefaultGapSize is the default gap between grid cells in pixels.
	DefaultGapSize = 16
	// DefaultNewTabPath is the route new tabs open when nothing else is configured.
	DefaultNewTabPath = "/"
)

// DefaultExplorerState returns a fresh default view state.
func DefaultExplorerState() ExplorerViewState {
	return ExplorerViewState{
		ViewMode:          ViewGrid,
		SortBy:            SortName,
		GridSize:          DefaultGridSize,
		GapSize:           DefaultGapSize,
		FoldersFirst:      true,
		ColumnStack:       []string{},
		ScrollPosition:    ScrollPosition{},
		SizeViewTransform: IdentityTransform(),
	}
}

// Clone returns a deep copy of the state. The column stack is never nil.
func (s ExplorerViewState) Clone() ExplorerViewState {
	out := s
	out.ColumnStack = append(make([]string, 0, len(s.ColumnStack)), s.ColumnStack...)
	return out
}

// Apply merges the non-nil patch fields onto a copy of s.
func (s ExplorerViewState) Apply(patch ExplorerPatch) ExplorerViewState {
	out := s.Clone()
	if patch.ViewMode != nil {
		out.ViewMode = *patch.ViewMode
	}
	if patch.SortBy != nil {
		out.SortBy = *patch.SortBy
	}
	if patch.GridSize != nil {
		out.GridSize = *patch.GridSize
	}
	if patch.GapSize != nil {
		out.GapSize = *patch.GapSize
	}
	if patch.FoldersFirst != nil {
		out.FoldersFirst = *patch.FoldersFirst
	}
	if patch.ColumnStack != nil {
		out.ColumnStack = append(make([]string, 0, len(*patch.ColumnStack)), (*patch.ColumnStack)...)
	}
	if patch.ScrollPosition != nil {
		out.ScrollPosition = *patch.ScrollPosition
	}
	if patch.SizeViewTransform != nil {
		out.SizeViewTransform = *patch.SizeViewTransform
	}
	return out
}

// Empty reports whether the patch carries no fields.
func (p ExplorerPatch) Empty() bool {
	return p.ViewMode == nil && p.SortBy == nil && p.GridSize == nil && p.GapSize == nil &&
		p.FoldersFirst == nil && p.ColumnStack == nil && p.ScrollPosition == nil && p.SizeViewTransform == nil
}
