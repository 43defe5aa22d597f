package schema

import (
	"fmt"
	"math"
	"strings"
)

// NormalizeViewMode validates and normalizes a view mode name.
func NormalizeViewMode(value string) (ViewMode, error) {
	switch mode := ViewMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ViewGrid, ViewList, ViewColumn, ViewMedia, ViewSize:
		return mode, nil
	default:
		return "", ErrInvalidViewMode
	}
}

// NormalizeSortBy validates and normalizes a sort key. The long forms
// "date-modified" and "date-created" are accepted as aliases.
func NormalizeSortBy(value string) (SortBy, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "date-modified", "date_modified":
		return SortModified, nil
	case "date-created", "date_created":
		return SortCreated, nil
	}
	switch sort := SortBy(trimmed); sort {
	case SortName, SortSize, SortModified, SortCreated, SortKind:
		return sort, nil
	default:
		return "", ErrInvalidSortBy
	}
}

// ValidateExplorerState reports whether state may be stored as is. Accepted
// states survive an encode/decode cycle unchanged.
func ValidateExplorerState(state ExplorerViewState) error {
	if mode, err := NormalizeViewMode(string(state.ViewMode)); err != nil || mode != state.ViewMode {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, state.ViewMode)
	}
	if sortBy, err := NormalizeSortBy(string(state.SortBy)); err != nil || sortBy != state.SortBy {
		return fmt.Errorf("%w: %q", ErrInvalidSortBy, state.SortBy)
	}
	if state.GridSize <= 0 {
		return fmt.Errorf("%w: gridSize %d must be positive", ErrInvalidExplorerState, state.GridSize)
	}
	if state.GapSize < 0 {
		return fmt.Errorf("%w: gapSize %d must not be negative", ErrInvalidExplorerState, state.GapSize)
	}
	t := state.SizeViewTransform
	if !finite(t.K, t.X, t.Y, state.ScrollPosition.Top, state.ScrollPosition.Left) {
		return fmt.Errorf("%w: non-finite offset or scale", ErrInvalidExplorerState)
	}
	if t.K <= 0 {
		return fmt.Errorf("%w: sizeViewTransform.k %v must be positive", ErrInvalidExplorerState, t.K)
	}
	return nil
}

// NormalizeExplorerState repairs fields of a loaded state that fall outside
// their domain, replacing each with its default. A bad scale resets only K.
func NormalizeExplorerState(state ExplorerViewState) ExplorerViewState {
	defaults := DefaultExplorerState()
	out := state.Clone()
	if mode, err := NormalizeViewMode(string(out.ViewMode)); err != nil {
		out.ViewMode = defaults.ViewMode
	} else {
		out.ViewMode = mode
	}
	if sortBy, err := NormalizeSortBy(string(out.SortBy)); err != nil {
		out.SortBy = defaults.SortBy
	} else {
		out.SortBy = sortBy
	}
	if out.GridSize <= 0 {
		out.GridSize = defaults.GridSize
	}
	if out.GapSize < 0 {
		out.GapSize = defaults.GapSize
	}
	if out.SizeViewTransform.K <= 0 {
		out.SizeViewTransform.K = defaults.SizeViewTransform.K
	}
	return out
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
