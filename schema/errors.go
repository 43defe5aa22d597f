package schema

import "errors"

var (
	// ErrInvalidSnapshot indicates a persisted snapshot has the wrong shape.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrInvalidViewMode indicates an unknown explorer view mode.
	ErrInvalidViewMode = errors.New("invalid view mode")
	// ErrInvalidSortBy indicates an unknown explorer sort key.
	ErrInvalidSortBy = errors.New("invalid sort key")
	// ErrInvalidExplorerState indicates a view state field is out of range.
	ErrInvalidExplorerState = errors.New("invalid explorer state")
	// ErrStorageUnavailable indicates the storage backend cannot be used.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrTabNotFound indicates a requested tab could not be found.
	ErrTabNotFound = errors.New("tab not found")
)
