package allocation

import "errors"

var (
	// ErrAllocationNotFound indicates the allocation doesn't exist.
	ErrAllocationNotFound = errors.New("allocation not found")
	// ErrInvalidInput indicates invalid allocation input.
	ErrInvalidInput = errors.New("invalid allocation input")
	// ErrOutsideProjectWindow indicates the dates fall outside the project's dates.
	ErrOutsideProjectWindow = errors.New("allocation outside project window")
	// ErrConflict indicates the allocation changed since the caller read it.
	ErrConflict = errors.New("allocation modified concurrently")
)
