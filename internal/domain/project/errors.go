package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrClientNotFound indicates the owning client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrUnknownKnowledge indicates a required knowledge tag doesn't exist.
	ErrUnknownKnowledge = errors.New("unknown knowledge id")
	// ErrInUse indicates allocations still reference the project.
	ErrInUse = errors.New("project has allocations")
)
