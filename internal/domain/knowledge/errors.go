package knowledge

import "errors"

var (
	// ErrKnowledgeNotFound indicates the knowledge tag doesn't exist.
	ErrKnowledgeNotFound = errors.New("knowledge not found")
	// ErrInvalidInput indicates invalid knowledge input.
	ErrInvalidInput = errors.New("invalid knowledge input")
	// ErrDuplicateName indicates the name is already taken.
	ErrDuplicateName = errors.New("knowledge name already in use")
	// ErrInUse indicates employees or projects still reference the tag.
	ErrInUse = errors.New("knowledge is still referenced")
)
