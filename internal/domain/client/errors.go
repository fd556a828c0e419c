package client

import "errors"

var (
	// ErrClientNotFound indicates the client doesn't exist or was deleted.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
	// ErrDuplicateCode indicates another client already uses the code.
	ErrDuplicateCode = errors.New("client code already in use")
)
