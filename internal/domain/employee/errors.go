package employee

import "errors"

var (
	// ErrEmployeeNotFound indicates the employee doesn't exist or was deleted.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrInvalidInput indicates invalid employee input.
	ErrInvalidInput = errors.New("invalid employee input")
	// ErrUnknownKnowledge indicates a referenced knowledge tag doesn't exist.
	ErrUnknownKnowledge = errors.New("unknown knowledge id")
)
