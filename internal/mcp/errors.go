package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
)

// Stable error codes returned to clients.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidInterval      = "INVALID_INTERVAL"
	CodeInvalidPercentage    = "INVALID_PERCENTAGE"
	CodeConflict             = "CONFLICT"
	CodeInUse                = "IN_USE"
	CodeOutsideProjectWindow = "OUTSIDE_PROJECT_WINDOW"
	CodeMethodNotFound       = "METHOD_NOT_FOUND"
	CodeInvalidParams        = "INVALID_PARAMS"
	CodeInternal             = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes. It returns nil for
// errors with no stable code.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	msg := err.Error()
	switch {
	case errors.Is(err, planning.ErrInvalidInterval):
		return &APIError{Code: CodeInvalidInterval, Message: msg, RecoveryHint: "Start date must not be after end date"}
	case errors.Is(err, planning.ErrInvalidPercentage):
		return &APIError{Code: CodeInvalidPercentage, Message: msg, RecoveryHint: "Use a whole percentage between 1 and 100"}
	case errors.Is(err, allocation.ErrConflict):
		return &APIError{Code: CodeConflict, Message: msg, RecoveryHint: "Re-read the allocation and retry with its current version"}
	case errors.Is(err, allocation.ErrOutsideProjectWindow):
		return &APIError{Code: CodeOutsideProjectWindow, Message: msg, RecoveryHint: "Keep the dates inside the project's start and end"}
	case errors.Is(err, project.ErrInUse), errors.Is(err, knowledge.ErrInUse):
		return &APIError{Code: CodeInUse, Message: msg, RecoveryHint: "Remove the references first"}
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrClientNotFound),
		errors.Is(err, knowledge.ErrKnowledgeNotFound),
		errors.Is(err, allocation.ErrAllocationNotFound):
		return &APIError{Code: CodeNotFound, Message: msg, RecoveryHint: "Check ID spelling"}
	case errors.Is(err, employee.ErrInvalidInput),
		errors.Is(err, employee.ErrUnknownKnowledge),
		errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, client.ErrDuplicateCode),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrUnknownKnowledge),
		errors.Is(err, knowledge.ErrInvalidInput),
		errors.Is(err, knowledge.ErrDuplicateName),
		errors.Is(err, allocation.ErrInvalidInput),
		errors.Is(err, staffing.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, planning.ErrInvalidDate),
		errors.Is(err, planning.ErrInvalidGranularity):
		return &APIError{Code: CodeInvalidInput, Message: msg}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func invalidParams(err error) *APIError {
	if errors.Is(err, planning.ErrInvalidDate) {
		return &APIError{Code: CodeInvalidInput, Message: err.Error(), RecoveryHint: "Dates use YYYY-MM-DD"}
	}
	return &APIError{Code: CodeInvalidParams, Message: err.Error()}
}
