package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error detected during rule resolution or move
// application.
//
// Runtime errors include:
//   - Cascade overflow: entry rules kept changing state past the guard
//   - Missing move: PerformMove called without a move
//   - Bad definition: a token definition could not be instantiated
//
// RuntimeError includes structured fields for diagnostics.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// State names the state being resolved when the error occurred.
	State string

	// Move names the affected move, if any.
	Move string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeCascadeOverflow indicates entry rules exceeded the configured
	// cascade depth guard.
	ErrCodeCascadeOverflow RuntimeErrorCode = "CASCADE_OVERFLOW"

	// ErrCodeMissingMove indicates PerformMove was called without a move.
	ErrCodeMissingMove RuntimeErrorCode = "MISSING_MOVE"

	// ErrCodeBadDefinition indicates a token definition could not be
	// instantiated at load time.
	ErrCodeBadDefinition RuntimeErrorCode = "BAD_DEFINITION"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch {
	case e.State != "" && e.Move != "":
		return fmt.Sprintf("%s: %s (state=%s, move=%s)", e.Code, e.Message, e.State, e.Move)
	case e.State != "":
		return fmt.Sprintf("%s: %s (state=%s)", e.Code, e.Message, e.State)
	case e.Move != "":
		return fmt.Sprintf("%s: %s (move=%s)", e.Code, e.Message, e.Move)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsCascadeError returns true if the error is a cascade overflow.
// Uses errors.As to handle wrapped errors.
func IsCascadeError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeCascadeOverflow
	}
	return false
}

// NewCascadeError creates a RuntimeError for a cascade overflow.
func NewCascadeError(state string, depth, limit int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeCascadeOverflow,
		Message: fmt.Sprintf("state-change cascade exceeded limit (%d > %d)", depth, limit),
		State:   state,
	}
}
