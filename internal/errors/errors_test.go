package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypeConflict, "conflict"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "name is required"}
	assert.Equal(t, "validation: name is required", plain.Error())

	wrapped := &AppError{Type: ErrorTypeDatabase, Message: "insert failed", Cause: errors.New("disk full")}
	assert.Equal(t, "database: insert failed (caused by: disk full)", wrapped.Error())
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("locked")
	err := NewDatabaseError("update time entry", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Is(&AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}))
	assert.False(t, err.Is(&AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}))
	assert.False(t, err.Is(cause))
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeConflict}

	_, ok := err.GetContext("entries")
	assert.False(t, ok)

	same := err.WithContext("entries", 3)
	assert.Same(t, err, same)

	value, ok := err.GetContext("entries")
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestNewDatabaseError_ContextErrorsBecomeTimeouts(t *testing.T) {
	err := NewDatabaseError("search time entries", fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.True(t, err.IsType(ErrorTypeTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "abc")

	assert.Equal(t, "project not found: abc", err.Message)
	resource, _ := err.GetContext("resource")
	assert.Equal(t, "project", resource)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("start timer: %w", NewConflictError("two running entries"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeConflict, appErr.Type)
	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeConflict))

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeConflict))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("project name is required", nil), "project name is required"},
		{"not found", NewNotFoundError("time entry", "42"), "time entry not found: 42"},
		{"conflict", NewConflictError("more than one running entry"), "more than one running entry"},
		{"database", NewDatabaseError("insert", errors.New("boom")), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("insert", nil), "The operation timed out. Please try again."},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "INVALID_INPUT", GetErrorCode(NewInvalidInputError("target", "x", "not a number")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
	assert.Equal(t, "timeout", GetErrorCode(WrapError(errors.New("slow"), ErrorTypeTimeout, "slow")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("project", "1")))
	assert.False(t, ShouldLogError(NewInvalidInputError("target", "x", "nan")))
	assert.True(t, ShouldLogError(NewDatabaseError("insert", errors.New("boom"))))
	assert.True(t, ShouldLogError(NewConflictError("two running")))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
