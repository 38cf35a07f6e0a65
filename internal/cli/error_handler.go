package cli

import (
	stderrors "errors"
	"fmt"

	"timeledger/internal/errors"
	"timeledger/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// userError carries the printable message while keeping the cause reachable
// through errors.As, so ExitCode still sees the original type.
type userError struct {
	msg   string
	cause error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.cause }

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors.
// A nil error stays nil.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &userError{msg: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), cause: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return &userError{msg: eh.message(err), cause: err}
}

func (eh *ErrorHandler) message(err error) string {
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// IsConflictError checks if an error reports a broken invariant
func (eh *ErrorHandler) IsConflictError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConflict)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// ExitCode maps an error to the process exit status.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return 2
	case eh.IsNotFoundError(err):
		return 3
	case eh.IsConflictError(err):
		return 4
	default:
		return 1
	}
}
