package services

import (
	stderrors "errors"

	"timeledger/internal/errors"
	"timeledger/internal/validation"
)

// invalid wraps a field validation failure into an AppError whose message
// carries the field-level detail.
func invalid(what string, err error) error {
	message := what
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) && ve.HasErrors() {
		message += ": " + ve.GetUserFriendlyMessage()
	}
	return errors.NewValidationError(message, err)
}
