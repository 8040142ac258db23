package serverutils

import (
	"fmt"

	"notes-app/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks struct tags and folds any failure into
// apperror.ErrValidation so callers get the fixed API message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrValidation, err.Error())
	}
	return nil
}
