package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"contacts_api/internal/apperr"
)

// Global validator instance for reuse
var validate = validator.New()

const msgFillAllFields = "Please fill all the fields"

// requireFields validates v and turns any failure into a ValidationError
// carrying msg. Non-validation failures (bad struct) are server errors.
func requireFields(v any, msg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperr.Validation(msg)
	}
	return apperr.Server("invalid input", err)
}

func trim(s string) string { return strings.TrimSpace(s) }
