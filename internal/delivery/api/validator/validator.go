// Package validator adapts go-playground/validator to echo.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// New returns an echo validator backed by v, or by a fresh validator when v is nil.
func New(v *validator.Validate) *CustomValidator {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
