// Package validate builds the request validator shared by all handlers.
package validate

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// New returns a validator with two extra tags:
//
//	notblank    the string has at least one non-space character
//	maxbytes=N  the string is at most N bytes long (min/max count runes)
func New() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("maxbytes", maxBytes)

	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}
