package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// New returns a validator with the "notblank" tag registered, which rejects
// strings that are empty after trimming whitespace.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		// Only fails on an empty tag name or nil func.
		panic(err)
	}
	return v
}
