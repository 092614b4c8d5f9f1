package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a request struct against its validation tags before it is
// sent to the backend. Values that are not validatable structs pass.
func Validate(v any) error {
	err := validate.Struct(v)
	if _, invalid := err.(*validator.InvalidValidationError); invalid {
		return nil
	}
	return err
}
