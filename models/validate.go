package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// normalizeToken lowercases and trims a model-produced enum token.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
// Validation errors are flattened into a single readable message so agent
// output failures can be reported (and retried) as one error value.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		// Safeguard for tests running in isolation.
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
