package handlers

import "github.com/go-playground/validator/v10"

// processValidationErrors flattens validator errors into a field -> tag map
// suitable for a JSON error payload.
func processValidationErrors(err error) map[string]string {
	fields := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fields
	}
	for _, ve := range validationErrors {
		fields[ve.Field()] = ve.Tag()
	}
	return fields
}
