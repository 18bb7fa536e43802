package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
)

type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	return &ContactValidator{validate: validator.New()}
}

// Validate checks the contact struct tags and maps each failure to a
// client-facing field error.
func (v *ContactValidator) Validate(contact *model.Contact) []apperrors.FieldError {
	err := v.validate.Struct(contact)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return []apperrors.FieldError{{Field: "contact", Message: "Invalid contact payload"}}
	}

	var fieldErrs []apperrors.FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   fieldName(fe.Field()),
			Message: message(fe),
		})
	}
	return fieldErrs
}

func fieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	case "Subject":
		return "subject"
	case "Message":
		return "message"
	case "Urgency":
		return "urgency"
	case "Status":
		return "status"
	}
	return structField
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		return "Too short (minimum " + fe.Param() + " characters)"
	case "max":
		return "Too long (maximum " + fe.Param() + " characters)"
	case "oneof":
		return "Must be one of: " + fe.Param()
	}
	return "Invalid value"
}
