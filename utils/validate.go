package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"restaurant-api/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report json tag names in field errors, not Go field names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct runs the declarative validation pass over a request DTO and
// returns a Validation error carrying one entry per failed field. It runs
// before any ownership or store logic.
func ValidateStruct(dto interface{}) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.KindValidation, "Invalid input.", err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return apperrors.NewValidation("Validation failed.", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field should not be empty", fe.Field())
	case "email":
		return "Please enter correct email address"
	case "min":
		return fmt.Sprintf("At least %s characters required!", fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "e164":
		return "Please enter correct phone number"
	case "oneof":
		return fmt.Sprintf("Please enter correct %s", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
