// Package validation converts struct-tag validation failures into
// apperror validation errors naming the first failing field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Unexpected("validate request", err)
	}
	fe := fieldErrs[0]
	return apperror.InvalidField(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// OptionalText rejects a present-but-blank string in a partial update.
func OptionalText(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return apperror.InvalidField(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// OptionalMin rejects a present number below min in a partial update.
func OptionalMin(field string, v *float64, min float64) error {
	if v != nil && *v < min {
		return apperror.InvalidField(field, fmt.Sprintf("%s must be at least %v", field, min))
	}
	return nil
}

// OptionalPositive rejects a present number that is not greater than zero.
func OptionalPositive(field string, v *float64) error {
	if v != nil && *v <= 0 {
		return apperror.InvalidField(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
