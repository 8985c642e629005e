// Package validation wraps go-playground/validator with the custom tags and
// readable field errors shared by every domain validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// New returns a validator that reports fields by their JSON names and knows
// the model's custom tags.
func New(log *logger.Logger) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := model.RegisterValidations(v); err != nil {
		log.Fatal("Failed to register custom validators", "error", err)
	}
	return v
}

// Struct validates s and converts tag failures into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return Translate(validationErrs)
		}
		return err
	}
	return nil
}

// Check adapts Struct into a per-document check for repository reads.
func Check[T any](v *validator.Validate) func(*T) error {
	return func(doc *T) error { return Struct(v, doc) }
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   fieldPath(err.Namespace()),
			Message: message(err),
		})
	}
	return out
}

// fieldPath drops the root struct name: "TourInput.dates[0].price" -> "dates[0].price".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "text_required":
		return "must not be empty"
	case "multilang":
		return "must have a value in at least one language"
	case "decimal":
		return "must be a non-negative decimal number"
	case "tour_style":
		return "must be one of Premium, Econom, Standart, Lux"
	case "date_status":
		return "must be one of Available, Few spots, Sold out"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "gtefield":
		return fmt.Sprintf("must not be before %s", err.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", err.Tag())
	}
}

// AsAppError wraps a validation failure as a 422 with per-field details.
// Other errors are returned unchanged.
func AsAppError(err error, message string) error {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		details := make(map[string]any, len(errs))
		for _, e := range errs {
			details[e.Field] = e.Message
		}
		return apperrors.Validation(message, details)
	}
	var single ValidationError
	if errors.As(err, &single) {
		return apperrors.Validation(message, map[string]any{single.Field: single.Message})
	}
	return err
}
