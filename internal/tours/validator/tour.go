package validator

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type TourValidator struct {
	validate *validator.Validate
}

func NewTourValidator(log *logger.Logger) *TourValidator {
	return &TourValidator{
		validate: validation.New(log),
	}
}

// ValidateInput checks a form payload before anything is translated.
func (v *TourValidator) ValidateInput(in *model.TourInput) error {
	if err := validation.Struct(v.validate, in); err != nil {
		return err
	}
	return validateDuration(in.Duration)
}

// Validate checks a tour that is about to be written.
func (v *TourValidator) Validate(t *model.Tour) error {
	if err := validation.Struct(v.validate, t); err != nil {
		return err
	}
	return validateDuration(t.Duration)
}

// ValidateStored is run on every tour read back from the database.
func (v *TourValidator) ValidateStored(t *model.Tour) error {
	return validation.Struct(v.validate, t)
}

func validateDuration(d model.Duration) error {
	if d.Nights > d.Days {
		return validation.ValidationErrors{{
			Field:   "duration.nights",
			Message: "must not exceed the number of days",
		}}
	}
	return nil
}
