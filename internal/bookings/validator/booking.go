package validator

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(log),
	}
}

func (v *BookingValidator) Validate(b *model.Booking) error {
	if err := validation.Struct(v.validate, b); err != nil {
		return err
	}
	return validateTravelDate(b)
}

func (v *BookingValidator) ValidateUpdate(u *model.BookingUpdate) error {
	return validation.Struct(v.validate, u)
}

// ValidateMerged checks a booking with an update applied, before the update
// is written.
func (v *BookingValidator) ValidateMerged(b *model.Booking, u *model.BookingUpdate) error {
	merged := *b
	if u.Status != nil {
		merged.Status = *u.Status
	}
	if u.Notes != nil {
		merged.Notes = *u.Notes
	}
	if u.TravelDate != nil {
		merged.TravelDate = u.TravelDate
	}
	return validateTravelDate(&merged)
}

func validateTravelDate(b *model.Booking) error {
	if b.TravelDate != nil && b.TravelDate.Before(b.BookingDate) {
		return validation.ValidationErrors{{
			Field:   "travel_date",
			Message: "must not be before the booking date",
		}}
	}
	return nil
}
