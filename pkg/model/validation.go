package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs the custom tags used by the entity and input structs.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"decimal":       validateDecimal,
		"multilang":     validateMultiLang,
		"text_required": validateTextRequired,
		"tour_style":    validateTourStyle,
		"date_status":   validateDateStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q: %w", tag, err)
		}
	}
	return nil
}

func validateDecimal(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func validateMultiLang(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(MultiLangText)
	return ok && !m.IsBlank()
}

func validateTextRequired(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(TextInput)
	return ok && !t.IsBlank()
}

func validateTourStyle(fl validator.FieldLevel) bool {
	return TourStyle(fl.Field().String()).Valid()
}

func validateDateStatus(fl validator.FieldLevel) bool {
	return DateStatus(fl.Field().String()).Valid()
}

func (s TourStyle) Valid() bool {
	switch s {
	case StylePremium, StyleEconom, StyleStandart, StyleLux:
		return true
	}
	return false
}

func (s DateStatus) Valid() bool {
	switch s {
	case DateAvailable, DateFewSpots, DateSoldOut:
		return true
	}
	return false
}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}
