package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

// Layouts produced by an HTML datetime-local input.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

var validate = validator.New()

func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidTime)
}

// Validate applies the required-field checks a browser would enforce, plus
// email syntax and time format.
func Validate(f BookingForm) error {
	trimmed := BookingForm{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Symptoms: strings.TrimSpace(f.Symptoms),
		Time:     strings.TrimSpace(f.Time),
	}

	if err := validate.Struct(trimmed); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return httperr.ErrBusiness(httperr.CodeMissingField)
			}
		}
		return httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}

	if _, err := ParseTime(trimmed.Time, time.UTC); err != nil {
		return err
	}
	return nil
}
