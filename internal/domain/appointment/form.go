package appointment

import "github.com/BruksfildServices01/teleconsult/internal/httperr"

// Form field names, matching the HTML input names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldSymptoms = "symptoms"
	FieldTime     = "time"
)

type BookingForm struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Symptoms string `json:"symptoms" form:"symptoms" validate:"required"`
	Time     string `json:"time" form:"time" validate:"required"`
}

// Set updates a single field, mirroring one input change event.
func (f *BookingForm) Set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSymptoms:
		f.Symptoms = value
	case FieldTime:
		f.Time = value
	default:
		return httperr.ErrBusiness(httperr.CodeUnknownField)
	}
	return nil
}

func (f *BookingForm) Reset() {
	*f = BookingForm{}
}

func (f BookingForm) IsEmpty() bool {
	return f == BookingForm{}
}
