package httperr

import "errors"

// Business error codes shared by the domain, use cases and handlers.
const (
	CodeMissingField        = "missing_field"
	CodeInvalidEmail        = "invalid_email"
	CodeInvalidTime         = "invalid_time"
	CodeDuplicateBooking    = "duplicate_booking"
	CodePatientNotFound     = "patient_not_found"
	CodeConfirmationPending = "confirmation_pending"
	CodeMissingCredentials  = "missing_credentials"
	CodeNotLoggedIn         = "doctor_not_logged_in"
	CodeUnknownField        = "unknown_field"
	CodeUnknownTab          = "unknown_tab"
	CodeWidgetClosed        = "widget_closed"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for other errors.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
