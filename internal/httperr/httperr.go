package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var messages = map[string]string{
	CodeMissingField:        "All fields are required.",
	CodeInvalidEmail:        "Please enter a valid email address.",
	CodeInvalidTime:         "Please choose a valid date and time.",
	CodeDuplicateBooking:    "A consultation request already exists for this email.",
	CodePatientNotFound:     "Patient not found.",
	CodeConfirmationPending: "Your previous request is still being confirmed.",
	CodeMissingCredentials:  "Username and password are required.",
	CodeNotLoggedIn:         "Doctor login required.",
	CodeUnknownField:        "Unknown form field.",
	CodeUnknownTab:          "Unknown tab.",
	CodeWidgetClosed:        "This session has ended.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Message returns the user-facing text for a business code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Something went wrong."
}

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case "":
		return http.StatusInternalServerError
	case CodePatientNotFound:
		return http.StatusNotFound
	case CodeDuplicateBooking, CodeConfirmationPending, CodeWidgetClosed:
		return http.StatusConflict
	case CodeNotLoggedIn:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err as a JSON error body.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, "internal_error", Message(""))
		return
	}
	Write(c, StatusFor(code), code, Message(code))
}
