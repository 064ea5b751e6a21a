package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/teleconsult/internal/audit"
	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	WidgetID string
	Form     domain.BookingForm
}

// EmailDomainCheck reports whether the email's domain can receive mail.
type EmailDomainCheck func(email string) bool

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	checkDomain EmailDomainCheck
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	checkDomain EmailDomainCheck,
) *CreateBooking {
	return &CreateBooking{
		repo:        repo,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*domain.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields, email syntax, time format
	// --------------------------------------------------
	if err := domain.Validate(in.Form); err != nil {
		return nil, err
	}

	ap := domain.FromForm(in.Form)

	if uc.checkDomain != nil && !uc.checkDomain(ap.Email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}

	// --------------------------------------------------
	// 2. One booking per patient key
	// --------------------------------------------------
	_, err := uc.repo.FindByKey(ctx, ap.Key())
	switch {
	case err == nil:
		return nil, httperr.ErrBusiness(httperr.CodeDuplicateBooking)
	case !httperr.IsBusiness(err, httperr.CodePatientNotFound):
		return nil, err
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, &ap); err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		WidgetID:  in.WidgetID,
		Action:    audit.ActionBookingSubmitted,
		Entity:    "appointment",
		EntityKey: ap.Key(),
		Metadata: map[string]string{
			"time": ap.Time,
		},
	})

	return &ap, nil
}
