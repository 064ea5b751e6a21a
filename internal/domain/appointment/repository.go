package appointment

import "context"

// Repository is the appointment data source. The widget only lists and
// appends; records are never edited or removed.
type Repository interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)

	CreateAppointment(ctx context.Context, ap *Appointment) error

	// FindByKey returns patient_not_found when no record matches.
	FindByKey(ctx context.Context, key string) (*Appointment, error)
}
