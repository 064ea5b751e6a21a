package repository

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

// AppointmentMemoryRepository keeps appointments in process memory, in
// insertion order.
type AppointmentMemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Appointment
	index map[string]int
}

func NewAppointmentMemoryRepository(seed []domain.Appointment) *AppointmentMemoryRepository {
	r := &AppointmentMemoryRepository{
		index: make(map[string]int, len(seed)),
	}
	for _, ap := range seed {
		r.insert(ap)
	}
	return r
}

func (r *AppointmentMemoryRepository) ListAppointments(
	ctx context.Context,
) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Appointment, 0, len(r.items))
	for _, ap := range r.items {
		out = append(out, ap.Clone())
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) FindByKey(
	ctx context.Context,
	key string,
) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[domain.NormalizeKey(key)]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	ap := r.items[i].Clone()
	return &ap, nil
}

func (r *AppointmentMemoryRepository) CreateAppointment(
	ctx context.Context,
	ap *domain.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[ap.Key()]; exists {
		return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
	}
	r.insert(ap.Clone())
	return nil
}

func (r *AppointmentMemoryRepository) insert(ap domain.Appointment) {
	ap.Email = domain.NormalizeKey(ap.Email)
	if ap.History == nil {
		ap.History = []string{}
	}
	r.index[ap.Key()] = len(r.items)
	r.items = append(r.items, ap)
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
