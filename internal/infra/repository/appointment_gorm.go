package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
	"github.com/BruksfildServices01/teleconsult/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
) ([]domain.Appointment, error) {

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func (r *AppointmentGormRepository) FindByKey(
	ctx context.Context,
	key string,
) (*domain.Appointment, error) {

	var row models.Appointment
	if err := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeKey(key)).
		First(&row).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
		}
		return nil, err
	}

	ap := toDomain(row)
	return &ap, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *domain.Appointment,
) error {

	row := fromDomain(*ap)
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
	}
	return err
}

// SeedIfEmpty inserts the sample records into an empty table.
func (r *AppointmentGormRepository) SeedIfEmpty(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]models.Appointment, 0, 2)
	for _, ap := range domain.SeedAppointments() {
		rows = append(rows, fromDomain(ap))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func toDomain(row models.Appointment) domain.Appointment {
	history := row.History
	if history == nil {
		history = []string{}
	}
	return domain.Appointment{
		Name:     row.Name,
		Email:    row.Email,
		Symptoms: row.Symptoms,
		Time:     row.Time,
		History:  history,
	}
}

func fromDomain(ap domain.Appointment) models.Appointment {
	history := ap.History
	if history == nil {
		history = []string{}
	}
	return models.Appointment{
		Name:     ap.Name,
		Email:    domain.NormalizeKey(ap.Email),
		Symptoms: ap.Symptoms,
		Time:     ap.Time,
		History:  history,
	}
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
