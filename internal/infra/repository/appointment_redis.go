package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

const defaultRedisPrefix = "teleconsult:appointments"

// AppointmentRedisRepository stores one JSON document per patient in a hash
// and keeps insertion order in a list.
type AppointmentRedisRepository struct {
	client *redis.Client
	prefix string
}

func NewAppointmentRedisRepository(client *redis.Client, prefix string) *AppointmentRedisRepository {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &AppointmentRedisRepository{client: client, prefix: prefix}
}

func (r *AppointmentRedisRepository) hashKey() string  { return r.prefix + ":data" }
func (r *AppointmentRedisRepository) orderKey() string { return r.prefix + ":order" }

func (r *AppointmentRedisRepository) ListAppointments(
	ctx context.Context,
) ([]domain.Appointment, error) {

	keys, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list appointment keys: %w", err)
	}
	if len(keys) == 0 {
		return []domain.Appointment{}, nil
	}

	values, err := r.client.HMGet(ctx, r.hashKey(), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	out := make([]domain.Appointment, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		ap, err := decodeAppointment(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *AppointmentRedisRepository) FindByKey(
	ctx context.Context,
	key string,
) (*domain.Appointment, error) {

	s, err := r.client.HGet(ctx, r.hashKey(), domain.NormalizeKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	if err != nil {
		return nil, err
	}

	ap, err := decodeAppointment(s)
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentRedisRepository) CreateAppointment(
	ctx context.Context,
	ap *domain.Appointment,
) error {

	stored := ap.Clone()
	stored.Email = domain.NormalizeKey(stored.Email)
	if stored.History == nil {
		stored.History = []string{}
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	ok, err := r.client.HSetNX(ctx, r.hashKey(), stored.Key(), payload).Result()
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
	}

	if err := r.client.RPush(ctx, r.orderKey(), stored.Key()).Err(); err != nil {
		// release the key so the booking can be retried
		if delErr := r.client.HDel(ctx, r.hashKey(), stored.Key()).Err(); delErr != nil {
			return fmt.Errorf("append appointment order: %w (rollback: %v)", err, delErr)
		}
		return fmt.Errorf("append appointment order: %w", err)
	}
	return nil
}

// SeedIfEmpty writes the sample records when the hash does not exist yet.
func (r *AppointmentRedisRepository) SeedIfEmpty(ctx context.Context) error {
	n, err := r.client.HLen(ctx, r.hashKey()).Result()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, ap := range domain.SeedAppointments() {
		ap := ap
		if err := r.CreateAppointment(ctx, &ap); err != nil && !httperr.IsBusiness(err, httperr.CodeDuplicateBooking) {
			return err
		}
	}
	return nil
}

func decodeAppointment(s string) (domain.Appointment, error) {
	var ap domain.Appointment
	if err := json.Unmarshal([]byte(s), &ap); err != nil {
		return domain.Appointment{}, fmt.Errorf("decode appointment: %w", err)
	}
	if ap.History == nil {
		ap.History = []string{}
	}
	return ap, nil
}

var _ domain.Repository = (*AppointmentRedisRepository)(nil)
