package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client, _ := setupTestRedisServer(t)
	return client
}

func setupTestRedisServer(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func newSeededRepos(t *testing.T) map[string]domain.Repository {
	ctx := context.Background()

	redisRepo := NewAppointmentRedisRepository(setupTestRedis(t), "")
	require.NoError(t, redisRepo.SeedIfEmpty(ctx))

	return map[string]domain.Repository{
		"memory": NewAppointmentMemoryRepository(domain.SeedAppointments()),
		"redis":  redisRepo,
	}
}

func TestRepositories_ListSeeded(t *testing.T) {
	for name, repo := range newSeededRepos(t) {
		t.Run(name, func(t *testing.T) {
			list, err := repo.ListAppointments(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "John Doe", list[0].Name)
			assert.Equal(t, "Jane Smith", list[1].Name)
			assert.Len(t, list[0].History, 2)
		})
	}
}

func TestRepositories_CreateAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	for name, repo := range newSeededRepos(t) {
		t.Run(name, func(t *testing.T) {
			ap := domain.Appointment{
				Name:     "Ravi Kumar",
				Email:    "Ravi@Example.com",
				Symptoms: "Floaters",
				Time:     "2025-08-02T09:00",
			}
			require.NoError(t, repo.CreateAppointment(ctx, &ap))

			list, err := repo.ListAppointments(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "ravi@example.com", list[2].Email)
			assert.NotNil(t, list[2].History)
			assert.Empty(t, list[2].History)

			found, err := repo.FindByKey(ctx, " RAVI@example.com")
			require.NoError(t, err)
			assert.Equal(t, "Ravi Kumar", found.Name)
		})
	}
}

func TestRepositories_RejectDuplicateKey(t *testing.T) {
	ctx := context.Background()
	for name, repo := range newSeededRepos(t) {
		t.Run(name, func(t *testing.T) {
			dup := domain.Appointment{Name: "Other John", Email: "JOHN@example.com", Symptoms: "x", Time: "2025-08-01T12:00"}

			err := repo.CreateAppointment(ctx, &dup)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateBooking))

			list, err := repo.ListAppointments(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 2)
		})
	}
}

func TestRepositories_FindMiss(t *testing.T) {
	for name, repo := range newSeededRepos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.FindByKey(context.Background(), "nobody@example.com")
			assert.True(t, httperr.IsBusiness(err, httperr.CodePatientNotFound))
		})
	}
}

func TestRepositories_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	for name, repo := range newSeededRepos(t) {
		t.Run(name, func(t *testing.T) {
			found, err := repo.FindByKey(ctx, "jane@example.com")
			require.NoError(t, err)
			found.History[0] = "tampered"

			again, err := repo.FindByKey(ctx, "jane@example.com")
			require.NoError(t, err)
			assert.Equal(t, []string{"10 Mar 2025 - Allergy symptoms - Advised antihistamines"}, again.History)
		})
	}
}

func TestRedisSeedIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRedisRepository(setupTestRedis(t), "test")

	require.NoError(t, repo.SeedIfEmpty(ctx))
	require.NoError(t, repo.SeedIfEmpty(ctx))

	list, err := repo.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRedisCreateRollsBackWhenOrderFails(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedisServer(t)
	repo := NewAppointmentRedisRepository(client, "test")

	// a string at the order key makes RPUSH fail with WRONGTYPE
	require.NoError(t, mr.Set("test:order", "broken"))

	ap := &domain.Appointment{
		Name:     "Mira",
		Email:    "mira@example.com",
		Symptoms: "Floaters",
		Time:     "2025-08-05T09:00",
	}
	err := repo.CreateAppointment(ctx, ap)
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeDuplicateBooking))
	assert.Empty(t, mr.HGet("test:data", "mira@example.com"))

	mr.Del("test:order")
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	got, err := repo.FindByKey(ctx, "mira@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Mira", got.Name)

	list, err := repo.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
