package main

import (
	"context"

	"github.com/BruksfildServices01/teleconsult/internal/audit"
	"github.com/BruksfildServices01/teleconsult/internal/config"
	dbpkg "github.com/BruksfildServices01/teleconsult/internal/db"
	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/infra/repository"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

type dataSource struct {
	Repo      domain.Repository
	AuditSink audit.Sink
	closers   []func() error
}

func (d *dataSource) Close() {
	for _, c := range d.closers {
		_ = c()
	}
}

// openDataSource builds the appointment repository selected by DATA_SOURCE.
// Audit events go to postgres when it is the source, otherwise to the log.
func openDataSource(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*dataSource, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		repo := repository.NewAppointmentGormRepository(db)
		if err := repo.SeedIfEmpty(ctx); err != nil {
			return nil, err
		}

		out := &dataSource{Repo: repo, AuditSink: audit.New(db)}
		if sqlDB, err := db.DB(); err == nil {
			out.closers = append(out.closers, sqlDB.Close)
		}
		return out, nil

	case config.DataSourceRedis:
		client, err := dbpkg.NewRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo := repository.NewAppointmentRedisRepository(client, "")
		if err := repo.SeedIfEmpty(ctx); err != nil {
			client.Close()
			return nil, err
		}
		return &dataSource{
			Repo:      repo,
			AuditSink: audit.NewLogSink(logger),
			closers:   []func() error{client.Close},
		}, nil

	default:
		return &dataSource{
			Repo:      repository.NewAppointmentMemoryRepository(domain.SeedAppointments()),
			AuditSink: audit.NewLogSink(logger),
		}, nil
	}
}
