// Package storage abre el almacén configurado (DB_DRIVER) y expone sus repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Empleados-api/internal/domain/repository"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Empleados-api/pkg/config"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// Storage repositorios y transacciones sobre un mismo almacén.
type Storage struct {
	Users     repository.UserRepository
	Employees repository.EmployeeRepository
	Sessions  repository.SessionRepository
	Tx        repository.TxRunner
	close     func()
}

// Close libera las conexiones.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta al almacén configurado y aplica el esquema (goose en PostgreSQL, AutoMigrate en SQLite).
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Storage, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL (%s): %w", postgres.Describe(cfg), err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Str("db", postgres.Describe(cfg)).Msg("almacén listo")
		return &Storage{
			Users:     postgres.NewUserRepository(pool),
			Employees: postgres.NewEmployeeRepository(pool),
			Sessions:  postgres.NewSessionRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacén listo")
		return &Storage{
			Users:     store.Users(),
			Employees: store.Employees(),
			Sessions:  store.Sessions(),
			Tx:        store,
			close: func() {
				if err := store.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar SQLite")
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
}
