// Package sqlite almacén embebido con GORM sobre SQLite (DB_DRIVER=sqlite).
// Implementa los mismos puertos que el adaptador de PostgreSQL; útil en desarrollo y tests.
package sqlite

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store agrupa la conexión GORM y expone los repositorios.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra el esquema. ":memory:" crea una base efímera.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	// Una sola conexión: ":memory:" es por conexión y SQLite serializa escrituras de todos modos.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userModel{}, &employeeModel{}, &sessionModel{}); err != nil {
		return nil, fmt.Errorf("sqlite: migrar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión subyacente.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Users() repository.UserRepository         { return &UserRepo{db: s.db} }
func (s *Store) Employees() repository.EmployeeRepository { return &EmployeeRepo{db: s.db} }
func (s *Store) Sessions() repository.SessionRepository   { return &SessionRepo{db: s.db} }

// Run ejecuta fn dentro de una transacción GORM; si fn retorna error se hace rollback.
func (s *Store) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	employees repository.EmployeeRepository,
	sessions repository.SessionRepository,
) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepo{db: tx}, &EmployeeRepo{db: tx}, &SessionRepo{db: tx})
	})
}
