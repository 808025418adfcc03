package repository

import (
	"context"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Los métodos de búsqueda devuelven (nil, nil) cuando el empleado no existe.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	FindByEmail(ctx context.Context, email string) (*entity.Employee, error)
	// FindByEmailExcluding busca otro empleado (id distinto) con el mismo email.
	FindByEmailExcluding(ctx context.Context, email, excludeID string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	UpdateAbsentDays(ctx context.Context, id string, absentDays int) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Employee, error)
}
