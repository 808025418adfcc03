package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, name, email, department, hire_date, absent_days, monthly_salary,
	working_days_per_month, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
// monthly_salary es NUMERIC(18,2) y se lee como decimal.Decimal gracias al codec registrado en el pool.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Email, e.Department, e.HireDate, e.AbsentDays, e.MonthlySalary,
		e.WorkingDaysPerMonth, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrDuplicate, domain.ErrEmployeeEmailExists)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanOne(row, "get employee")
}

// FindByEmail obtiene un empleado por email.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	return scanOne(row, "get employee by email")
}

// FindByEmailExcluding busca otro empleado con el mismo email.
func (r *EmployeeRepo) FindByEmailExcluding(ctx context.Context, email, excludeID string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1 AND id <> $2 LIMIT 1`, email, excludeID)
	return scanOne(row, "get employee by email excluding")
}

// Update actualiza todos los campos editables.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET name = $2, email = $3, department = $4, hire_date = $5, absent_days = $6,
			monthly_salary = $7, working_days_per_month = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Email, e.Department, e.HireDate, e.AbsentDays, e.MonthlySalary,
		e.WorkingDaysPerMonth, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrDuplicate, domain.ErrEmployeeEmailExists)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// UpdateAbsentDays fija el contador de ausencias.
func (r *EmployeeRepo) UpdateAbsentDays(ctx context.Context, id string, absentDays int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE employees SET absent_days = $2, updated_at = now() WHERE id = $1`, id, absentDays)
	if err != nil {
		return fmt.Errorf("update absent days: %w", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// List lista todos los empleados ordenados por nombre.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanOne(row pgx.Row, op string) (*entity.Employee, error) {
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Department, &e.HireDate, &e.AbsentDays, &e.MonthlySalary,
		&e.WorkingDaysPerMonth, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
