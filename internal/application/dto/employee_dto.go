package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de contratación en entradas y salidas.
const DateLayout = "2006-01-02"

// CreateEmployeeRequest entrada para alta de empleado. WorkingDaysPerMonth 0 = valor por defecto.
type CreateEmployeeRequest struct {
	Name                string          `json:"name" validate:"required,max=200"`
	Email               string          `json:"email" validate:"required,email,max=200"`
	Department          string          `json:"department" validate:"required,max=100"`
	HireDate            string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	MonthlySalary       decimal.Decimal `json:"monthly_salary" validate:"money"`
	WorkingDaysPerMonth int             `json:"working_days_per_month" validate:"omitempty,min=1,max=31"`
}

// UpdateEmployeeRequest edición completa de un empleado (todos los campos).
type UpdateEmployeeRequest struct {
	Name                string          `json:"name" validate:"required,max=200"`
	Email               string          `json:"email" validate:"required,email,max=200"`
	Department          string          `json:"department" validate:"required,max=100"`
	HireDate            string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	AbsentDays          int             `json:"absent_days" validate:"min=0"`
	MonthlySalary       decimal.Decimal `json:"monthly_salary" validate:"money"`
	WorkingDaysPerMonth int             `json:"working_days_per_month" validate:"min=1,max=31"`
}

// UpdateAbsentDaysRequest actualización dedicada del contador de ausencias.
type UpdateAbsentDaysRequest struct {
	AbsentDays int `json:"absent_days" validate:"min=0"`
}

// EmployeeResponse empleado con los valores derivados calculados al momento de la lectura.
type EmployeeResponse struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	Email                   string          `json:"email"`
	Department              string          `json:"department"`
	HireDate                string          `json:"hire_date"`
	AbsentDays              int             `json:"absent_days"`
	MonthlySalary           decimal.Decimal `json:"monthly_salary"`
	WorkingDaysPerMonth     int             `json:"working_days_per_month"`
	WorkingDays             int             `json:"working_days"`
	CurrentMonthWorkingDays int             `json:"current_month_working_days"`
	DailyRate               decimal.Decimal `json:"daily_rate"`
	CalculatedSalary        decimal.Decimal `json:"calculated_salary"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// SalaryResponse salario hipotético de un mes con AbsentDays ausencias.
type SalaryResponse struct {
	EmployeeID          string          `json:"employee_id"`
	AbsentDays          int             `json:"absent_days"`
	WorkingDaysPerMonth int             `json:"working_days_per_month"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	Salary              decimal.Decimal `json:"salary"`
}
