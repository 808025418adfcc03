package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWorkingDaysPerMonth días laborables por mes cuando no se indica otro valor.
const DefaultWorkingDaysPerMonth = 22

// Employee representa un empleado de la nómina.
// Los días trabajados y el salario calculado no se persisten: se derivan con el paquete payroll.
type Employee struct {
	ID                  string
	Name                string
	Email               string // único en toda la nómina
	Department          string
	HireDate            time.Time       // solo fecha, sin hora
	AbsentDays          int             // acumulado desde la contratación, inicia en 0
	MonthlySalary       decimal.Decimal // salario mensual base
	WorkingDaysPerMonth int             // 1..31, por defecto 22
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
