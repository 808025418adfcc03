package roster

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
)

// PayrollReport datos del reporte de nómina: empleados con sus valores derivados y totales.
type PayrollReport struct {
	GeneratedAt           time.Time
	GeneratedBy           string
	Employees             []*dto.EmployeeResponse
	TotalMonthlySalary    decimal.Decimal
	TotalCalculatedSalary decimal.Decimal
}

// PayrollReportGenerator genera la representación PDF del reporte de nómina.
type PayrollReportGenerator interface {
	GeneratePayrollPDF(ctx context.Context, report *PayrollReport) ([]byte, error)
}
