package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/infrastructure/pdf"
)

func TestGeneratePayrollPDF_GeneraDocumento(t *testing.T) {
	report := &roster.PayrollReport{
		GeneratedAt: time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC),
		GeneratedBy: "admin",
		Employees: []*dto.EmployeeResponse{
			{ID: "e1", Name: "Ana", Department: "Finanzas", HireDate: "2024-01-01", AbsentDays: 11, WorkingDays: 94,
				MonthlySalary: decimal.NewFromInt(3000), CalculatedSalary: decimal.NewFromInt(1500)},
			{ID: "e2", Name: "Luis", Department: "Ventas", HireDate: "2024-04-01", WorkingDays: 14,
				MonthlySalary: decimal.NewFromInt(2500), CalculatedSalary: decimal.NewFromInt(2500)},
		},
		TotalMonthlySalary:    decimal.NewFromInt(5500),
		TotalCalculatedSalary: decimal.NewFromInt(4000),
	}

	out, err := pdf.NewMarotoPayrollReport("Empresa S.A.").GeneratePayrollPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePayrollPDF_SinEmpleados(t *testing.T) {
	report := &roster.PayrollReport{GeneratedAt: time.Now(), TotalMonthlySalary: decimal.Zero, TotalCalculatedSalary: decimal.Zero}

	out, err := pdf.NewMarotoPayrollReport("").GeneratePayrollPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePayrollPDF_ReporteNil(t *testing.T) {
	_, err := pdf.NewMarotoPayrollReport("").GeneratePayrollPDF(context.Background(), nil)
	assert.Error(t, err)
}
