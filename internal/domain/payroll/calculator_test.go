package payroll_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empleados-api/internal/domain/payroll"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── Casos concretos ───────────────────────────────────────────────────────────

// Contratado hace 60 días con 5 ausencias: 55 días trabajados.
func TestWorkingDaysSinceHire_DescuentaAusencias(t *testing.T) {
	now := time.Date(2024, time.May, 20, 15, 30, 0, 0, time.UTC)
	hire := now.AddDate(0, 0, -60)

	assert.Equal(t, 55, payroll.WorkingDaysSinceHire(hire, 5, now))
}

// 3000 / 22 * 11 = 1500 exacto.
func TestProrateSalary_MitadDelMesExacta(t *testing.T) {
	got := payroll.ProrateSalary(decimal.NewFromInt(3000), 22, 11)
	assert.True(t, got.Equal(decimal.NewFromInt(1500)), "esperado 1500, obtenido %s", got)
	assert.Equal(t, "1500", got.String())
}

// Mes de 30 días con 8 días de fin de semana: 22 días hábiles.
func TestBusinessDaysInMonth_MesDeTreintaDias(t *testing.T) {
	assert.Equal(t, 22, payroll.BusinessDaysInMonth(date(2024, time.April, 15)))
	assert.Equal(t, 22, payroll.BusinessDaysInMonth(date(2025, time.September, 30)))
	assert.Equal(t, 22, payroll.CurrentMonthWorkingDays(date(2024, time.April, 1), 0))
}

func TestBusinessDaysInMonth_OtrosMeses(t *testing.T) {
	assert.Equal(t, 21, payroll.BusinessDaysInMonth(date(2024, time.February, 29)), "febrero bisiesto")
	assert.Equal(t, 20, payroll.BusinessDaysInMonth(date(2025, time.February, 1)))
	assert.Equal(t, 21, payroll.BusinessDaysInMonth(date(2024, time.March, 31)))
}

// ── Propiedades ───────────────────────────────────────────────────────────────

func TestClamping_NuncaNegativo(t *testing.T) {
	now := date(2024, time.April, 15)
	hire := date(2024, time.April, 1)

	for _, absent := range []int{0, 14, 15, 100, 1_000_000} {
		assert.GreaterOrEqual(t, payroll.WorkingDaysSinceHire(hire, absent, now), 0)
		assert.GreaterOrEqual(t, payroll.CurrentMonthWorkingDays(now, absent), 0)
	}
	assert.Equal(t, 0, payroll.WorkingDaysSinceHire(hire, 15, now))
	assert.Equal(t, 0, payroll.CurrentMonthWorkingDays(now, 23))
}

func TestWorkingDaysSinceHire_ContratacionFutura(t *testing.T) {
	now := date(2024, time.April, 15)
	assert.Equal(t, 0, payroll.WorkingDaysSinceHire(date(2024, time.May, 1), 0, now))
}

func TestProrateSalary_DiasPorMesCero(t *testing.T) {
	for _, salary := range []string{"0", "1", "3000", "123456.78"} {
		got := payroll.ProrateSalary(decimal.RequireFromString(salary), 0, 11)
		assert.True(t, got.IsZero(), "salario %s con 0 días por mes debe ser 0", salary)
	}
	assert.True(t, payroll.DailyRate(decimal.NewFromInt(3000), 0).IsZero())
}

func TestProrateSalary_DiasNegativosCuentanComoCero(t *testing.T) {
	assert.True(t, payroll.ProrateSalary(decimal.NewFromInt(3000), 22, -3).IsZero())
}

func TestDailyRate(t *testing.T) {
	got := payroll.DailyRate(decimal.NewFromInt(3000), 22)
	assert.Equal(t, "136.36", got.StringFixed(2))
}

// ── DaysBetween ───────────────────────────────────────────────────────────────

func TestDaysBetween_Trunca(t *testing.T) {
	from := date(2024, time.January, 1)
	assert.Equal(t, 105, payroll.DaysBetween(from, time.Date(2024, time.April, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 0, payroll.DaysBetween(from, from))
	assert.Equal(t, -1, payroll.DaysBetween(from, date(2023, time.December, 31)))
}

func TestDaysBetween_FechasMuyLejanas(t *testing.T) {
	// Más de 292 años no caben en un time.Duration.
	assert.Equal(t, 118338, payroll.DaysBetween(date(1700, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, -118338, payroll.DaysBetween(date(2024, time.January, 1), date(1700, time.January, 1)))
	assert.Equal(t, 118338-5, payroll.WorkingDaysSinceHire(date(1700, time.January, 1), 5, date(2024, time.January, 1)))
}

func TestDaysBetween_CambioHorarioVerano(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// El 10 de marzo de 2024 dura 23 horas en Nueva York.
	hire := time.Date(2024, time.March, 1, 0, 0, 0, 0, ny)
	now := time.Date(2024, time.March, 15, 0, 30, 0, 0, ny)

	assert.Equal(t, 14, payroll.DaysBetween(hire, now))
}

// ── SalaryForAbsences ─────────────────────────────────────────────────────────

func TestSalaryForAbsences(t *testing.T) {
	monthly := decimal.NewFromInt(3000)

	assert.Equal(t, "3000", payroll.SalaryForAbsences(monthly, 22, 0).String())
	assert.Equal(t, "1500", payroll.SalaryForAbsences(monthly, 22, 11).String())
	assert.True(t, payroll.SalaryForAbsences(monthly, 22, 30).IsZero(), "más ausencias que días: 0")
	assert.True(t, payroll.SalaryForAbsences(monthly, 0, 0).IsZero())
}

// ── Calculate ─────────────────────────────────────────────────────────────────

func TestCalculate_ComponeReglas(t *testing.T) {
	in := payroll.Input{
		HireDate:            date(2024, time.January, 1),
		AbsentDays:          11,
		MonthlySalary:       decimal.NewFromInt(3000),
		WorkingDaysPerMonth: 22,
	}
	f := payroll.Calculate(in, time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 94, f.WorkingDays)
	assert.Equal(t, 11, f.CurrentMonthWorkingDays)
	assert.Equal(t, "136.36", f.DailyRate.StringFixed(2))
	assert.Equal(t, "1500", f.CalculatedSalary.String())
}

// ── Caracterización ───────────────────────────────────────────────────────────

// Las ausencias acumuladas desde la contratación se descuentan completas de los días
// hábiles de cada mes. Este test fija el comportamiento actual; no es una garantía de
// corrección. Si se pasa a ausencias del mes, se actualiza junto con AbsencesChargedToMonth.
func TestCaracterizacion_AusenciasAcumuladasDescontadasDelMes(t *testing.T) {
	assert.Equal(t, 40, payroll.AbsencesChargedToMonth(40))

	in := payroll.Input{
		HireDate:            date(2022, time.January, 3),
		AbsentDays:          40,
		MonthlySalary:       decimal.NewFromInt(3000),
		WorkingDaysPerMonth: 22,
	}
	for _, now := range []time.Time{
		date(2024, time.April, 10),
		date(2024, time.May, 10),
		date(2025, time.September, 10),
	} {
		f := payroll.Calculate(in, now)
		assert.Equal(t, 0, f.CurrentMonthWorkingDays, "mes %s", now.Format("2006-01"))
		assert.True(t, f.CalculatedSalary.IsZero())
	}
}
