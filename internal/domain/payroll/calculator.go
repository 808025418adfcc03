// Package payroll calcula los valores derivados de un empleado: días trabajados desde la
// contratación y salario prorrateado del mes en curso.
//
// Todas las funciones son puras y totales: "now" se inyecta y las entradas fuera de rango
// se acotan (clamp) en lugar de producir error. Validar negativos es responsabilidad del llamador.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input datos del empleado necesarios para el cálculo.
type Input struct {
	HireDate            time.Time
	AbsentDays          int
	MonthlySalary       decimal.Decimal
	WorkingDaysPerMonth int
}

// Figures valores derivados (nunca se persisten).
type Figures struct {
	WorkingDays             int             // días trabajados desde la contratación
	CurrentMonthWorkingDays int             // días hábiles del mes actual menos ausencias
	DailyRate               decimal.Decimal // salario mensual / días laborables por mes
	CalculatedSalary        decimal.Decimal // salario prorrateado del mes actual
}

// Calculate compone todas las reglas para un empleado en el instante now.
func Calculate(in Input, now time.Time) Figures {
	monthDays := CurrentMonthWorkingDays(now, in.AbsentDays)
	return Figures{
		WorkingDays:             WorkingDaysSinceHire(in.HireDate, in.AbsentDays, now),
		CurrentMonthWorkingDays: monthDays,
		DailyRate:               DailyRate(in.MonthlySalary, in.WorkingDaysPerMonth),
		CalculatedSalary:        ProrateSalary(in.MonthlySalary, in.WorkingDaysPerMonth, monthDays),
	}
}

// DaysBetween días de calendario completos entre las fechas civiles de from y to.
// Ignora la hora del día y los cambios de horario de verano. Negativo si to es anterior a from.
func DaysBetween(from, to time.Time) int {
	a := civilDate(from)
	b := civilDate(to)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkingDaysSinceHire = max(0, DaysBetween(hireDate, now) - absentDays).
func WorkingDaysSinceHire(hireDate time.Time, absentDays int, now time.Time) int {
	return clamp(DaysBetween(hireDate, now) - absentDays)
}

// BusinessDaysInMonth cuenta los días de lunes a viernes del mes que contiene now.
// No considera festivos.
func BusinessDaysInMonth(now time.Time) int {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == m; d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// AbsencesChargedToMonth ausencias que se descuentan de los días hábiles del mes.
//
// Hoy se descuenta el acumulado completo desde la contratación, no solo las ausencias del mes:
// un empleado con 40 ausencias acumuladas queda con 0 días trabajados cada mes.
// El comportamiento se conserva tal cual; corregirlo a ausencias del mes se hace aquí.
func AbsencesChargedToMonth(absentDays int) int {
	return absentDays
}

// CurrentMonthWorkingDays = max(0, BusinessDaysInMonth(now) - AbsencesChargedToMonth(absentDays)).
func CurrentMonthWorkingDays(now time.Time, absentDays int) int {
	return clamp(BusinessDaysInMonth(now) - AbsencesChargedToMonth(absentDays))
}

// DailyRate salario diario = mensual / días laborables por mes. Cero si el divisor no es positivo.
func DailyRate(monthlySalary decimal.Decimal, workingDaysPerMonth int) decimal.Decimal {
	if workingDaysPerMonth <= 0 {
		return decimal.Zero
	}
	return monthlySalary.Div(decimal.NewFromInt(int64(workingDaysPerMonth)))
}

// ProrateSalary salario de days días: mensual / díasPorMes * days.
// Se multiplica antes de dividir para que los resultados exactos (3000*11/22 = 1500) no
// arrastren el redondeo de la división. Cero si workingDaysPerMonth no es positivo; days negativos cuentan como 0.
func ProrateSalary(monthlySalary decimal.Decimal, workingDaysPerMonth, days int) decimal.Decimal {
	if workingDaysPerMonth <= 0 {
		return decimal.Zero
	}
	return monthlySalary.
		Mul(decimal.NewFromInt(int64(clamp(days)))).
		Div(decimal.NewFromInt(int64(workingDaysPerMonth)))
}

// SalaryForAbsences salario de un mes con absentDays ausencias:
// DailyRate * max(0, workingDaysPerMonth - absentDays).
func SalaryForAbsences(monthlySalary decimal.Decimal, workingDaysPerMonth, absentDays int) decimal.Decimal {
	return ProrateSalary(monthlySalary, workingDaysPerMonth, workingDaysPerMonth-absentDays)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
