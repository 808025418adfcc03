package roster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

// LegacyRecord fila de un CSV exportado por la versión de escritorio.
type LegacyRecord struct {
	Line       int
	Employee   dto.CreateEmployeeRequest
	AbsentDays int
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Imported int
	Skipped  int // email ya registrado
}

// ParseLegacyCSV lee un CSV con la cabecera CSVHeader. Los campos no vienen escapados, así que
// una fila se resuelve desde los extremos: Id al inicio, las cinco columnas numéricas y de fecha
// al final, y en medio nombre y departamento separados por el único campo con "@" (el email).
func ParseLegacyCSV(r io.Reader) ([]LegacyRecord, error) {
	sc := bufio.NewScanner(r)
	var records []LegacyRecord
	header := false
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !header {
			if strings.TrimSpace(text) != CSVHeader {
				return nil, fmt.Errorf("%w: línea %d: cabecera inesperada", domain.ErrInvalidInput, line)
			}
			header = true
			continue
		}
		rec, err := parseLegacyRow(text)
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidInput, line, err)
		}
		rec.Line = line
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if !header {
		return nil, fmt.Errorf("%w: CSV vacío", domain.ErrInvalidInput)
	}
	return records, nil
}

func parseLegacyRow(text string) (LegacyRecord, error) {
	f := strings.Split(text, ",")
	n := len(f)
	if n < 9 {
		return LegacyRecord{}, fmt.Errorf("se esperaban 9 columnas, hay %d", n)
	}
	middle := f[1 : n-5]
	at := -1
	for i, v := range middle {
		if strings.Contains(v, "@") {
			if at >= 0 {
				return LegacyRecord{}, errors.New("más de un campo con @")
			}
			at = i
		}
	}
	if at <= 0 || at == len(middle)-1 {
		return LegacyRecord{}, errors.New("no se pudo ubicar nombre, email y departamento")
	}

	absent, err := strconv.Atoi(strings.TrimSpace(f[n-4]))
	if err != nil {
		return LegacyRecord{}, fmt.Errorf("AbsentDays: %v", err)
	}
	salary, err := decimal.NewFromString(strings.TrimSpace(f[n-2]))
	if err != nil {
		return LegacyRecord{}, fmt.Errorf("MonthlySalary: %v", err)
	}
	return LegacyRecord{
		Employee: dto.CreateEmployeeRequest{
			Name:          strings.Join(middle[:at], ","),
			Email:         middle[at],
			Department:    strings.Join(middle[at+1:], ","),
			HireDate:      strings.TrimSpace(f[n-5]),
			MonthlySalary: salary,
		},
		AbsentDays: absent,
	}, nil
}

// ImportLegacy da de alta cada registro con sus ausencias en una sola transacción por línea.
// Los emails ya registrados se omiten; cualquier otro error detiene la importación indicando
// la línea y esa línea no deja nada escrito.
func (uc *RosterUseCase) ImportLegacy(ctx context.Context, s *entity.Session, records []LegacyRecord) (ImportResult, error) {
	var res ImportResult
	if err := requireSession(s); err != nil {
		return res, err
	}
	for _, rec := range records {
		err := uc.importRecord(ctx, rec)
		if errors.Is(err, domain.ErrEmployeeEmailExists) {
			uc.log.Warn().Int("line", rec.Line).Str("email", rec.Employee.Email).Msg("empleado ya registrado, se omite")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", rec.Line, err)
		}
		res.Imported++
	}
	uc.log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("importación de CSV heredado")
	return res, nil
}

func (uc *RosterUseCase) importRecord(ctx context.Context, rec LegacyRecord) error {
	if rec.AbsentDays < 0 {
		return fmt.Errorf("%w: los días de ausencia no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := uc.now()
	emp, err := uc.newEmployee(rec.Employee, now)
	if err != nil {
		return err
	}
	if err := checkAbsentDays(emp.HireDate, rec.AbsentDays, now); err != nil {
		return err
	}
	emp.AbsentDays = rec.AbsentDays
	return uc.tx.Run(ctx, func(_ repository.UserRepository, employees repository.EmployeeRepository, _ repository.SessionRepository) error {
		return insertEmployee(ctx, employees, emp)
	})
}
