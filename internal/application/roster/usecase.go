package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/validation"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/payroll"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// RosterUseCase CRUD de empleados con los valores de nómina derivados.
// Todas las operaciones exigen una sesión activa; sin ella devuelven ErrNotLoggedIn.
type RosterUseCase struct {
	employees          repository.EmployeeRepository
	tx                 repository.TxRunner
	report             PayrollReportGenerator
	defaultWorkingDays int
	log                *logger.Logger
	now                func() time.Time
}

// NewRosterUseCase construye el caso de uso. report puede ser nil si no se exporta PDF.
func NewRosterUseCase(
	employees repository.EmployeeRepository,
	tx repository.TxRunner,
	report PayrollReportGenerator,
	defaultWorkingDays int,
	log *logger.Logger,
) *RosterUseCase {
	if defaultWorkingDays <= 0 {
		defaultWorkingDays = entity.DefaultWorkingDaysPerMonth
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RosterUseCase{
		employees:          employees,
		tx:                 tx,
		report:             report,
		defaultWorkingDays: defaultWorkingDays,
		log:                log.Component("roster"),
		now:                time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RosterUseCase) WithClock(now func() time.Time) *RosterUseCase {
	uc.now = now
	return uc
}

func requireSession(s *entity.Session) error {
	if s == nil {
		return domain.ErrNotLoggedIn
	}
	return nil
}

// Add da de alta un empleado con 0 ausencias. El email debe ser único en la nómina.
func (uc *RosterUseCase) Add(ctx context.Context, s *entity.Session, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	now := uc.now()
	emp, err := uc.newEmployee(in, now)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(_ repository.UserRepository, employees repository.EmployeeRepository, _ repository.SessionRepository) error {
		return insertEmployee(ctx, employees, emp)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user", s.Username).Str("employee_id", emp.ID).Msg("empleado creado")
	return toEmployeeResponse(emp, now), nil
}

// List devuelve todos los empleados enriquecidos con los valores derivados.
func (uc *RosterUseCase) List(ctx context.Context, s *entity.Session) ([]*dto.EmployeeResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	list, err := uc.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster: listar empleados: %w", err)
	}
	now := uc.now()
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e, now))
	}
	return out, nil
}

// Get obtiene un empleado por ID. ErrEmployeeNotFound si no existe.
func (uc *RosterUseCase) Get(ctx context.Context, s *entity.Session, id string) (*dto.EmployeeResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	emp, err := uc.getEmployee(ctx, uc.employees, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp, uc.now()), nil
}

// Update edita todos los campos del empleado. Rechaza un email que ya usa otro empleado
// y ausencias que superen los días transcurridos desde la (nueva) fecha de contratación.
func (uc *RosterUseCase) Update(ctx context.Context, s *entity.Session, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	normalizeUpdate(&in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hireDate, err := parseDate(in.HireDate)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := checkAbsentDays(hireDate, in.AbsentDays, now); err != nil {
		return nil, err
	}

	var updated *entity.Employee
	err = uc.tx.Run(ctx, func(_ repository.UserRepository, employees repository.EmployeeRepository, _ repository.SessionRepository) error {
		emp, err := uc.getEmployee(ctx, employees, id)
		if err != nil {
			return err
		}
		other, err := employees.FindByEmailExcluding(ctx, in.Email, id)
		if err != nil {
			return err
		}
		if other != nil {
			return domain.ErrEmployeeEmailExists
		}
		emp.Name = in.Name
		emp.Email = in.Email
		emp.Department = in.Department
		emp.HireDate = hireDate
		emp.AbsentDays = in.AbsentDays
		emp.MonthlySalary = in.MonthlySalary
		emp.WorkingDaysPerMonth = in.WorkingDaysPerMonth
		emp.UpdatedAt = now
		updated = emp
		return employees.Update(ctx, emp)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user", s.Username).Str("employee_id", id).Msg("empleado actualizado")
	return toEmployeeResponse(updated, now), nil
}

// Delete elimina un empleado. ErrEmployeeNotFound si no existe.
func (uc *RosterUseCase) Delete(ctx context.Context, s *entity.Session, id string) error {
	if err := requireSession(s); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(_ repository.UserRepository, employees repository.EmployeeRepository, _ repository.SessionRepository) error {
		if _, err := uc.getEmployee(ctx, employees, id); err != nil {
			return err
		}
		return employees.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user", s.Username).Str("employee_id", id).Msg("empleado eliminado")
	return nil
}

// UpdateAbsentDays fija el contador acumulado de ausencias.
// Rechaza negativos (ErrInvalidInput) y valores mayores a los días desde la contratación (ErrAbsentDaysExceeded).
func (uc *RosterUseCase) UpdateAbsentDays(ctx context.Context, s *entity.Session, id string, absentDays int) (*dto.EmployeeResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	if absentDays < 0 {
		return nil, fmt.Errorf("%w: los días de ausencia no pueden ser negativos", domain.ErrInvalidInput)
	}

	now := uc.now()
	var updated *entity.Employee
	err := uc.tx.Run(ctx, func(_ repository.UserRepository, employees repository.EmployeeRepository, _ repository.SessionRepository) error {
		emp, err := uc.getEmployee(ctx, employees, id)
		if err != nil {
			return err
		}
		if err := checkAbsentDays(emp.HireDate, absentDays, now); err != nil {
			return err
		}
		if err := employees.UpdateAbsentDays(ctx, id, absentDays); err != nil {
			return err
		}
		emp.AbsentDays = absentDays
		updated = emp
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user", s.Username).Str("employee_id", id).Int("absent_days", absentDays).Msg("ausencias actualizadas")
	return toEmployeeResponse(updated, now), nil
}

// CalculateSalary salario de un mes del empleado si tuviera absentDays ausencias.
func (uc *RosterUseCase) CalculateSalary(ctx context.Context, s *entity.Session, id string, absentDays int) (*dto.SalaryResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	if absentDays < 0 {
		return nil, fmt.Errorf("%w: los días de ausencia no pueden ser negativos", domain.ErrInvalidInput)
	}
	emp, err := uc.getEmployee(ctx, uc.employees, id)
	if err != nil {
		return nil, err
	}
	return &dto.SalaryResponse{
		EmployeeID:          emp.ID,
		AbsentDays:          absentDays,
		WorkingDaysPerMonth: emp.WorkingDaysPerMonth,
		DailyRate:           payroll.DailyRate(emp.MonthlySalary, emp.WorkingDaysPerMonth),
		Salary:              payroll.SalaryForAbsences(emp.MonthlySalary, emp.WorkingDaysPerMonth, absentDays),
	}, nil
}

// ExportCSV exporta la nómina completa en CSV.
func (uc *RosterUseCase) ExportCSV(ctx context.Context, s *entity.Session) (string, error) {
	list, err := uc.List(ctx, s)
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("user", s.Username).Int("rows", len(list)).Msg("nómina exportada a CSV")
	return BuildCSV(list), nil
}

// ExportPDF genera el reporte de nómina en PDF.
func (uc *RosterUseCase) ExportPDF(ctx context.Context, s *entity.Session) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("roster: generador de PDF no configurado")
	}
	list, err := uc.List(ctx, s)
	if err != nil {
		return nil, err
	}
	report := &PayrollReport{
		GeneratedAt:           uc.now(),
		GeneratedBy:           s.Username,
		Employees:             list,
		TotalMonthlySalary:    decimal.Zero,
		TotalCalculatedSalary: decimal.Zero,
	}
	for _, e := range list {
		report.TotalMonthlySalary = report.TotalMonthlySalary.Add(e.MonthlySalary)
		report.TotalCalculatedSalary = report.TotalCalculatedSalary.Add(e.CalculatedSalary)
	}
	pdf, err := uc.report.GeneratePayrollPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("roster: generar PDF: %w", err)
	}
	return pdf, nil
}

// newEmployee valida la entrada y construye el empleado con 0 ausencias.
func (uc *RosterUseCase) newEmployee(in dto.CreateEmployeeRequest, now time.Time) (*entity.Employee, error) {
	normalizeCreate(&in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hireDate, err := parseDate(in.HireDate)
	if err != nil {
		return nil, err
	}
	wdpm := in.WorkingDaysPerMonth
	if wdpm == 0 {
		wdpm = uc.defaultWorkingDays
	}
	return &entity.Employee{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		Email:               in.Email,
		Department:          in.Department,
		HireDate:            hireDate,
		MonthlySalary:       in.MonthlySalary,
		WorkingDaysPerMonth: wdpm,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// insertEmployee inserta emp si su email no está registrado.
func insertEmployee(ctx context.Context, employees repository.EmployeeRepository, emp *entity.Employee) error {
	existing, err := employees.FindByEmail(ctx, emp.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmployeeEmailExists
	}
	return employees.Create(ctx, emp)
}

// getEmployee ErrEmployeeNotFound también para IDs que no son UUID: ningún empleado los tiene.
func (uc *RosterUseCase) getEmployee(ctx context.Context, repo repository.EmployeeRepository, id string) (*entity.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roster: obtener empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return emp, nil
}

func checkAbsentDays(hireDate time.Time, absentDays int, now time.Time) error {
	elapsed := payroll.DaysBetween(hireDate, now)
	if absentDays > elapsed {
		return fmt.Errorf("%w: %d ausencias, %d días desde la contratación", domain.ErrAbsentDaysExceeded, absentDays, elapsed)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: hire_date debe tener formato %s", domain.ErrInvalidInput, dto.DateLayout)
	}
	return t, nil
}

func normalizeCreate(in *dto.CreateEmployeeRequest) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Department = strings.TrimSpace(in.Department)
	in.HireDate = strings.TrimSpace(in.HireDate)
}

func normalizeUpdate(in *dto.UpdateEmployeeRequest) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Department = strings.TrimSpace(in.Department)
	in.HireDate = strings.TrimSpace(in.HireDate)
}

// toEmployeeResponse enriquece el empleado con los valores de payroll en el instante now.
func toEmployeeResponse(e *entity.Employee, now time.Time) *dto.EmployeeResponse {
	f := payroll.Calculate(payroll.Input{
		HireDate:            e.HireDate,
		AbsentDays:          e.AbsentDays,
		MonthlySalary:       e.MonthlySalary,
		WorkingDaysPerMonth: e.WorkingDaysPerMonth,
	}, now)
	return &dto.EmployeeResponse{
		ID:                      e.ID,
		Name:                    e.Name,
		Email:                   e.Email,
		Department:              e.Department,
		HireDate:                e.HireDate.Format(dto.DateLayout),
		AbsentDays:              e.AbsentDays,
		MonthlySalary:           e.MonthlySalary,
		WorkingDaysPerMonth:     e.WorkingDaysPerMonth,
		WorkingDays:             f.WorkingDays,
		CurrentMonthWorkingDays: f.CurrentMonthWorkingDays,
		DailyRate:               f.DailyRate,
		CalculatedSalary:        f.CalculatedSalary,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
	}
}
