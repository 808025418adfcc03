package roster_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/Empleados-api/internal/application/roster"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

var errStorage = errors.New("conexión perdida")

// fakeEmployees repositorio en memoria que además actúa como TxRunner.
type fakeEmployees struct {
	mu      sync.Mutex
	byID    map[string]*entity.Employee
	listErr error
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{byID: map[string]*entity.Employee{}}
}

func (f *fakeEmployees) Run(_ context.Context, fn func(repository.UserRepository, repository.EmployeeRepository, repository.SessionRepository) error) error {
	f.mu.Lock()
	snapshot := make(map[string]*entity.Employee, len(f.byID))
	for k, v := range f.byID {
		snapshot[k] = v
	}
	f.mu.Unlock()

	if err := fn(nil, f, nil); err != nil {
		f.mu.Lock()
		f.byID = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeEmployees) put(e *entity.Employee) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.byID[e.ID] = &cp
}

func (f *fakeEmployees) Create(_ context.Context, e *entity.Employee) error {
	f.put(e)
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeEmployees) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return f.FindByEmailExcluding(ctx, email, "")
}

func (f *fakeEmployees) FindByEmailExcluding(_ context.Context, email, excludeID string) (*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Email == email && e.ID != excludeID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployees) Update(_ context.Context, e *entity.Employee) error {
	f.put(e)
	return nil
}

func (f *fakeEmployees) UpdateAbsentDays(_ context.Context, id string, absentDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		cp.AbsentDays = absentDays
		f.byID[id] = &cp
	}
	return nil
}

func (f *fakeEmployees) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeEmployees) List(_ context.Context) ([]*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*entity.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeReport captura el reporte recibido.
type fakeReport struct {
	got *roster.PayrollReport
}

func (f *fakeReport) GeneratePayrollPDF(_ context.Context, r *roster.PayrollReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}
