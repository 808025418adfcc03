package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.SessionRepository  = (*SessionRepo)(nil)
)

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo implementación de UserRepository sobre GORM.
type UserRepo struct {
	db *gorm.DB
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(userFromEntity(u)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (r *UserRepo) first(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return m.toEntity(), nil
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// EmployeeRepo implementación de EmployeeRepository sobre GORM.
type EmployeeRepo struct {
	db *gorm.DB
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	if err := r.db.WithContext(ctx).Create(employeeFromEntity(e)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %w", domain.ErrDuplicate, domain.ErrEmployeeEmailExists)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *EmployeeRepo) FindByEmailExcluding(ctx context.Context, email, excludeID string) (*entity.Employee, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("email = ? AND id <> ?", email, excludeID))
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	if err := r.db.WithContext(ctx).Save(employeeFromEntity(e)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %w", domain.ErrDuplicate, domain.ErrEmployeeEmailExists)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) UpdateAbsentDays(ctx context.Context, id string, absentDays int) error {
	err := r.db.WithContext(ctx).Model(&employeeModel{}).Where("id = ?", id).Update("absent_days", absentDays).Error
	if err != nil {
		return fmt.Errorf("update absent days: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&employeeModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	var models []employeeModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	list := make([]*entity.Employee, 0, len(models))
	for i := range models {
		e, err := models[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", models[i].ID, err)
		}
		list = append(list, e)
	}
	return list, nil
}

func (r *EmployeeRepo) first(_ context.Context, q *gorm.DB) (*entity.Employee, error) {
	var m employeeModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return m.toEntity()
}

// ── Sesiones ──────────────────────────────────────────────────────────────────

// SessionRepo implementación de SessionRepository sobre GORM.
type SessionRepo struct {
	db *gorm.DB
}

func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	m := &sessionModel{ID: s.ID, UserID: s.UserID, Username: s.Username, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	var m sessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return m.toEntity(), nil
}

func (r *SessionRepo) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&sessionModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Delete(&sessionModel{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}
