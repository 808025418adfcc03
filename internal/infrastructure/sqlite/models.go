package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

const hireDateLayout = "2006-01-02"

type userModel struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toEntity() *entity.User {
	return &entity.User{ID: m.ID, Username: m.Username, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}

func userFromEntity(u *entity.User) *userModel {
	return &userModel{ID: u.ID, Username: u.Username, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
}

// employeeModel guarda el salario como texto para no perder exactitud
// (la afinidad NUMERIC de SQLite lo convertiría a REAL) y la fecha como yyyy-mm-dd.
type employeeModel struct {
	ID                  string          `gorm:"primaryKey;type:text"`
	Name                string          `gorm:"not null"`
	Email               string          `gorm:"uniqueIndex;not null"`
	Department          string          `gorm:"not null"`
	HireDate            string          `gorm:"type:text;not null"`
	AbsentDays          int             `gorm:"not null;default:0"`
	MonthlySalary       decimal.Decimal `gorm:"type:text;not null"`
	WorkingDaysPerMonth int             `gorm:"not null;default:22"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (employeeModel) TableName() string { return "employees" }

func (m *employeeModel) toEntity() (*entity.Employee, error) {
	hire, err := time.Parse(hireDateLayout, m.HireDate)
	if err != nil {
		return nil, err
	}
	return &entity.Employee{
		ID:                  m.ID,
		Name:                m.Name,
		Email:               m.Email,
		Department:          m.Department,
		HireDate:            hire,
		AbsentDays:          m.AbsentDays,
		MonthlySalary:       m.MonthlySalary,
		WorkingDaysPerMonth: m.WorkingDaysPerMonth,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

func employeeFromEntity(e *entity.Employee) *employeeModel {
	return &employeeModel{
		ID:                  e.ID,
		Name:                e.Name,
		Email:               e.Email,
		Department:          e.Department,
		HireDate:            e.HireDate.Format(hireDateLayout),
		AbsentDays:          e.AbsentDays,
		MonthlySalary:       e.MonthlySalary,
		WorkingDaysPerMonth: e.WorkingDaysPerMonth,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

type sessionModel struct {
	ID        string `gorm:"primaryKey;type:text"`
	UserID    string `gorm:"index;not null"`
	Username  string `gorm:"not null"`
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (sessionModel) TableName() string { return "sessions" }

func (m *sessionModel) toEntity() *entity.Session {
	return &entity.Session{ID: m.ID, UserID: m.UserID, Username: m.Username, CreatedAt: m.CreatedAt, ExpiresAt: m.ExpiresAt}
}
