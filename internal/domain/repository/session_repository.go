package repository

import (
	"context"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para Session.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// GetByID devuelve (nil, nil) si la sesión no existe.
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID elimina todas las sesiones del usuario (una sola sesión activa por usuario).
	DeleteByUserID(ctx context.Context, userID string) error
}
