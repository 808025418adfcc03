package entity

import "time"

// Session sesión activa de un usuario. Reemplaza el "usuario actual" implícito:
// cada operación de nómina recibe la sesión de forma explícita.
type Session struct {
	ID        string
	UserID    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica si la sesión ya no es válida en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
