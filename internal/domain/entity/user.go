package entity

import "time"

// User representa una cuenta con acceso al sistema de nómina.
type User struct {
	ID           string
	Username     string // único
	Email        string // único
	PasswordHash string // cadena autodescriptiva del hasher de credenciales, nunca texto plano
	CreatedAt    time.Time
}
