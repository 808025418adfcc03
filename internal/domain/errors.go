package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmployeeNotFound      = errors.New("empleado no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya existe")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrEmployeeEmailExists   = errors.New("ya existe un empleado con este email")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("usuario o contraseña inválidos")
	ErrNotLoggedIn           = errors.New("usuario no ha iniciado sesión")
	ErrSessionExpired        = errors.New("sesión expirada o inexistente")
	ErrAbsentDaysExceeded    = errors.New("los días de ausencia superan los días desde la contratación")
)
