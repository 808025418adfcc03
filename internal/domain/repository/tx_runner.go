package repository

import "context"

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(users UserRepository, employees EmployeeRepository, sessions SessionRepository) error) error
}
