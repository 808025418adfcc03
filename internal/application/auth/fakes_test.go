package auth_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
)

var errStorage = errors.New("conexión perdida")

// fakeStore almacén en memoria que implementa los repos de usuario y sesión y el TxRunner.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	sessions map[string]*entity.Session

	findErr   error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*entity.User{}, sessions: map[string]*entity.Session{}}
}

func (s *fakeStore) Users() repository.UserRepository       { return fakeUsers{s} }
func (s *fakeStore) Sessions() repository.SessionRepository { return fakeSessions{s} }

// Run ejecuta fn sobre una copia y solo la confirma si fn no falla.
func (s *fakeStore) Run(_ context.Context, fn func(repository.UserRepository, repository.EmployeeRepository, repository.SessionRepository) error) error {
	s.mu.Lock()
	users := make(map[string]*entity.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	sessions := make(map[string]*entity.Session, len(s.sessions))
	for k, v := range s.sessions {
		sessions[k] = v
	}
	s.mu.Unlock()

	tx := &fakeStore{users: users, sessions: sessions, findErr: s.findErr, updateErr: s.updateErr}
	if err := fn(fakeUsers{tx}, nil, fakeSessions{tx}); err != nil {
		return err
	}

	s.mu.Lock()
	s.users, s.sessions = tx.users, tx.sessions
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) sessionsOf(userID string) []*entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out
}

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r fakeUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.findErr != nil {
		return nil, r.s.findErr
	}
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r fakeUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateErr != nil {
		return r.s.updateErr
	}
	if u, ok := r.s.users[id]; ok {
		cp := *u
		cp.PasswordHash = hash
		r.s.users[id] = &cp
	}
	return nil
}

type fakeSessions struct{ s *fakeStore }

func (r fakeSessions) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return nil
}

func (r fakeSessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (r fakeSessions) DeleteByID(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r fakeSessions) DeleteByUserID(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}
