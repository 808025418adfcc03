package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Empleados-api/internal/application/dto"
	"github.com/jhoicas/Empleados-api/internal/application/validation"
	"github.com/jhoicas/Empleados-api/internal/domain"
	"github.com/jhoicas/Empleados-api/internal/domain/entity"
	"github.com/jhoicas/Empleados-api/internal/domain/repository"
	"github.com/jhoicas/Empleados-api/pkg/jwt"
	"github.com/jhoicas/Empleados-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y resolución de sesión.
// Un usuario tiene como máximo una sesión activa: cada login o registro reemplaza la anterior.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tx       repository.TxRunner
	hasher   PasswordHasher
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tx repository.TxRunner,
	hasher PasswordHasher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		users:    users,
		sessions: sessions,
		tx:       tx,
		hasher:   hasher,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// SignUp registra un usuario nuevo y abre su sesión.
// Devuelve ErrUsernameAlreadyExists o ErrEmailAlreadyExists si alguno ya está tomado.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hashear contraseña: %w", err)
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	session := uc.newSession(user, now)

	err = uc.tx.Run(ctx, func(users repository.UserRepository, _ repository.EmployeeRepository, sessions repository.SessionRepository) error {
		existing, err := users.FindByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUsernameAlreadyExists
		}
		existing, err = users.FindByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return sessions.Create(ctx, session)
	})
	if err != nil {
		uc.log.Info().Str("username", user.Username).Err(err).Msg("registro rechazado")
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return uc.loginResponse(user, session)
}

// Login verifica usuario/contraseña y abre una sesión nueva, cerrando la anterior.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido")
		return nil, domain.ErrUnauthorized
	}

	if uc.hasher.NeedsRehash(user.PasswordHash) {
		uc.rehash(ctx, user, in.Password)
	}

	session := uc.newSession(user, uc.now())
	err = uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.EmployeeRepository, sessions repository.SessionRepository) error {
		if err := sessions.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		return sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("auth: abrir sesión: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("login exitoso")
	return uc.loginResponse(user, session)
}

// rehash regenera el hash con los parámetros actuales. Un fallo no impide el login.
func (uc *AuthUseCase) rehash(ctx context.Context, user *entity.User, password string) {
	hash, err := uc.hasher.Hash(password)
	if err == nil {
		err = uc.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		uc.log.Warn().Str("user_id", user.ID).Err(err).Msg("no se pudo actualizar el hash")
		return
	}
	user.PasswordHash = hash
	uc.log.Info().Str("user_id", user.ID).Msg("hash de contraseña actualizado")
}

// Logout cierra la sesión. Sin sesión devuelve ErrNotLoggedIn.
func (uc *AuthUseCase) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return domain.ErrNotLoggedIn
	}
	if err := uc.sessions.DeleteByID(ctx, session.ID); err != nil {
		return fmt.Errorf("auth: cerrar sesión: %w", err)
	}
	uc.log.Info().Str("user_id", session.UserID).Str("session_id", session.ID).Msg("logout")
	return nil
}

// Authenticate resuelve el token a la sesión activa que representa.
// Token inválido → ErrUnauthorized; sesión cerrada, reemplazada o vencida → ErrSessionExpired.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	session, err := uc.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar sesión: %w", err)
	}
	if session == nil || session.Expired(uc.now()) {
		return nil, domain.ErrSessionExpired
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// Me devuelve el usuario dueño de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, session *entity.Session) (*dto.UserResponse, error) {
	if session == nil {
		return nil, domain.ErrNotLoggedIn
	}
	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// IsAuthError indica si err corresponde a credenciales o sesión inválidas.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrSessionExpired) ||
		errors.Is(err, domain.ErrNotLoggedIn)
}

func (uc *AuthUseCase) newSession(user *entity.User, now time.Time) *entity.Session {
	return &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
}

func (uc *AuthUseCase) loginResponse(user *entity.User, session *entity.Session) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, session.ID, user.ID, user.Username, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
