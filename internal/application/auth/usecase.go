package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// SessionStore es el puerto del almacén de sesiones opacas de servidor.
// El token es aleatorio y no lleva información: todo vive del lado servidor.
type SessionStore interface {
	// Put guarda el snapshot bajo el token con el TTL dado.
	Put(ctx context.Context, token string, user dto.SessionUser, ttl time.Duration) error
	// Get devuelve el snapshot o (nil, nil) si la sesión no existe o expiró.
	Get(ctx context.Context, token string) (*dto.SessionUser, error)
	// Delete revoca la sesión. Revocar una sesión inexistente no es error.
	Delete(ctx context.Context, token string) error
}

// UseCase casos de uso de autenticación: registro, login, logout y
// resolución de sesión para el middleware.
type UseCase struct {
	users      repository.UserRepository
	sessions   SessionStore
	sessionTTL time.Duration
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, sessions SessionStore, sessionTTL time.Duration) *UseCase {
	return &UseCase{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrUsernameTaken o ErrEmailAlreadyExists en colisión.
// El rol por defecto es sales_executive.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleSalesExecutive
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	if existing, _ := uc.users.GetByUsername(ctx, in.Username); existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if existing, _ := uc.users.GetByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Login verifica username/password y abre una sesión opaca.
// Devuelve el token de sesión (va en la cookie) y el usuario sanitizado.
// El mensaje de error no distingue usuario inexistente de password incorrecto.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *dto.UserResponse, error) {
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token := uuid.NewString()
	if err := uc.sessions.Put(ctx, token, dto.NewSessionUser(user), uc.sessionTTL); err != nil {
		return "", nil, err
	}
	return token, dto.NewUserResponse(user), nil
}

// Logout revoca la sesión del token.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, token)
}

// Resolve devuelve el snapshot de la sesión o (nil, nil) si no hay sesión
// válida. Lo usa el middleware de autenticación en cada request.
func (uc *UseCase) Resolve(ctx context.Context, token string) (*dto.SessionUser, error) {
	if token == "" {
		return nil, nil
	}
	return uc.sessions.Get(ctx, token)
}
