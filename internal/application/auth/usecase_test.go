package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/auth"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

type memSessionStore struct {
	sessions map[string]dto.SessionUser
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]dto.SessionUser)}
}

func (s *memSessionStore) Put(_ context.Context, token string, user dto.SessionUser, _ time.Duration) error {
	s.sessions[token] = user
	return nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*dto.SessionUser, error) {
	user, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newUseCase() (*auth.UseCase, *memUserRepo, *memSessionStore) {
	users := newMemUserRepo()
	sessions := newMemSessionStore()
	return auth.NewUseCase(users, sessions, time.Hour), users, sessions
}

func registerDemo(t *testing.T, uc *auth.UseCase, username, role string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    username + "@crm.local",
		Password: "password123",
		FullName: "Usuario " + username,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// Sin rol explícito, el registro asigna sales_executive.
func TestRegister_RolPorDefecto(t *testing.T) {
	uc, users, _ := newUseCase()

	out := registerDemo(t, uc, "valeria", "")
	assert.Equal(t, entity.RoleSalesExecutive, out.Role)

	// La credencial se persiste hasheada, nunca en claro.
	stored, err := users.GetByUsername(context.Background(), "valeria")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "x", Email: "x@crm.local", Password: "password123",
		FullName: "X", Role: "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_Colisiones(t *testing.T) {
	uc, _, _ := newUseCase()
	registerDemo(t, uc, "valeria", "")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "valeria", Email: "otra@crm.local", Password: "password123", FullName: "V",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "otra", Email: "valeria@crm.local", Password: "password123", FullName: "V",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout / Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AbreSesionResolvible(t *testing.T) {
	uc, _, _ := newUseCase()
	registered := registerDemo(t, uc, "valeria", entity.RoleManager)

	token, user, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: "valeria", Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	session, err := uc.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, registered.ID, session.ID)
	assert.Equal(t, entity.RoleManager, session.Role)
}

// Usuario inexistente y password incorrecto fallan igual: el error no debe
// filtrar cuál de los dos fue.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := newUseCase()
	registerDemo(t, uc, "valeria", "")

	_, _, errNoUser := uc.Login(context.Background(), dto.LoginRequest{
		Username: "nadie", Password: "password123",
	})
	_, _, errBadPass := uc.Login(context.Background(), dto.LoginRequest{
		Username: "valeria", Password: "incorrecta",
	})

	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.Equal(t, errNoUser.Error(), errBadPass.Error())
}

func TestLogout_RevocaLaSesion(t *testing.T) {
	uc, _, _ := newUseCase()
	registerDemo(t, uc, "valeria", "")

	token, _, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: "valeria", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), token))

	session, err := uc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, session, "la sesión revocada no debe resolver")

	// Revocar de nuevo no es error.
	assert.NoError(t, uc.Logout(context.Background(), token))
}

func TestResolve_TokenVacio(t *testing.T) {
	uc, _, _ := newUseCase()
	session, err := uc.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, session)
}
