package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospital-inventory/internal/application/auth"
	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/jwt"
)

type memUsers struct {
	repository.UserRepository
	byID map[int64]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(m.byID) + 1)
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memRoles struct {
	repository.RoleRepository
}

func (memRoles) GetByName(_ context.Context, name string) (*entity.Role, error) {
	if name == entity.RoleUser {
		return &entity.Role{ID: 6, Name: entity.RoleUser}, nil
	}
	return nil, nil
}

const secret = "secreto-de-pruebas"

func newAuth(users *memUsers) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, memRoles{}, auth.JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "test"}, nil)
}

func TestRegister_RolUSERYToken(t *testing.T) {
	users := newMemUsers()
	uc := newAuth(users)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "nurse1", Email: "  Nurse1@Hospital.org ", Password: "secreta",
	})
	require.NoError(t, err)
	assert.Equal(t, "nurse1@hospital.org", out.User.Email)
	assert.Equal(t, "nurse1", out.User.FullName, "full_name por defecto es el username")
	assert.Equal(t, int64(6), out.User.RoleID)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, int64(6), claims.RoleID)

	stored := users.byID[out.User.ID]
	assert.NotEqual(t, "secreta", stored.PasswordHash)
}

func TestRegister_Duplicado(t *testing.T) {
	users := newMemUsers()
	uc := newAuth(users)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "a", Email: "a@h.org", Password: "123456"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "b", Email: "A@H.ORG", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "A", Email: "c@h.org", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuth(newMemUsers())
	cases := map[string]dto.RegisterRequest{
		"sin username":     {Email: "x@h.org", Password: "123456"},
		"email inválido":   {Username: "x", Email: "no-es-email", Password: "123456"},
		"password corto":   {Username: "x", Email: "x@h.org", Password: "123"},
		"username extenso": {Username: strings.Repeat("u", 101), Email: "x@h.org", Password: "123456"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	users := newMemUsers()
	uc := newAuth(users)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "doc", Email: "doc@h.org", Password: "clave123"})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "DOC@h.org", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "doc@h.org", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@h.org", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	for _, u := range users.byID {
		u.IsActive = false
	}
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "doc@h.org", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inactivo")

	_, err = uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
