package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/jwt"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Register crea un usuario con el rol USER y devuelve su token (registro + login).
// ErrEmailAlreadyExists si el email o el username ya existen (sin distinguir mayúsculas).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := NormalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = username
	}
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	if err := uc.ensureUnique(ctx, username, email); err != nil {
		return nil, err
	}

	role, err := uc.roleRepo.GetByName(ctx, entity.RoleUser)
	if err != nil {
		return nil, domain.Internal("get default role", err)
	}
	if role == nil {
		return nil, domain.Internal("get default role", errors.New("rol USER no sembrado"))
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Internal("create user", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return uc.issue(user)
}

func (uc *AuthUseCase) ensureUnique(ctx context.Context, username, email string) error {
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.Internal("get user by email", err)
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Internal("get user by username", err)
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// Login verifica email/password de un usuario activo, genera JWT y retorna token + usuario.
// Credenciales incorrectas y usuario inactivo responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y password son obligatorios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal("get user by email", err)
	}
	if user == nil || !user.IsActive {
		uc.log.Info().Str("email", email).Msg("login rechazado: usuario inexistente o inactivo")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Info().Int64("user_id", user.ID).Msg("login rechazado: contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RoleID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.Internal("sign token", err)
	}
	return &dto.LoginResponse{Token: token, User: dto.UserFromEntity(user)}, nil
}

// ── Validaciones compartidas con la administración de usuarios ───────────────

// HashPassword bcrypt con coste por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Internal("hash password", err)
	}
	return string(hash), nil
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername obligatorio, hasta 100 caracteres.
func ValidateUsername(username string) error {
	if username == "" {
		return domain.Invalid("el nombre de usuario es obligatorio")
	}
	if utf8.RuneCountInString(username) > 100 {
		return domain.Invalid("el nombre de usuario supera 100 caracteres")
	}
	return nil
}

// ValidateEmail formato RFC 5322 y hasta 255 caracteres.
func ValidateEmail(email string) error {
	if email == "" {
		return domain.Invalid("el email es obligatorio")
	}
	if len(email) > 255 {
		return domain.Invalid("el email supera 255 caracteres")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.Invalid("el email no es válido")
	}
	return nil
}

// ValidatePassword entre 6 y 255 caracteres.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 6 {
		return domain.Invalid("la contraseña debe tener al menos 6 caracteres")
	}
	if n > 255 {
		return domain.Invalid("la contraseña supera 255 caracteres")
	}
	return nil
}

// ValidateFullName obligatorio, hasta 200 caracteres.
func ValidateFullName(fullName string) error {
	if fullName == "" {
		return domain.Invalid("el nombre completo es obligatorio")
	}
	if utf8.RuneCountInString(fullName) > 200 {
		return domain.Invalid("el nombre completo supera 200 caracteres")
	}
	return nil
}
