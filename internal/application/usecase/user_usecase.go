package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/hospital-inventory/internal/application/auth"
	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo      repository.UserRepository
	roles     repository.RoleRepository
	catalogs  repository.CatalogRepository
	movements repository.InventoryMovementRepository
	log       *logger.Logger
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(
	repo repository.UserRepository,
	roles repository.RoleRepository,
	catalogs repository.CatalogRepository,
	movements repository.InventoryMovementRepository,
	log *logger.Logger,
) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{
		repo:      repo,
		roles:     roles,
		catalogs:  catalogs,
		movements: movements,
		log:       log.Component("users"),
	}
}

// List lista usuarios; username es búsqueda parcial y role el nombre exacto del rol.
func (uc *UserUseCase) List(ctx context.Context, username, role string) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, entity.UserFilter{
		Username: strings.TrimSpace(username),
		RoleName: strings.ToUpper(strings.TrimSpace(role)),
	})
	if err != nil {
		return nil, domain.Internal("list users", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UserFromEntity(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID. ErrNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

func (uc *UserUseCase) get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// Create alta administrativa de un usuario con rol explícito.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := auth.NormalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if err := auth.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := auth.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := auth.ValidateFullName(fullName); err != nil {
		return nil, err
	}
	role, err := uc.role(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, 0, username, email); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Username:  username,
		Email:     email,
		FullName:  fullName,
		Phone:     trimmed(in.Phone),
		IsActive:  in.IsActive == nil || *in.IsActive,
		RoleID:    role.ID,
		RoleName:  role.Name,
		DeptID:    positiveRef(in.DeptID),
		RankID:    positiveRef(in.RankID),
		FloorID:   positiveRef(in.FloorID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.checkRefs(ctx, user); err != nil {
		return nil, err
	}
	if user.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, domain.Internal("create user", err)
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", role.Name).Msg("usuario creado")
	return uc.GetByID(ctx, user.ID)
}

// Update actualización parcial. Un password no vacío se re-hashea.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyIdentity(ctx, user, in.Username, in.Email); err != nil {
		return nil, err
	}
	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		if err := auth.ValidateFullName(fullName); err != nil {
			return nil, err
		}
		user.FullName = fullName
	}
	if in.Phone != nil {
		user.Phone = trimmed(in.Phone)
	}
	if in.RoleID != nil {
		role, err := uc.role(ctx, *in.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID, user.RoleName = role.ID, role.Name
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	patchRef(&user.DeptID, in.DeptID)
	patchRef(&user.RankID, in.RankID)
	patchRef(&user.FloorID, in.FloorID)
	if err := uc.checkRefs(ctx, user); err != nil {
		return nil, err
	}
	return uc.save(ctx, user, in.Password)
}

// UpdateProfile el propio usuario cambia su username, email o contraseña.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actorID int64, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := uc.applyIdentity(ctx, user, in.Username, in.Email); err != nil {
		return nil, err
	}
	return uc.save(ctx, user, in.Password)
}

func (uc *UserUseCase) applyIdentity(ctx context.Context, user *entity.User, username, email *string) error {
	newUsername, newEmail := user.Username, user.Email
	if username != nil {
		newUsername = strings.TrimSpace(*username)
		if err := auth.ValidateUsername(newUsername); err != nil {
			return err
		}
	}
	if email != nil {
		newEmail = auth.NormalizeEmail(*email)
		if err := auth.ValidateEmail(newEmail); err != nil {
			return err
		}
	}
	if err := uc.ensureUnique(ctx, user.ID, newUsername, newEmail); err != nil {
		return err
	}
	user.Username, user.Email = newUsername, newEmail
	return nil
}

func (uc *UserUseCase) save(ctx context.Context, user *entity.User, password *string) (*dto.UserResponse, error) {
	var hash string
	if password != nil && *password != "" {
		if err := auth.ValidatePassword(*password); err != nil {
			return nil, err
		}
		var err error
		if hash, err = auth.HashPassword(*password); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, domain.Internal("update user", err)
	}
	if hash != "" {
		if err := uc.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, domain.Internal("update password", err)
		}
		uc.log.Info().Int64("user_id", user.ID).Msg("contraseña actualizada")
	}
	return uc.GetByID(ctx, user.ID)
}

// Delete elimina un usuario. Sus ítems vuelven al almacén; si tiene movimientos
// registrados responde ErrConflict (el libro conserva al autor).
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domain.Invalid("no puedes eliminar tu propio usuario")
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.movements.CountByUser(ctx, id)
	if err != nil {
		return domain.Internal("count movements", err)
	}
	if n > 0 {
		return domain.ErrConflict
	}
	// items.user_id ON DELETE SET NULL devuelve sus ítems al almacén en la misma sentencia
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Internal("delete user", err)
	}
	uc.log.Info().Int64("user_id", id).Msg("usuario eliminado")
	return nil
}

// GetPermissions nombre del rol y filas de permisos tal como están almacenadas.
func (uc *UserUseCase) GetPermissions(ctx context.Context, id int64) (*dto.UserPermissionsResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.roles.ListPermissions(ctx, user.RoleID)
	if err != nil {
		return nil, domain.Internal("list permissions", err)
	}
	out := &dto.UserPermissionsResponse{
		UserID:      user.ID,
		RoleName:    user.RoleName,
		Permissions: make([]dto.PermissionResponse, 0, len(rows)),
	}
	for _, p := range rows {
		out.Permissions = append(out.Permissions, dto.PermissionResponse{
			Subject:   p.Subject,
			Action:    p.Action,
			FieldName: p.FieldName,
			CanAccess: p.CanAccess,
		})
	}
	return out, nil
}

func (uc *UserUseCase) role(ctx context.Context, id int64) (*entity.Role, error) {
	if id <= 0 {
		return nil, domain.Invalid("role_id es obligatorio")
	}
	role, err := uc.roles.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get role", err)
	}
	if role == nil {
		return nil, domain.MissingReference("rol", id)
	}
	return role, nil
}

func (uc *UserUseCase) ensureUnique(ctx context.Context, selfID int64, username, email string) error {
	other, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.Internal("get user by email", err)
	}
	if other != nil && other.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	other, err = uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Internal("get user by username", err)
	}
	if other != nil && other.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func (uc *UserUseCase) checkRefs(ctx context.Context, user *entity.User) error {
	if err := checkCatalogRef(ctx, uc.catalogs, entity.CatalogDepartment, user.DeptID); err != nil {
		return err
	}
	if err := checkCatalogRef(ctx, uc.catalogs, entity.CatalogRank, user.RankID); err != nil {
		return err
	}
	return checkCatalogRef(ctx, uc.catalogs, entity.CatalogFloor, user.FloorID)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
