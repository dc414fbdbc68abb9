package repository

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail compara sin distinguir mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdatePassword guarda un hash bcrypt ya calculado.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)
}

// RoleRepository roles y sus filas de permisos.
type RoleRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	// ListPermissions devuelve las filas del rol en orden de inserción.
	ListPermissions(ctx context.Context, roleID int64) ([]entity.Permission, error)
}
