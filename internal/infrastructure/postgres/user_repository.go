package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.user_id, u.username, u.email, u.password_hash, u.full_name, u.phone, u.is_active,
	       u.role_id, u.dept_id, u.rank_id, u.floor_id, u.created_at, u.updated_at,
	       r.role_name, d.dept_name, rk.rank_name, f.floor_name
	FROM users u
	JOIN roles r ON r.role_id = u.role_id
	LEFT JOIN departments d ON d.dept_id = u.dept_id
	LEFT JOIN ranks rk ON rk.rank_id = u.rank_id
	LEFT JOIN floors f ON f.floor_id = u.floor_id`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.IsActive,
		&u.RoleID, &u.DeptID, &u.RankID, &u.FloorID, &u.CreatedAt, &u.UpdatedAt,
		&u.RoleName, &u.DeptName, &u.RankName, &u.FloorName,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, phone, is_active, role_id,
		                   dept_id, rank_id, floor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING user_id`
	err := r.q.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Phone, user.IsActive, user.RoleID,
		user.DeptID, user.RankID, user.FloorID, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "u.user_id = $1", id)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "LOWER(u.email) = LOWER($1)", email)
}

// GetByUsername obtiene un usuario por username sin distinguir mayúsculas.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "LOWER(u.username) = LOWER($1)", username)
}

// Update persiste los datos del usuario; la contraseña se cambia con UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, full_name = $4, phone = $5, is_active = $6, role_id = $7,
		       dept_id = $8, rank_id = $9, floor_id = $10, updated_at = $11
		WHERE user_id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.Phone, user.IsActive, user.RoleID,
		user.DeptID, user.RankID, user.FloorID, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword guarda un hash ya calculado.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete elimina el usuario.
// Delete borra el usuario; la FK items.user_id ON DELETE SET NULL libera sus ítems en la misma sentencia.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List lista usuarios ordenados por username.
func (r *UserRepo) List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	var w whereBuilder
	if filter.Username != "" {
		w.add("u.username ILIKE ?", likePattern(filter.Username))
	}
	if filter.RoleName != "" {
		w.add("r.role_name = ?", filter.RoleName)
	}
	rows, err := r.q.Query(ctx, userSelect+w.sql()+` ORDER BY u.username`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles y permisos.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) findOne(ctx context.Context, where string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT role_id, role_name, description FROM roles WHERE `+where, arg).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// GetByID rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	return r.findOne(ctx, "role_id = $1", id)
}

// GetByName rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, "role_name = $1", name)
}

// List todos los roles.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT role_id, role_name, description FROM roles ORDER BY role_id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// ListPermissions filas del rol en orden de inserción.
func (r *RoleRepo) ListPermissions(ctx context.Context, roleID int64) ([]entity.Permission, error) {
	rows, err := r.q.Query(ctx, `
		SELECT permission_id, role_id, subject, action, field_name, can_access
		FROM role_permissions WHERE role_id = $1 ORDER BY permission_id`, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.RoleID, &p.Subject, &p.Action, &p.FieldName, &p.CanAccess); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
