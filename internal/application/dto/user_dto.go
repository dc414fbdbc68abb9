package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	RoleID   int64   `json:"role_id"`
	DeptID   *int64  `json:"dept_id,omitempty"`
	RankID   *int64  `json:"rank_id,omitempty"`
	FloorID  *int64  `json:"floor_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UpdateUserRequest actualización parcial; Password vacío no cambia la contraseña.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	RoleID   *int64  `json:"role_id,omitempty"`
	DeptID   *int64  `json:"dept_id,omitempty"`
	RankID   *int64  `json:"rank_id,omitempty"`
	FloorID  *int64  `json:"floor_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// RegisterRequest registro público: el rol es siempre USER.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	RoleID    int64     `json:"role_id"`
	RoleName  string    `json:"role_name,omitempty"`
	DeptID    *int64    `json:"dept_id,omitempty"`
	DeptName  *string   `json:"dept_name,omitempty"`
	RankID    *int64    `json:"rank_id,omitempty"`
	RankName  *string   `json:"rank_name,omitempty"`
	FloorID   *int64    `json:"floor_id,omitempty"`
	FloorName *string   `json:"floor_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PermissionResponse fila de permiso tal como está almacenada.
type PermissionResponse struct {
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	FieldName string `json:"field_name,omitempty"`
	CanAccess bool   `json:"can_access"`
}

// UserPermissionsResponse GET /api/users/:id/permissions.
type UserPermissionsResponse struct {
	UserID      int64                `json:"user_id"`
	RoleName    string               `json:"role_name"`
	Permissions []PermissionResponse `json:"permissions"`
}

// RuleResponse regla compilada.
type RuleResponse struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
	Field   string `json:"field,omitempty"`
}

// AbilityResponse GET /api/me/ability.
type AbilityResponse struct {
	UserID int64          `json:"user_id"`
	Guest  bool           `json:"guest"`
	Rules  []RuleResponse `json:"rules"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest PUT /api/me/profile: el propio usuario cambia username, email o contraseña.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
