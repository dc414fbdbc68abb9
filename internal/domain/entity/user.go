package entity

import "time"

// User representa un usuario del sistema; pertenece a exactamente un Role.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	FullName     string
	Phone        *string
	IsActive     bool
	RoleID       int64
	DeptID       *int64
	RankID       *int64
	FloorID      *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Nombres resueltos con JOIN.
	RoleName  string
	DeptName  *string
	RankName  *string
	FloorName *string
}

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Username string
	RoleName string
}
