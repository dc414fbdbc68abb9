package entity

// Nombres de rol sembrados.
const (
	RoleSuperAdmin       = "SUPER_ADMIN"
	RoleAdmin            = "ADMIN"
	RoleInventoryManager = "INVENTORY_MANAGER"
	RoleInventoryUser    = "INVENTORY_USER"
	RoleViewer           = "VIEWER"
	RoleUser             = "USER"
)

// Role agrupa un conjunto ordenado de permisos.
type Role struct {
	ID          int64
	Name        string
	Description *string
}

// Permission fila de permiso de un rol tal como se almacena.
// Subject y Action son tokens libres (p. ej. "ITEMS", "READ"); CanAccess=false es una denegación explícita.
type Permission struct {
	ID        int64
	RoleID    int64
	Subject   string
	Action    string
	FieldName string
	CanAccess bool
}
