package entity

import "time"

// DefaultItemUnit unidad por defecto de un ítem ("pieza").
const DefaultItemUnit = "قطعة"

// Item representa un activo o insumo del inventario hospitalario.
// Quantity solo cambia a través del libro de movimientos (AddMovement / recálculo);
// nunca se asigna directamente desde un caso de uso CRUD.
type Item struct {
	ID          int64
	Name        string
	Serial      *string
	Kind        *string
	Situation   *string
	Properties  *string
	HDD         *string
	RAM         *string
	IP          *string
	CompName    *string
	LockNum     *string
	Quantity    int
	MinQuantity int
	Unit        string
	UserID      *int64 // nil = en almacén, sin asignar
	DeptID      *int64
	FloorID     *int64
	SubCatID    *int64
	ItemTypeID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Nombres de las relaciones, resueltos con JOIN al leer (no se persisten).
	Refs ItemRefs
}

// ItemRefs nombres de las entidades relacionadas con el ítem.
type ItemRefs struct {
	AssignedUser *string
	DeptName     *string
	FloorName    *string
	SubCatName   *string
	CatID        *int64
	CatName      *string
	ItemTypeName *string
}

// InWarehouse indica si el ítem no está asignado a ningún usuario.
func (i *Item) InWarehouse() bool { return i.UserID == nil }

// IsLowStock indica si el ítem está en o por debajo de su punto de reorden.
// Un MinQuantity de 0 desactiva la alerta.
func (i *Item) IsLowStock() bool {
	return i.MinQuantity > 0 && i.Quantity <= i.MinQuantity
}

// ItemFilter filtros del listado de ítems. Los campos de texto son búsquedas parciales.
type ItemFilter struct {
	CatID       *int64
	SubCatID    *int64
	ItemTypeID  *int64
	DeptID      *int64
	UserID      *int64
	OnlyInStore bool // ítems sin usuario asignado (almacén)
	Serial      string
	Name        string
	IP          string
	CompName    string
}
