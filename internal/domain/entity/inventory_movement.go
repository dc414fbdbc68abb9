package entity

import "time"

// InventoryMovement hecho histórico del libro de inventario.
// Al crearse se cumple NewQty == f(PreviousQty, Quantity, tipo).
type InventoryMovement struct {
	ID             int64
	ItemID         int64
	MovementTypeID int64
	Quantity       int // magnitud, siempre > 0
	PreviousQty    int
	NewQty         int
	UserID         int64
	ReferenceNo    *string
	Notes          *string
	FromDeptID     *int64
	ToDeptID       *int64
	FromFloorID    *int64
	ToFloorID      *int64
	MovementDate   time.Time
	CreatedAt      time.Time

	// Datos del tipo necesarios para re-aplicar el movimiento.
	TypeCode   string
	TypeEffect int

	Refs MovementRefs
}

// MovementRefs nombres resueltos con JOIN para los listados.
type MovementRefs struct {
	ItemName     string
	TypeName     string
	UserFullName string
	FromDept     *string
	ToDept       *string
	FromFloor    *string
	ToFloor      *string
}

// MovementFilter filtros de ListMovements.
type MovementFilter struct {
	ItemID         *int64
	MovementTypeID *int64
	Limit          int
}
