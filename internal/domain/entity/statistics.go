package entity

// StockStats agregados de existencias sobre todos los ítems.
type StockStats struct {
	TotalItems      int
	TotalQuantity   int
	LowStockCount   int // quantity <= min_quantity con min_quantity > 0
	OutOfStockCount int
	InStockCount    int
}

// MovementStats agregados del libro de movimientos.
type MovementStats struct {
	TotalMovements     int
	TotalIn            int // suma de cantidades con effect = +1
	TotalOut           int // suma de cantidades con effect = -1
	ItemsWithMovements int
	UsersWithMovements int
}

// MovementTypeStats conteo por tipo de movimiento activo.
type MovementTypeStats struct {
	MovementTypeID int64
	TypeName       string
	TypeCode       string
	MovementCount  int
	TotalQuantity  int
}

// GroupCount conteo de ítems agrupado por una entidad (departamento, piso, categoría, usuario…).
// ID es nil cuando la agrupación es por un valor libre (situación, tipo).
type GroupCount struct {
	ID        *int64
	Name      string
	Parent    *string
	ItemCount int
}

// LowStockItem ítem en o por debajo de su punto de reorden.
type LowStockItem struct {
	ItemID      int64
	ItemName    string
	Quantity    int
	MinQuantity int
	Unit        string
	DeptName    *string
	FloorName   *string
}

// Shortage unidades que faltan para alcanzar el mínimo.
func (l LowStockItem) Shortage() int { return l.MinQuantity - l.Quantity }

// Statistics vista consolidada para el módulo de estadísticas.
type Statistics struct {
	MainCategories []GroupCount
	SubCategories  []GroupCount
	ItemTypes      []GroupCount
	Departments    []GroupCount
	Floors         []GroupCount
	Situations     []GroupCount
	Kinds          []GroupCount
	Users          []GroupCount
	WarehouseCount int
	Stock          StockStats
	Movements      MovementStats
	MovementTypes  []MovementTypeStats
	LowStock       []LowStockItem
}
