package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// KPIs de existencias y del libro, más los últimos movimientos y los ítems más críticos.
type DashboardSummaryDTO struct {
	TotalItems      int `json:"total_items"`
	TotalQuantity   int `json:"total_quantity"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
	WarehouseCount  int `json:"warehouse_count"` // ítems sin usuario asignado
	TotalMovements  int `json:"total_movements"`

	RecentMovements []MovementResponse `json:"recent_movements"` // últimos 10
	CriticalItems   []LowStockItemDTO  `json:"critical_items"`   // top 5 por faltante
}

// GroupCountDTO conteo de ítems por agrupación.
type GroupCountDTO struct {
	ID        *int64  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Parent    *string `json:"parent,omitempty"`
	ItemCount int     `json:"item_count"`
}

// StockStatsDTO agregados de existencias.
type StockStatsDTO struct {
	TotalItems      int `json:"total_items"`
	TotalQuantity   int `json:"total_quantity"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
	InStockCount    int `json:"in_stock_count"`
}

// MovementStatsDTO agregados del libro.
type MovementStatsDTO struct {
	TotalMovements     int `json:"total_movements"`
	TotalIn            int `json:"total_in"`
	TotalOut           int `json:"total_out"`
	ItemsWithMovements int `json:"items_with_movements"`
	UsersWithMovements int `json:"users_with_movements"`
}

// MovementTypeStatsDTO conteo por tipo de movimiento.
type MovementTypeStatsDTO struct {
	MovementTypeID int64  `json:"movement_type_id"`
	TypeName       string `json:"type_name"`
	TypeCode       string `json:"type_code"`
	MovementCount  int    `json:"movement_count"`
	TotalQuantity  int    `json:"total_quantity"`
}

// LowStockItemDTO ítem en o bajo su mínimo.
type LowStockItemDTO struct {
	ItemID      int64  `json:"item_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Unit        string `json:"unit"`
	Shortage    int    `json:"shortage_qty"`
}

// StatisticsDTO respuesta de GET /api/statistics.
type StatisticsDTO struct {
	MainCategories []GroupCountDTO        `json:"main_categories"`
	SubCategories  []GroupCountDTO        `json:"sub_categories"`
	ItemTypes      []GroupCountDTO        `json:"item_types"`
	Departments    []GroupCountDTO        `json:"departments"`
	Floors         []GroupCountDTO        `json:"floors"`
	Situations     []GroupCountDTO        `json:"situations"`
	Kinds          []GroupCountDTO        `json:"kinds"`
	Users          []GroupCountDTO        `json:"users"`
	WarehouseCount int                    `json:"warehouse_count"`
	Stock          StockStatsDTO          `json:"stock_stats"`
	Movements      MovementStatsDTO       `json:"movements_stats"`
	MovementTypes  []MovementTypeStatsDTO `json:"movement_types_stats"`
	LowStockItems  []LowStockItemDTO      `json:"low_stock_items"`
}
