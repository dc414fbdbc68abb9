package repository

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
)

// StatisticsRepository consultas de solo lectura para estadísticas y dashboard.
type StatisticsRepository interface {
	StockStats(ctx context.Context) (entity.StockStats, error)
	MovementStats(ctx context.Context) (entity.MovementStats, error)
	MovementTypeStats(ctx context.Context) ([]entity.MovementTypeStats, error)

	// ── Conteos de ítems por agrupación ───────────────────────────────────────

	ItemsByMainCategory(ctx context.Context) ([]entity.GroupCount, error)
	ItemsBySubCategory(ctx context.Context) ([]entity.GroupCount, error)
	ItemsByItemType(ctx context.Context) ([]entity.GroupCount, error)
	ItemsByDepartment(ctx context.Context) ([]entity.GroupCount, error)
	ItemsByFloor(ctx context.Context) ([]entity.GroupCount, error)
	ItemsBySituation(ctx context.Context) ([]entity.GroupCount, error)
	ItemsByKind(ctx context.Context) ([]entity.GroupCount, error)
	ItemsByUser(ctx context.Context) ([]entity.GroupCount, error)
	WarehouseCount(ctx context.Context) (int, error)

	// LowStockItems ítems con quantity <= min_quantity (min_quantity > 0), menor cantidad primero.
	LowStockItems(ctx context.Context, limit int) ([]entity.LowStockItem, error)
	// CriticalItems mismos ítems que LowStockItems ordenados por faltante (min_quantity - quantity)
	// descendente; a igual faltante, menor cantidad primero.
	CriticalItems(ctx context.Context, limit int) ([]entity.LowStockItem, error)
}
