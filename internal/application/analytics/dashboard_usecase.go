// Package analytics contiene los casos de uso de solo lectura del tablero y de
// las estadísticas de inventario.
package analytics

import (
	"context"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

const (
	dashboardRecentMovements = 10 // movimientos en el widget de actividad
	dashboardCriticalItems   = 5  // ítems más críticos bajo mínimo
)

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: StatisticsRepository y el listado del libro (consultas read-only).
type DashboardUseCase struct {
	statsRepo repository.StatisticsRepository
	movRepo   repository.InventoryMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatisticsRepository, movRepo repository.InventoryMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, movRepo: movRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. StockStats      → totales, bajo mínimo, agotados
//  2. MovementStats   → total de movimientos
//  3. WarehouseCount  → ítems sin usuario
//  4. List(10)        → últimos movimientos
//
// Los ítems críticos se leen después con CriticalItems(5): el repositorio ordena por
// faltante y aplica el límite.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type stockResult struct {
		stats entity.StockStats
		err   error
	}
	type movResult struct {
		stats entity.MovementStats
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		list []*entity.InventoryMovement
		err  error
	}

	stockCh := make(chan stockResult, 1)
	movCh := make(chan movResult, 1)
	whCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		s, err := uc.statsRepo.StockStats(ctx)
		stockCh <- stockResult{s, err}
	}()
	go func() {
		s, err := uc.statsRepo.MovementStats(ctx)
		movCh <- movResult{s, err}
	}()
	go func() {
		n, err := uc.statsRepo.WarehouseCount(ctx)
		whCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.movRepo.List(ctx, entity.MovementFilter{Limit: dashboardRecentMovements})
		recentCh <- recentResult{list, err}
	}()

	stock := <-stockCh
	mov := <-movCh
	wh := <-whCh
	recent := <-recentCh

	if stock.err != nil {
		return nil, domain.Internal("dashboard: stock", stock.err)
	}
	if mov.err != nil {
		return nil, domain.Internal("dashboard: movimientos", mov.err)
	}
	if wh.err != nil {
		return nil, domain.Internal("dashboard: almacén", wh.err)
	}
	if recent.err != nil {
		return nil, domain.Internal("dashboard: recientes", recent.err)
	}

	crit, err := uc.statsRepo.CriticalItems(ctx, dashboardCriticalItems)
	if err != nil {
		return nil, domain.Internal("dashboard: críticos", err)
	}

	return &dto.DashboardSummaryDTO{
		TotalItems:      stock.stats.TotalItems,
		TotalQuantity:   stock.stats.TotalQuantity,
		LowStockCount:   stock.stats.LowStockCount,
		OutOfStockCount: stock.stats.OutOfStockCount,
		WarehouseCount:  wh.n,
		TotalMovements:  mov.stats.TotalMovements,
		RecentMovements: dto.MovementsFromEntities(recent.list),
		CriticalItems:   critical(crit),
	}, nil
}

func critical(items []entity.LowStockItem) []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockFromEntity(it))
	}
	return out
}
