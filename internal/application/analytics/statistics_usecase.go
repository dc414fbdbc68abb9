package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

const (
	lowStockLimit = 20
	// consultas simultáneas contra el pool
	statisticsConcurrency = 4
)

// StatisticsUseCase reúne todas las agregaciones de GET /api/statistics.
type StatisticsUseCase struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(statsRepo repository.StatisticsRepository) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo}
}

// Get ejecuta las consultas en paralelo, como mucho statisticsConcurrency a la vez; la primera
// que falla cancela el resto.
func (uc *StatisticsUseCase) Get(ctx context.Context) (*dto.StatisticsDTO, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statisticsConcurrency)

	var (
		out       dto.StatisticsDTO
		stock     entity.StockStats
		movements entity.MovementStats
		byType    []entity.MovementTypeStats
		low       []entity.LowStockItem
	)

	groups := []struct {
		dst *[]dto.GroupCountDTO
		fn  func(context.Context) ([]entity.GroupCount, error)
	}{
		{&out.MainCategories, uc.statsRepo.ItemsByMainCategory},
		{&out.SubCategories, uc.statsRepo.ItemsBySubCategory},
		{&out.ItemTypes, uc.statsRepo.ItemsByItemType},
		{&out.Departments, uc.statsRepo.ItemsByDepartment},
		{&out.Floors, uc.statsRepo.ItemsByFloor},
		{&out.Situations, uc.statsRepo.ItemsBySituation},
		{&out.Kinds, uc.statsRepo.ItemsByKind},
		{&out.Users, uc.statsRepo.ItemsByUser},
	}
	for _, grp := range groups {
		g.Go(func() error {
			rows, err := grp.fn(gctx)
			if err != nil {
				return err
			}
			*grp.dst = groupCounts(rows)
			return nil
		})
	}

	g.Go(func() (err error) {
		out.WarehouseCount, err = uc.statsRepo.WarehouseCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		stock, err = uc.statsRepo.StockStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		movements, err = uc.statsRepo.MovementStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		byType, err = uc.statsRepo.MovementTypeStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		low, err = uc.statsRepo.LowStockItems(gctx, lowStockLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, domain.Internal("statistics", err)
	}

	out.Stock = dto.StockStatsDTO{
		TotalItems:      stock.TotalItems,
		TotalQuantity:   stock.TotalQuantity,
		LowStockCount:   stock.LowStockCount,
		OutOfStockCount: stock.OutOfStockCount,
		InStockCount:    stock.InStockCount,
	}
	out.Movements = dto.MovementStatsDTO{
		TotalMovements:     movements.TotalMovements,
		TotalIn:            movements.TotalIn,
		TotalOut:           movements.TotalOut,
		ItemsWithMovements: movements.ItemsWithMovements,
		UsersWithMovements: movements.UsersWithMovements,
	}
	out.MovementTypes = make([]dto.MovementTypeStatsDTO, 0, len(byType))
	for _, t := range byType {
		out.MovementTypes = append(out.MovementTypes, dto.MovementTypeStatsDTO{
			MovementTypeID: t.MovementTypeID,
			TypeName:       t.TypeName,
			TypeCode:       t.TypeCode,
			MovementCount:  t.MovementCount,
			TotalQuantity:  t.TotalQuantity,
		})
	}
	out.LowStockItems = make([]dto.LowStockItemDTO, 0, len(low))
	for _, it := range low {
		out.LowStockItems = append(out.LowStockItems, dto.LowStockFromEntity(it))
	}
	return &out, nil
}

func groupCounts(rows []entity.GroupCount) []dto.GroupCountDTO {
	out := make([]dto.GroupCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GroupCountDTO{ID: r.ID, Name: r.Name, Parent: r.Parent, ItemCount: r.ItemCount})
	}
	return out
}
