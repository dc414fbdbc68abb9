package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

// replenishmentScanLimit máximo de ítems críticos considerados en una lista de reposición.
const replenishmentScanLimit = 500

// ReplenishmentUseCase genera la lista de reposición de los ítems en o bajo su mínimo.
type ReplenishmentUseCase struct {
	statsRepo repository.StatisticsRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(statsRepo repository.StatisticsRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{statsRepo: statsRepo}
}

// GenerateReplenishmentList devuelve los ítems bajo punto de reorden con la cantidad sugerida
// de pedido (hasta 1.5 veces el mínimo) y una prioridad: primero los agotados, luego el mayor
// faltante relativo al mínimo y, a igualdad, el mayor faltante absoluto.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.statsRepo.LowStockItems(ctx, replenishmentScanLimit)
	if err != nil {
		return nil, domain.Internal("low stock items", err)
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		ideal := (item.MinQuantity*3 + 1) / 2 // ceil(min * 1.5)
		suggested := ideal - item.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:            item.ItemID,
			ItemName:          item.ItemName,
			Unit:              item.Unit,
			DeptName:          item.DeptName,
			FloorName:         item.FloorName,
			CurrentQty:        item.Quantity,
			MinQuantity:       item.MinQuantity,
			Shortage:          item.Shortage(),
			IdealQty:          ideal,
			SuggestedOrderQty: suggested,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentQty == 0) != (b.CurrentQty == 0) {
			return a.CurrentQty == 0
		}
		// a.Shortage/a.Min > b.Shortage/b.Min sin división
		ra, rb := a.Shortage*b.MinQuantity, b.Shortage*a.MinQuantity
		if ra != rb {
			return ra > rb
		}
		return a.Shortage > b.Shortage
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
