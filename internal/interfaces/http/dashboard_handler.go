package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/hospital-inventory/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de tablero y estadísticas.
type DashboardHandler struct {
	dashboard  *appanalytics.DashboardUseCase
	statistics *appanalytics.StatisticsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, statistics *appanalytics.StatisticsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, statistics: statistics}
}

// GetSummary devuelve los KPIs de existencias, los últimos movimientos y los ítems críticos.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (total_items, low_stock_count, out_of_stock_count,
// warehouse_count, total_movements, recent_movements[10], critical_items[5]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetStatistics conteos por categoría, departamento, piso, usuario y tipo de movimiento.
// GET /api/statistics
func (h *DashboardHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statistics.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
