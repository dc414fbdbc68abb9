package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/report"
)

// ReportHandler descargas .xlsx y .pdf.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Movements godoc
// @Summary      Exportar movimientos a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        item_id           query  int  false  "Filtrar por ítem"
// @Param        movement_type_id  query  int  false  "Filtrar por tipo"
// @Param        limit             query  int  false  "Máximo 500"  default(100)
// @Success      200
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	filter, ok := movementFilter(c)
	if !ok {
		return badParam(c, "filtro")
	}
	file, err := h.uc.MovementsXLSX(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// LowStock godoc
// @Summary      Reporte PDF de existencias bajas con pedido sugerido
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	file, err := h.uc.LowStockPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *report.File) error {
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
