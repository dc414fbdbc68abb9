package report

import (
	"context"
	"time"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

// MovementSource lectura del libro ya proyectada (LedgerUseCase).
type MovementSource interface {
	ListMovementsToResponse(ctx context.Context, filter entity.MovementFilter) ([]dto.MovementResponse, error)
}

// ReplenishmentSource lista de reposición priorizada (ReplenishmentUseCase).
type ReplenishmentSource interface {
	GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error)
}

// MovementsWorkbookWriter serializa movimientos a .xlsx. Implementado por infrastructure/report.
type MovementsWorkbookWriter interface {
	MovementsWorkbook(movements []dto.MovementResponse) ([]byte, error)
}

// LowStockPDFGenerator renderiza el reporte de existencias bajas. Implementado por infrastructure/pdf.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, items []dto.ReplenishmentSuggestionDTO, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase arma los reportes descargables.
type ReportUseCase struct {
	movements     MovementSource
	replenishment ReplenishmentSource
	xlsx          MovementsWorkbookWriter
	pdf           LowStockPDFGenerator
	now           func() time.Time
	log           *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	movements MovementSource,
	replenishment ReplenishmentSource,
	xlsx MovementsWorkbookWriter,
	pdf LowStockPDFGenerator,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		movements:     movements,
		replenishment: replenishment,
		xlsx:          xlsx,
		pdf:           pdf,
		now:           time.Now,
		log:           log.Component("reports"),
	}
}

// File contenido descargable con su nombre sugerido.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// MovementsXLSX exporta los movimientos con los mismos filtros y límite que ListMovements.
func (uc *ReportUseCase) MovementsXLSX(ctx context.Context, filter entity.MovementFilter) (*File, error) {
	list, err := uc.movements.ListMovementsToResponse(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.MovementsWorkbook(list)
	if err != nil {
		return nil, domain.Internal("movements workbook", err)
	}
	uc.log.Info().Int("rows", len(list)).Msg("reporte de movimientos generado")
	return &File{
		Name:        "movimientos_" + uc.now().Format("20060102_150405") + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

// LowStockPDF reporte de ítems en o bajo su mínimo con el pedido sugerido.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) (*File, error) {
	items, err := uc.replenishment.GenerateReplenishmentList(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	data, err := uc.pdf.GenerateLowStockPDF(ctx, items, now)
	if err != nil {
		return nil, domain.Internal("low stock pdf", err)
	}
	uc.log.Info().Int("items", len(items)).Msg("reporte de existencias bajas generado")
	return &File{
		Name:        "existencias_bajas_" + now.Format("20060102_150405") + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
