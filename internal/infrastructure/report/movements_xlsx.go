// Package report exporta el libro de movimientos a hojas de cálculo.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
)

const movementsSheet = "Movimientos"

var movementsHeader = []any{
	"movement_id", "fecha", "item_id", "ítem", "tipo", "código",
	"cantidad", "cantidad anterior", "cantidad nueva", "usuario",
	"referencia", "notas", "depto. origen", "depto. destino", "piso origen", "piso destino",
}

// MovementsXLSX genera el libro .xlsx de movimientos con excelize.
type MovementsXLSX struct{}

// NewMovementsXLSX construye el exportador.
func NewMovementsXLSX() *MovementsXLSX { return &MovementsXLSX{} }

// MovementsWorkbook una fila por movimiento, en el orden recibido.
func (x *MovementsXLSX) MovementsWorkbook(movements []dto.MovementResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), movementsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(movementsSheet, "A1", &movementsHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(movementsHeader), 1)
		_ = f.SetCellStyle(movementsSheet, "A1", last, bold)
	}

	for i, m := range movements {
		row := []any{
			m.ID,
			m.MovementDate.Format("2006-01-02 15:04:05"),
			m.ItemID,
			m.ItemName,
			m.TypeName,
			m.TypeCode,
			m.Quantity,
			m.PreviousQty,
			m.NewQty,
			m.UserFullName,
			deref(m.ReferenceNo),
			deref(m.Notes),
			deref(m.FromDept),
			deref(m.ToDept),
			deref(m.FromFloor),
			deref(m.ToFloor),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(movementsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetPanes(movementsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
