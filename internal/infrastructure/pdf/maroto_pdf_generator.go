// Package pdf genera el reporte de existencias bajas con sugerencias de reposición.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + nombre de la app │ Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems críticos / agotados / unidades a pedir       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Prio | Ítem | Ubicación | Actual | Mín | Pedir       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: regla de cálculo del pedido sugerido                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/hospital-inventory/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera reportes PDF con Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador; appName aparece en el encabezado.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateLowStockPDF genera el reporte y devuelve sus bytes. items llega ya priorizado.
func (g *MarotoPDFGenerator) GenerateLowStockPDF(
	_ context.Context,
	items []dto.ReplenishmentSuggestionDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias bajas", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(items))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay ítems en o bajo su mínimo.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("EXISTENCIAS BAJAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: totales del reporte.
func summaryRow(items []dto.ReplenishmentSuggestionDTO) core.Row {
	out, toOrder := 0, 0
	for _, it := range items {
		if it.CurrentQty == 0 {
			out++
		}
		toOrder += it.SuggestedOrderQty
	}
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		kpi("Ítems críticos", strconv.Itoa(len(items))),
		kpi("Agotados", strconv.Itoa(out)),
		kpi("Unidades a pedir", strconv.Itoa(toOrder)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Prio.", 1, align.Center),
		h("Ítem", 4, align.Left),
		h("Ubicación", 3, align.Left),
		h("Actual", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Pedir", 2, align.Right),
	)
}

// tableDetailRows: una fila por ítem; los agotados en rojo.
func tableDetailRows(items []dto.ReplenishmentSuggestionDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qtyStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if it.CurrentQty == 0 {
			qtyStyle.Color = colorAlert
			qtyStyle.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Priority), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(location(it), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(strconv.Itoa(it.CurrentQty), qtyStyle)),
			col.New(1).Add(text.New(strconv.Itoa(it.MinQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d %s", it.SuggestedOrderQty, it.Unit),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Pedido sugerido = 1.5 × mínimo (redondeado hacia arriba) − cantidad actual. "+
				"Prioridad: agotados primero, luego mayor faltante relativo al mínimo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func location(it dto.ReplenishmentSuggestionDTO) string {
	dept, floor := nonEmpty(it.DeptName, "-"), nonEmpty(it.FloorName, "-")
	if dept == "-" && floor == "-" {
		return "Almacén"
	}
	return dept + " / " + floor
}

func nonEmpty(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
