// Package pdf implementa los reportes imprimibles de la operación: la hoja de
// preparación del día y el reporte de varianzas de un conteo cíclico.
//
// Layout de la página A4 (ambos reportes comparten estructura):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales / progreso / exactitud                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: filas de detalle                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/reports"
)

// Verificar en tiempo de compilación que el generador implementa el puerto.
var _ reports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// GeneratePrepSheetPDF genera la hoja de preparación y devuelve sus bytes.
// items viene ya filtrado a los ítems con faltante.
func (g *MarotoPDFGenerator) GeneratePrepSheetPDF(_ context.Context, items []*dto.PrepItemResponse) ([]byte, error) {
	m := newDocument("Hoja de Preparación")

	m.AddRows(headerRow("HOJA DE PREPARACIÓN", time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(fmt.Sprintf("Ítems por preparar: %d", len(items))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(prepTableHeaderRow())
	for _, it := range items {
		m.AddRows(prepDetailRow(it))
	}
	if len(items) == 0 {
		m.AddRows(emptyRow("Todos los ítems están al nivel par."))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow("Marque cada ítem al terminar su preparación."))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateCountReportPDF genera el reporte de varianzas de un conteo.
func (g *MarotoPDFGenerator) GenerateCountReportPDF(_ context.Context, count *dto.CycleCountResponse) ([]byte, error) {
	m := newDocument("Reporte de Conteo Cíclico")

	m.AddRows(headerRow("REPORTE DE CONTEO: "+count.Name, count.StartedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(fmt.Sprintf(
		"Estado: %s   |   Contados: %d de %d   |   Con varianza: %d   |   Avance: %.0f%%",
		count.Status, count.Stats.CountedItems, count.Stats.TotalItems,
		count.Stats.ItemsWithVariance, count.Stats.Progress*100,
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(countTableHeaderRow())
	for _, it := range count.Items {
		m.AddRows(countDetailRow(it))
	}
	if len(count.Items) == 0 {
		m.AddRows(emptyRow("El conteo no tiene artículos."))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow("Las varianzas distintas de cero requieren revisión del encargado."))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha (der).
func headerRow(title string, date time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(summary string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(summary, props.Text{Size: 9, Top: 2, Color: colorGray}),
	))
}

// prepTableHeaderRow: cabecera de la tabla de la hoja de preparación.
func prepTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem", 5, align.Left),
		h("Unidad", 2, align.Center),
		h("Actual", 1, align.Right),
		h("Par", 1, align.Right),
		h("Preparar", 2, align.Right),
		h("Hecho", 1, align.Center),
	)
}

func prepDetailRow(it *dto.PrepItemResponse) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.CurrentLevel), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.ParLevel), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Needed), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorPrimary,
		})),
		col.New(1).Add(text.New("[  ]", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray})),
	)
}

// countTableHeaderRow: cabecera de la tabla del reporte de conteo.
func countTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artículo", 5, align.Left),
		h("Ubicación", 2, align.Left),
		h("Esperado", 2, align.Right),
		h("Contado", 1, align.Right),
		h("Varianza", 2, align.Right),
	)
}

func countDetailRow(it *dto.CycleCountItemDTO) core.Row {
	counted := "—"
	if it.CountedQty != nil {
		counted = fmt.Sprintf("%d", *it.CountedQty)
	}
	variance := "—"
	varColor := colorGray
	if it.Variance != nil {
		variance = fmt.Sprintf("%+d", *it.Variance)
		if *it.Variance != 0 {
			varColor = colorAlert
		}
	}
	location := it.ItemBin
	if it.ItemRack != "" {
		location = location + " / " + it.ItemRack
	}

	return row.New(7).Add(
		col.New(5).Add(text.New(it.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(location, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.ExpectedQty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(counted, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(variance, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: varColor,
		})),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
	))
}

func footerRow(legend string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}
