// Package pdf genera el reporte de transacciones en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + filtros aplicados │ fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total reabastecido │ registros │ página           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Producto | Categoría | Cant | Total | Salida │
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

	"github.com/jhoicas/stockledger-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportMeta datos de cabecera del reporte.
type ReportMeta struct {
	Title       string
	Filters     string // descripción legible de los filtros aplicados
	GeneratedAt time.Time
}

// TransactionReportGenerator genera el PDF del feed de transacciones.
type TransactionReportGenerator struct{}

// NewTransactionReportGenerator construye el generador.
func NewTransactionReportGenerator() *TransactionReportGenerator {
	return &TransactionReportGenerator{}
}

// Generate arma el documento con la página ya calculada del feed y devuelve sus bytes.
func (g *TransactionReportGenerator) Generate(_ context.Context, meta ReportMeta, feed *dto.TransactionFeedResponse) ([]byte, error) {
	if feed == nil {
		return nil, fmt.Errorf("pdf: feed vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(meta.Title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(feed))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(feed.Transactions.Data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(meta ReportMeta) core.Row {
	filters := meta.Filters
	if filters == "" {
		filters = "Sin filtros"
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(meta.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(filters, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+meta.GeneratedAt.Format("01/02/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(feed *dto.TransactionFeedResponse) core.Row {
	p := feed.Transactions.Pagination
	item := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		item("Total reabastecido", fmt.Sprintf("%d", feed.TotalRestockedQuantity)),
		item("Registros", fmt.Sprintf("%d", p.Total)),
		item("Página", fmt.Sprintf("%d de %d", p.CurrentPage, p.LastPage)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Total", 2, align.Right),
		h("Salida", 2, align.Right),
	)
}

func tableRows(data []dto.TransactionDTO) []core.Row {
	rows := make([]core.Row, 0, len(data))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1}))
	}
	for _, t := range data {
		kind := t.TransactionType
		if t.DeliveryStatus != nil {
			kind += " (" + *t.DeliveryStatus + ")"
		}
		rows = append(rows, row.New(6).Add(
			cell(kind, 2, align.Left),
			cell(t.ProductName, 3, align.Left),
			cell(t.CategoryName, 2, align.Left),
			cell(fmt.Sprintf("%d", t.Quantity), 1, align.Right),
			cell(t.TotalValue, 2, align.Right),
			cell(orDash(t.DateOut), 2, align.Right),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(text.New("Sin transacciones para los filtros aplicados", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}))))
	}
	return rows
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
