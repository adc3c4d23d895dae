// Package pdf genera la representación impresa de cotizaciones y notas de entrega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del documento  │  N° + Fecha + Estado        │
//	│  CLIENTE: Nombre / RIF / Teléfono / Dirección                │
//	│  CONDICIONES: Vendedor / Forma de pago                       │
//	│  TABLA: N° Parte | Descripción | Almacén | Cant | P.Unit | Total
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/repuestos-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoGenerator implementa ports.PDFGenerator usando Maroto v2.
type MarotoGenerator struct {
	company string
	printer *message.Printer
}

var _ ports.PDFGenerator = (*MarotoGenerator)(nil)

// NewMarotoGenerator construye el generador. Los montos se imprimen con el formato
// numérico español (coma decimal).
func NewMarotoGenerator(company string) *MarotoGenerator {
	return &MarotoGenerator{company: company, printer: message.NewPrinter(language.Spanish)}
}

// Generate arma el documento y devuelve sus bytes.
func (g *MarotoGenerator) Generate(_ context.Context, data ports.DocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title+" "+data.Number, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(data))
	m.AddRows(termsRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(data) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoGenerator) headerRow(data ports.DocumentData) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("N° "+data.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+data.Date, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+data.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func clientRow(data ports.DocumentData) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.Client, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("RIF: %s   |   Tel: %s   |   Dirección: %s",
				nonEmpty(data.RIF, "-"),
				nonEmpty(data.Phone, "-"),
				nonEmpty(data.Address, "-"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func termsRow(data ports.DocumentData) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("Vendedor: "+nonEmpty(data.SellerName, "-"), props.Text{Size: 8, Top: 2})),
		col.New(6).Add(text.New("Forma de pago: "+data.PaymentMethod, props.Text{Size: 8, Top: 2, Align: align.Right})),
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
		h("N° Parte", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Almacén", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

func (g *MarotoGenerator) tableRows(data ports.DocumentData) []core.Row {
	result := make([]core.Row, 0, len(data.Lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range data.Lines {
		result = append(result, row.New(7).Add(
			cell(l.PartNumber, 2, align.Left),
			cell(l.Name, 4, align.Left),
			cell(l.Warehouse, 2, align.Left),
			cell(fmt.Sprintf("%d", l.Quantity), 1, align.Center),
			cell(g.money(data.CurrencySymbol, l.Price), 1, align.Right),
			cell(g.money(data.CurrencySymbol, l.Total), 2, align.Right),
		))
	}
	return result
}

func (g *MarotoGenerator) totalRow(data ports.DocumentData) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(g.money(data.CurrencySymbol, data.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// money formatea el monto con dos decimales y separador de miles.
func (g *MarotoGenerator) money(symbol string, v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return symbol + " " + g.printer.Sprintf("%.2f", f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
