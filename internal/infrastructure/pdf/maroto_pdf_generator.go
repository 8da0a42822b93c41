// Package pdf implementa la generación del comprobante de venta (boleta)
// en PDF con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Empresa + RUT  │  N° Boleta + Fecha  │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: nombre + RUT (si fue informado)      │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total       │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA / TOTAL                   │
//	└───────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/EzerZuniga/gestion-comercial/internal/application/sales"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/pkg/format"
)

var _ sales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la boleta y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(
	sale *entity.Sale,
	products map[int64]*entity.Product,
	company *entity.Company,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if sale.CustomerName != "" || sale.CustomerRUT != "" {
		m.AddRows(customerRow(sale))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	for _, d := range sale.Details {
		m.AddRows(detailRow(d, products))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar boleta: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa + RUT (izq) y número de boleta + fecha (der).
func headerRow(sale *entity.Sale, company *entity.Company) core.Row {
	name, rut := "Boleta de venta", ""
	if company != nil {
		name = company.Name
		rut = company.RUT
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+rut, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BOLETA "+sale.DocNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(format.Date(sale.Date), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale *entity.Sale) core.Row {
	label := sale.CustomerName
	if sale.CustomerRUT != "" {
		if label != "" {
			label += " · "
		}
		label += sale.CustomerRUT
	}
	return row.New(6).Add(
		col.New(12).Add(text.New("Cliente: "+label, props.Text{Size: 8})),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant.", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit.", headerRight)),
		col.New(3).Add(text.New("Total", headerRight)),
	)
}

func detailRow(d entity.SaleDetail, products map[int64]*entity.Product) core.Row {
	name := fmt.Sprintf("Producto %d", d.ProductID)
	if p, ok := products[d.ProductID]; ok {
		name = p.Name
	}
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	return row.New(5).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", d.Quantity), cell)),
		col.New(5).Add(text.New(name, cell)),
		col.New(2).Add(text.New(format.Currency(d.UnitPrice), cellRight)),
		col.New(3).Add(text.New(format.Currency(d.LineTotal), cellRight)),
	)
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 8, Align: align.Right, Color: colorGray}
	value := props.Text{Size: 8, Align: align.Right}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary}
	totalValue := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}
	return []core.Row{
		row.New(5).Add(
			col.New(9).Add(text.New("Neto", label)),
			col.New(3).Add(text.New(format.Currency(sale.Subtotal), value)),
		),
		row.New(5).Add(
			col.New(9).Add(text.New("IVA", label)),
			col.New(3).Add(text.New(format.Currency(sale.IVA), value)),
		),
		row.New(7).Add(
			col.New(9).Add(text.New("TOTAL", totalLabel)),
			col.New(3).Add(text.New(format.Currency(sale.Total), totalValue)),
		),
	}
}
