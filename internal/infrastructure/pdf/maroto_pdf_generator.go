// Package pdf genera el reporte del catálogo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                      │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por categoría:                                              │
//	│    Nombre + descripción                                      │
//	│    TABLA: Producto | Descripción | Stock | Precio | Valor    │
//	│    Subtotal de la categoría                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / unidades / valor del inventario        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 230, Green: 236, Blue: 242}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.CatalogPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCatalogPDF(
	_ context.Context,
	title string,
	generatedAt time.Time,
	sections []usecase.CatalogSection,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	var t totals
	if len(sections) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El catálogo no tiene categorías.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, s := range sections {
		m.AddRows(sectionRows(s, &t)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(t))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type totals struct {
	products int
	units    int
	value    decimal.Decimal
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE CATÁLOGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// sectionRows: cabecera de la categoría, tabla de productos y subtotal.
func sectionRows(s usecase.CatalogSection, t *totals) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(12).Add(col.New(12).Add(
			text.New(s.Category.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(s.Category.Description, "Sin descripción"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		)),
		tableHeaderRow(),
	}

	if len(s.Products) == 0 {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Sin productos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}

	units := 0
	value := decimal.Zero
	for _, p := range s.Products {
		rows = append(rows, productRow(p))
		units += p.StockQuantity
		value = value.Add(stockValue(p))
	}
	t.products += len(s.Products)
	t.units += units
	t.value = t.value.Add(value)

	rows = append(rows, row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New(fmt.Sprintf("%d productos · %d unidades", len(s.Products), units), props.Text{
			Size: 8, Align: align.Right, Top: 1, Color: colorGray,
		})),
		col.New(3).Add(text.New("$"+formatMoney(value), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	))
	return rows
}

// tableHeaderRow: cabecera de la tabla de productos con fondo claro.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Descripción", 4, align.Left),
		h("Stock", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Valor", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

// productRow: una fila por producto.
func productRow(p *entity.Product) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(truncate(nonEmpty(p.Description, "—"), 60), props.Text{
			Size: 8, Top: 1, Left: 1, Color: colorGray,
		})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.StockQuantity), props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New("$"+formatMoney(p.Price), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New("$"+formatMoney(stockValue(p)), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t totals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			label("Productos:"),
			label("Unidades en stock:"),
			text.New("VALOR DEL INVENTARIO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
			}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", t.products)),
			text.New(fmt.Sprintf("%d", t.units), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New("$"+formatMoney(t.value), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stockValue(p *entity.Product) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

func nonEmpty(s *string, fallback string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return *s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatMoney formatea con puntos de miles y coma decimal (dos decimales).
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
