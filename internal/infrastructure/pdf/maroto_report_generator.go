// Package pdf renderiza los reportes de órdenes y transferencias con Maroto v2.
//
// Layout común (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + ID          │  Badge (tipo / estado)       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: fechas, estado, cliente u origen/destino             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: tabla de líneas o producto + cantidad + notas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Generado el ...                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/inventory-management-api/internal/application/reports"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
)

const dateLayout = "02/01/2006 15:04"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}

	badgeColors = map[string]*props.Color{
		entity.TransferStatusPending:    {Red: 230, Green: 160, Blue: 0},
		entity.TransferStatusProcessing: {Red: 0, Green: 120, Blue: 200},
		entity.TransferStatusCompleted:  {Red: 40, Green: 150, Blue: 70},
		entity.TransferStatusCancelled:  {Red: 190, Green: 40, Blue: 40},
		entity.OrderTypeSell:            {Red: 40, Green: 150, Blue: 70},
		entity.OrderTypePurchase:        {Red: 0, Green: 120, Blue: 200},
	}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

func (g *MarotoReportGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

// OrderPDF genera el reporte de una orden.
func (g *MarotoReportGenerator) OrderPDF(_ context.Context, r reports.OrderReport) ([]byte, error) {
	o := r.Order
	m := g.newDocument("Order " + o.ID)

	m.AddRows(headerRow("ORDER", o.ID, o.Type))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(
		infoRow("Date", o.CreatedAt.Format(dateLayout)),
		infoRow("Status", o.Status),
	)
	m.AddRows(customerRows(o, r.Customer)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o.Total.StringFixed(2)))

	m.AddRows(footerRows(r.GeneratedAt)...)
	return generate(m)
}

// TransferPDF genera el reporte de una transferencia.
func (g *MarotoReportGenerator) TransferPDF(_ context.Context, r reports.TransferReport) ([]byte, error) {
	t := r.Transfer
	m := g.newDocument("Stock Transfer " + t.ID)

	m.AddRows(headerRow("STOCK TRANSFER", t.ID, t.Status))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(
		infoRow("Created", t.CreatedAt.Format(dateLayout)),
		infoRow("Updated", t.UpdatedAt.Format(dateLayout)),
		infoRow("Product", nonEmpty(t.SourceProductName, "-")),
		infoRow("Quantity", strconv.Itoa(t.Quantity)),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		infoRow("From", place(t.SourceSubInventoryName, t.SourceLocatorName)),
		infoRow("To", place(t.DestinationSubInventoryName, t.DestinationLocatorName)),
		infoRow("Source category", nonEmpty(t.SourceCategoryName, "-")),
		infoRow("Destination category", nonEmpty(t.DestinationCategoryName, "-")),
	)
	if strings.TrimSpace(t.Notes) != "" {
		m.AddRows(sectionRow("NOTES"))
		for _, chunk := range wrap(t.Notes, 95) {
			m.AddRows(row.New(5).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 8, Left: 2, Top: 0.5}),
			)))
		}
	}

	m.AddRows(footerRows(r.GeneratedAt)...)
	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + id (izq) y badge de color (der).
func headerRow(title, id, badge string) core.Row {
	color, ok := badgeColors[badge]
	if !ok {
		color = colorGray
	}
	return row.New(16).Add(
		col.New(9).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("#"+id, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(3).WithStyle(&props.Cell{BackgroundColor: color}).Add(
			text.New(strings.ToUpper(badge), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorWhite, Top: 5,
			}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// infoRow: etiqueta en negrita + valor.
func infoRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1})),
	)
}

// customerRows: datos del cliente vigente o, si fue eliminado, el nombre guardado en la orden.
func customerRows(o *entity.Order, c *entity.Customer) []core.Row {
	rows := []core.Row{sectionRow("CUSTOMER")}
	if c == nil {
		return append(rows, infoRow("Name", nonEmpty(o.CustomerName, "-")))
	}
	rows = append(rows,
		infoRow("Name", c.Name),
		infoRow("Email", nonEmpty(c.Email, "-")),
		infoRow("Phone", nonEmpty(c.Phone, "-")),
	)
	addr := strings.Join(nonBlank(c.Address, c.City, c.State), ", ")
	if c.Pin != nil {
		addr = strings.TrimSpace(addr + " " + strconv.Itoa(*c.Pin))
	}
	rows = append(rows, infoRow("Address", nonEmpty(addr, "-")))
	if c.GST != "" {
		rows = append(rows, infoRow("GST", c.GST))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Product", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea.
func tableDetailRows(lines []reports.OrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(l.Price.StringFixed(2)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(l.LineTotal.StringFixed(2)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func footerRows(generatedAt time.Time) []core.Row {
	return []core.Row{
		line.NewRow(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(6).Add(col.New(12).Add(
			text.New("Generated on "+generatedAt.Format(dateLayout), props.Text{
				Size: 7, Color: colorGray, Align: align.Right, Top: 1,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func place(sub, locator string) string {
	return nonEmpty(sub, "-") + " > " + nonEmpty(locator, "-")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// formatMoney inserta comas de miles en un decimal con punto.
// Ej: "25000.50" → "25,000.50"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// wrap parte el texto en líneas de máx n caracteres, cortando en espacios cuando se puede.
func wrap(s string, n int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		cur := ""
		for _, w := range strings.Fields(para) {
			for len(w) > n {
				if cur != "" {
					out = append(out, cur)
					cur = ""
				}
				out = append(out, w[:n])
				w = w[n:]
			}
			switch {
			case cur == "":
				cur = w
			case len(cur)+1+len(w) <= n:
				cur += " " + w
			default:
				out = append(out, cur)
				cur = w
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}
