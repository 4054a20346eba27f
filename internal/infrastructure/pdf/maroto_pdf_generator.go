// Package pdf genera los PDF de exportación de usuarios con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO (User List / User Details)                          │
//	│  Subtítulo opcional (nombre del usuario)                    │
//	│  Export Date: ...                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LISTADO: cabecera gris + una fila por usuario              │
//	│  DETALLE: etiqueta en negrita | valor                       │
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
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/user-console/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorHeader = &props.Color{Red: 66, Green: 66, Blue: 66}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLine   = &props.Color{Red: 200, Green: 200, Blue: 200}
	colorWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

var _ export.PDFRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa export.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderList genera el PDF del listado y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderList(_ context.Context, doc export.ListDocument) ([]byte, error) {
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("pdf: listado sin columnas")
	}
	widths, err := columnWidths(len(doc.Headers), doc.Widths)
	if err != nil {
		return nil, err
	}

	m := maroto.New(newConfig(doc.Title, doc.AuthorName))
	m.AddRows(titleRows(doc.Title, "", doc.DateLine, doc.RTL)...)
	m.AddRows(tableHeaderRow(doc.Headers, widths, doc.RTL))
	for _, r := range doc.Rows {
		m.AddRows(tableRow(r, widths, doc.RTL))
	}
	return generate(m)
}

// RenderDetail genera el PDF de un usuario.
func (g *MarotoPDFGenerator) RenderDetail(_ context.Context, doc export.DetailDocument) ([]byte, error) {
	m := maroto.New(newConfig(doc.Title, doc.AuthorName))
	m.AddRows(titleRows(doc.Title, doc.Subtitle, doc.DateLine, doc.RTL)...)
	for _, f := range doc.Fields {
		m.AddRows(fieldRow(f, doc.RTL))
	}
	return generate(m)
}

func newConfig(title, author string) *entity.Config {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true)
	if author != "" {
		b = b.WithAuthor(author, true)
	}
	return b.Build()
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRows(title, subtitle, dateLine string, rtl bool) []core.Row {
	a := textAlign(rtl)
	rows := []core.Row{
		row.New(10).Add(col.New(gridSize).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 16, Align: a, Top: 1}),
		)),
	}
	if subtitle != "" {
		rows = append(rows, row.New(8).Add(col.New(gridSize).Add(
			text.New(subtitle, props.Text{Size: 14, Align: a, Top: 1}),
		)))
	}
	rows = append(rows,
		row.New(7).Add(col.New(gridSize).Add(
			text.New(dateLine, props.Text{Size: 10, Align: a, Color: colorGray, Top: 1}),
		)),
		line.NewRow(2, props.Line{Color: colorLine, Thickness: 0.3}),
	)
	return rows
}

// tableHeaderRow cabecera con fondo gris.
func tableHeaderRow(headers []string, widths []int, rtl bool) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: textAlign(rtl),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(orderCols(cols, rtl)...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRow(values []string, widths []int, rtl bool) core.Row {
	cols := make([]core.Col, 0, len(widths))
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
			Size: 8, Align: textAlign(rtl), Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(orderCols(cols, rtl)...)
}

// fieldRow etiqueta en negrita (4/12) y valor (8/12).
func fieldRow(f export.Field, rtl bool) core.Row {
	a := textAlign(rtl)
	cols := []core.Col{
		col.New(4).Add(text.New(f.Label, props.Text{Style: fontstyle.Bold, Size: 10, Align: a, Top: 2})),
		col.New(8).Add(text.New(f.Value, props.Text{Size: 10, Align: a, Top: 2, Left: 2})),
	}
	return row.New(9).Add(orderCols(cols, rtl)...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func textAlign(rtl bool) align.Type {
	if rtl {
		return align.Right
	}
	return align.Left
}

// orderCols invierte el orden de las columnas en documentos de derecha a izquierda.
func orderCols(cols []core.Col, rtl bool) []core.Col {
	if !rtl {
		return cols
	}
	out := make([]core.Col, len(cols))
	for i, c := range cols {
		out[len(cols)-1-i] = c
	}
	return out
}

// columnWidths valida los anchos pedidos o reparte la grilla de forma uniforme (el resto va a las primeras columnas).
func columnWidths(n int, requested []int) ([]int, error) {
	if n > gridSize {
		return nil, fmt.Errorf("pdf: %d columnas exceden la grilla de %d", n, gridSize)
	}
	if requested != nil {
		if len(requested) != n {
			return nil, fmt.Errorf("pdf: %d anchos para %d columnas", len(requested), n)
		}
		sum := 0
		for _, w := range requested {
			if w <= 0 {
				return nil, fmt.Errorf("pdf: ancho de columna inválido %d", w)
			}
			sum += w
		}
		if sum > gridSize {
			return nil, fmt.Errorf("pdf: anchos suman %d > %d", sum, gridSize)
		}
		return requested, nil
	}
	out := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range out {
		out[i] = base
		if i < rest {
			out[i]++
		}
	}
	return out, nil
}
