package export

import "context"

// ListDocument documento tabular de varios registros.
type ListDocument struct {
	Title      string
	DateLine   string // "Export Date: 3/7/2026"
	Headers    []string
	Rows       [][]string
	Widths     []int // columnas sobre una grilla de 12; nil = reparto uniforme
	RTL        bool
	AuthorName string
}

// Field par etiqueta/valor del documento de detalle.
type Field struct {
	Label string
	Value string
}

// DetailDocument documento clave/valor de un único registro.
type DetailDocument struct {
	Title      string
	Subtitle   string
	DateLine   string
	Fields     []Field
	RTL        bool
	AuthorName string
}

// PDFRenderer puerto de generación de PDF.
type PDFRenderer interface {
	RenderList(ctx context.Context, doc ListDocument) ([]byte, error)
	RenderDetail(ctx context.Context, doc DetailDocument) ([]byte, error)
}
