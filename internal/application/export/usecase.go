// Package export genera las exportaciones CSV y PDF de los usuarios que la consola tiene en memoria.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/internal/infrastructure/i18n"
)

// Translator textos localizados para cabeceras, etiquetas y fechas.
type Translator interface {
	T(lang, key string) string
	RoleLabel(lang string, r entity.Role) string
	StatusLabel(lang string, s entity.Status) string
	FormatDate(lang string, t time.Time) string
	Normalize(lang string) string
}

// File contenido generado y su nombre de descarga.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Tipos de contenido de las exportaciones.
const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

var csvColumns = []string{
	i18n.KeyFieldID, i18n.KeyFieldName, i18n.KeyFieldEmail, i18n.KeyFieldRole, i18n.KeyFieldStatus,
	i18n.KeyFieldDepartment, i18n.KeyFieldLocation, i18n.KeyFieldPhone, i18n.KeyFieldCreatedAt, i18n.KeyFieldLastLogin,
}

var listColumns = []string{
	i18n.KeyFieldID, i18n.KeyFieldName, i18n.KeyFieldEmail, i18n.KeyFieldRole, i18n.KeyFieldStatus,
	i18n.KeyFieldDepartment, i18n.KeyFieldCreatedAt,
}

var listWidths = []int{1, 2, 3, 2, 1, 2, 1}

// UseCase arma los documentos de exportación.
type UseCase struct {
	pdf   PDFRenderer
	tr    Translator
	clock clockwork.Clock
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(pdf PDFRenderer, tr Translator, clk clockwork.Clock) *UseCase {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &UseCase{pdf: pdf, tr: tr, clock: clk}
}

// CSV cabecera localizada y una fila por usuario. encoding/csv cita los campos con comas, comillas o saltos.
func (uc *UseCase) CSV(users []entity.User, lang string) (*File, error) {
	lang = uc.tr.Normalize(lang)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(csvColumns))
	for _, key := range csvColumns {
		header = append(header, uc.tr.T(lang, key))
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera: %w", err)
	}
	for _, u := range users {
		record := []string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Email,
			uc.tr.RoleLabel(lang, u.Role),
			uc.tr.StatusLabel(lang, u.Status),
			u.Department,
			u.Location,
			u.Phone,
			uc.tr.FormatDate(lang, u.CreatedAt),
			uc.lastLogin(lang, u),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: escribir fila %d: %w", u.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv: %w", err)
	}
	return &File{Name: uc.fileName("users-export", "csv"), ContentType: ContentTypeCSV, Data: buf.Bytes()}, nil
}

// ListPDF tabla de usuarios con título y fecha de exportación.
func (uc *UseCase) ListPDF(ctx context.Context, users []entity.User, lang string) (*File, error) {
	lang = uc.tr.Normalize(lang)
	doc := ListDocument{
		Title:    uc.tr.T(lang, i18n.KeyUserList),
		DateLine: uc.dateLine(lang),
		Headers:  make([]string, 0, len(listColumns)),
		Rows:     make([][]string, 0, len(users)),
		Widths:   listWidths,
		RTL:      lang == i18n.Arabic,
	}
	for _, key := range listColumns {
		doc.Headers = append(doc.Headers, uc.tr.T(lang, key))
	}
	for _, u := range users {
		doc.Rows = append(doc.Rows, []string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Email,
			uc.tr.RoleLabel(lang, u.Role),
			uc.tr.StatusLabel(lang, u.Status),
			u.Department,
			uc.tr.FormatDate(lang, u.CreatedAt),
		})
	}
	data, err := uc.pdf.RenderList(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &File{Name: uc.fileName("users-export", "pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// UserPDF ficha de un usuario: título, nombre, fecha de exportación y diez campos.
func (uc *UseCase) UserPDF(ctx context.Context, u entity.User, lang string) (*File, error) {
	data, err := uc.pdf.RenderDetail(ctx, uc.DetailDocument(u, lang))
	if err != nil {
		return nil, err
	}
	return &File{Name: uc.fileName(fmt.Sprintf("user-%d", u.ID), "pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// DetailDocument documento de detalle sin renderizar.
func (uc *UseCase) DetailDocument(u entity.User, lang string) DetailDocument {
	lang = uc.tr.Normalize(lang)
	f := func(key, value string) Field { return Field{Label: uc.tr.T(lang, key), Value: value} }
	return DetailDocument{
		Title:    uc.tr.T(lang, i18n.KeyUserDetails),
		Subtitle: u.Name,
		DateLine: uc.dateLine(lang),
		RTL:      lang == i18n.Arabic,
		Fields: []Field{
			f(i18n.KeyFieldID, strconv.Itoa(u.ID)),
			f(i18n.KeyFieldName, u.Name),
			f(i18n.KeyFieldEmail, u.Email),
			f(i18n.KeyFieldRole, uc.tr.RoleLabel(lang, u.Role)),
			f(i18n.KeyFieldStatus, uc.tr.StatusLabel(lang, u.Status)),
			f(i18n.KeyFieldDepartment, u.Department),
			f(i18n.KeyFieldLocation, u.Location),
			f(i18n.KeyFieldPhone, u.Phone),
			f(i18n.KeyFieldCreatedAt, uc.tr.FormatDate(lang, u.CreatedAt)),
			f(i18n.KeyFieldLastLogin, uc.lastLogin(lang, u)),
		},
	}
}

func (uc *UseCase) lastLogin(lang string, u entity.User) string {
	if u.LastLogin == nil {
		return ""
	}
	return uc.tr.FormatDate(lang, *u.LastLogin)
}

func (uc *UseCase) dateLine(lang string) string {
	return uc.tr.T(lang, i18n.KeyExportDate) + ": " + uc.tr.FormatDate(lang, uc.clock.Now())
}

// fileName <base>-YYYY-MM-DD.<ext> con la fecha UTC de exportación.
func (uc *UseCase) fileName(base, ext string) string {
	return fmt.Sprintf("%s-%s.%s", base, uc.clock.Now().UTC().Format("2006-01-02"), ext)
}
