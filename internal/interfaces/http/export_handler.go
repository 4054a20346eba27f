package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/export"
	"github.com/jhoicas/user-console/internal/application/usecase"
)

// ExportHandler descargas CSV y PDF de los usuarios cargados en la consola.
type ExportHandler struct {
	export *export.UseCase
	users  *usecase.UserUseCase
	prefs  *usecase.PreferenceUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(exp *export.UseCase, users *usecase.UserUseCase, prefs *usecase.PreferenceUseCase) *ExportHandler {
	return &ExportHandler{export: exp, users: users, prefs: prefs}
}

// UsersCSV godoc
// @Summary      Exportar la página actual a CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        lang  query  string  false  "en | ar (por defecto la preferencia guardada)"
// @Success      200  {file}  file
// @Router       /api/exports/users.csv [get]
func (h *ExportHandler) UsersCSV(c *fiber.Ctx) error {
	f, err := h.export.CSV(h.users.PageUsers(), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// UsersPDF godoc
// @Summary      Exportar la página actual a PDF
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        lang  query  string  false  "en | ar"
// @Success      200  {file}  file
// @Router       /api/exports/users.pdf [get]
func (h *ExportHandler) UsersPDF(c *fiber.Ctx) error {
	f, err := h.export.ListPDF(c.UserContext(), h.users.PageUsers(), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// UserPDF godoc
// @Summary      Exportar un usuario a PDF
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   int     true   "ID del usuario"
// @Param        lang  query  string  false  "en | ar"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/users/{id}/pdf [get]
func (h *ExportHandler) UserPDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	u, err := h.users.DetailUser(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.export.UserPDF(c.UserContext(), u, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

func (h *ExportHandler) lang(c *fiber.Ctx) string {
	return c.Query("lang", h.prefs.Language())
}

func sendFile(c *fiber.Ctx, f *export.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Send(f.Data)
}
