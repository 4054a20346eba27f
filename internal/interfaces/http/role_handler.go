package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/usecase"
)

// RoleHandler catálogo de roles.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// List godoc
// @Summary      Listar roles
// @Description  Recarga el catálogo; si el backend falla y ya había roles cargados se devuelven esos.
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoleCatalogResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	if err := h.uc.FetchRoles(c.UserContext()); err != nil && len(h.uc.Roles()) == 0 {
		return writeError(c, err)
	}
	return c.JSON(h.uc.Catalog())
}
