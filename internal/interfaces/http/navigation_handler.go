package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/application/navigation"
)

// NavigationHandler resuelve las rutas de página con el autorizador.
type NavigationHandler struct {
	authz *navigation.Authorizer
}

// NewNavigationHandler construye el handler de navegación.
func NewNavigationHandler(authz *navigation.Authorizer) *NavigationHandler {
	return &NavigationHandler{authz: authz}
}

// Navigate godoc
// @Summary      Navegar a una página de la consola
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Success      302  "redirección a login, unauthorized o users"
// @Router       /users [get]
func (h *NavigationHandler) Navigate(c *fiber.Ctx) error {
	fullPath := c.Path()
	if q := c.Request().URI().QueryString(); len(q) > 0 {
		fullPath += "?" + string(q)
	}
	d := h.authz.Authorize(fullPath)
	if !d.Allow {
		return c.Redirect(d.Redirect.URL(), fiber.StatusFound)
	}
	status := fiber.StatusOK
	if d.Route.Name == navigation.RouteNotFound {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(dto.NavigationResponse{
		Route:  d.Route.Name,
		Path:   c.Path(),
		Params: d.Params,
		Reason: string(d.Reason),
	})
}
