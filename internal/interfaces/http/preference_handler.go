package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/application/usecase"
)

// PreferenceHandler idioma y tema de la interfaz.
type PreferenceHandler struct {
	uc *usecase.PreferenceUseCase
}

// NewPreferenceHandler construye el handler.
func NewPreferenceHandler(uc *usecase.PreferenceUseCase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias actuales
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/preferences [get]
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get())
}

// Update godoc
// @Summary      Cambiar preferencias
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePreferencesRequest  true  "language, theme"
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences [put]
func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
