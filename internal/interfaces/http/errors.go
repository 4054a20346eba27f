package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain"
)

// writeError responde con el estado y el código del APIError de la cadena.
func writeError(c *fiber.Ctx, err error) error {
	apiErr := domain.AsAPIError(err)
	return c.Status(apiErr.Status).JSON(dto.ErrorResponse{Code: apiErr.Code, Message: apiErr.Message})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
