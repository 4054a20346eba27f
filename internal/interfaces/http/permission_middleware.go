package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain/entity"
)

// permissionChecker lo implementa *usecase.RoleUseCase.
type permissionChecker interface {
	Can(role entity.Role, permission string) bool
}

// RequirePermission exige que el rol de la sesión conceda el permiso.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
//   - 401 → no hay rol en el contexto.
//   - 403 → el rol no incluye el permiso.
func RequirePermission(permission string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no encontrado en la sesión",
			})
		}
		if !checker.Can(role, permission) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + string(role) + "' no tiene el permiso '" + permission + "'",
			})
		}
		return c.Next()
	}
}
