package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/user-console/internal/application/dto"
	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/pkg/jwt"
)

// Locals keys con los datos de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// sessionChecker es la vista del guard de sesión que necesita el middleware.
type sessionChecker interface {
	Session() (entity.Session, bool)
	Expired() bool
	Logout()
	RecordActivity()
}

// AuthMiddleware valida el Bearer Token: debe ser el token de la sesión abierta y un JWT válido.
// Una sesión vencida por inactividad se cierra y responde 401 SESSION_EXPIRED; en otro caso
// la petición cuenta como actividad.
func AuthMiddleware(jwtSecret string, guard sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		s, ok := guard.Session()
		if !ok || s.Token != tokenString {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no hay sesión abierta para este token"})
		}
		if guard.Expired() {
			guard.Logout()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró por inactividad"})
		}
		guard.RecordActivity()

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, s.User.Role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int {
	id, _ := c.Locals(LocalUserID).(int)
	return id
}

// GetRole devuelve el rol de la sesión; "" sin sesión.
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}
